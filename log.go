package mapbench

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	g "github.com/hhkbp2/mapbench/generator"
)

var (
	nameToLevels = map[string]hclog.Level{
		"verbose": hclog.Trace,
		"debug":   hclog.Debug,
		"info":    hclog.Info,
		"warn":    hclog.Warn,
		"error":   hclog.Error,
		"quiet":   hclog.Off,
	}
)

// ParseLogLevel maps a level name to a hclog level.
func ParseLogLevel(name string) (hclog.Level, error) {
	level, ok := nameToLevels[name]
	if !ok {
		return hclog.NoLevel, g.NewErrorf("unknown log level: %s", name)
	}
	return level, nil
}

// NewLogger creates the process logger. Logs go to w, stderr if nil, so that
// records written to stdout stay machine readable.
func NewLogger(levelName string, jsonFormat bool, w io.Writer) (hclog.Logger, error) {
	level, err := ParseLogLevel(levelName)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "mapbench",
		Level:      level,
		Output:     w,
		JSONFormat: jsonFormat,
	}), nil
}

// NewLoggerFromProperties creates the logger configured by
// `PropertyLogLevel` and `PropertyLogJSON`.
func NewLoggerFromProperties(p Properties, w io.Writer) (hclog.Logger, error) {
	jsonFormat, err := p.GetBool(PropertyLogJSON, PropertyLogJSONDefault)
	if err != nil {
		return nil, err
	}
	return NewLogger(p.GetDefault(PropertyLogLevel, PropertyLogLevelDefault), jsonFormat, w)
}

func loggerOrNull(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger
}
