package mapbench

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/hhkbp2/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]hclog.Level{
		"verbose": hclog.Trace,
		"debug":   hclog.Debug,
		"info":    hclog.Info,
		"warn":    hclog.Warn,
		"error":   hclog.Error,
		"quiet":   hclog.Off,
	}
	for name, expected := range cases {
		level, err := ParseLogLevel(name)
		require.Nil(t, err)
		require.Equal(t, expected, level)
	}
	_, err := ParseLogLevel("loud")
	require.NotNil(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("warn", true, &buf)
	require.Nil(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "backend", "basic")
	line := strings.TrimSpace(buf.String())
	require.Equal(t, 1, strings.Count(line, "\n")+1)
	var decoded map[string]interface{}
	require.Nil(t, json.Unmarshal([]byte(line), &decoded))
	require.Equal(t, "shown", decoded["@message"])
	require.Equal(t, "basic", decoded["backend"])
	require.Equal(t, "mapbench", decoded["@module"])
}

func TestNewLoggerFromProperties(t *testing.T) {
	var buf bytes.Buffer
	p := NewProperties()
	p.Add(PropertyLogLevel, "quiet")
	logger, err := NewLoggerFromProperties(p, &buf)
	require.Nil(t, err)
	logger.Error("nothing")
	require.Equal(t, "", buf.String())

	p.Add(PropertyLogJSON, "maybe")
	_, err = NewLoggerFromProperties(p, &buf)
	require.NotNil(t, err)
}
