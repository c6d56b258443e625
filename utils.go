package mapbench

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	g "github.com/hhkbp2/mapbench/generator"
)

type Properties map[string]string

func NewProperties() Properties {
	return make(Properties)
}

func (self Properties) Get(key string) string {
	v, _ := self[key]
	return v
}

func (self Properties) GetDefault(key string, defaultValue string) string {
	if v, ok := self[key]; ok {
		return v
	}
	return defaultValue
}

func (self Properties) Add(key, value string) {
	self[key] = value
}

// Merge copies all entries of other into self, overwriting existing keys.
func (self Properties) Merge(other map[string]string) {
	for k, v := range other {
		self[k] = v
	}
}

func (self Properties) GetInt64(key, defaultValue string) (int64, error) {
	propStr := self.GetDefault(key, defaultValue)
	v, err := strconv.ParseInt(propStr, 0, 64)
	if err != nil {
		return 0, g.NewErrorf("invalid integer property %s=%q", key, propStr)
	}
	return v, nil
}

func (self Properties) GetUint64(key, defaultValue string) (uint64, error) {
	propStr := self.GetDefault(key, defaultValue)
	v, err := strconv.ParseUint(propStr, 0, 64)
	if err != nil {
		return 0, g.NewErrorf("invalid unsigned property %s=%q", key, propStr)
	}
	return v, nil
}

func (self Properties) GetFloat64(key, defaultValue string) (float64, error) {
	propStr := self.GetDefault(key, defaultValue)
	v, err := strconv.ParseFloat(propStr, 64)
	if err != nil {
		return 0, g.NewErrorf("invalid float property %s=%q", key, propStr)
	}
	return v, nil
}

func (self Properties) GetBool(key, defaultValue string) (bool, error) {
	propStr := self.GetDefault(key, defaultValue)
	v, err := strconv.ParseBool(propStr)
	if err != nil {
		return false, g.NewErrorf("invalid boolean property %s=%q", key, propStr)
	}
	return v, nil
}

// GetList splits a comma separated property, dropping empty items.
func (self Properties) GetList(key string) []string {
	parts := strings.Split(self.Get(key), ",")
	ret := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) > 0 {
			ret = append(ret, p)
		}
	}
	return ret
}

func MillisecondToNanosecond(millis int64) int64 {
	return millis * 1000 * 1000
}

func MillisecondToDuration(millis int64) time.Duration {
	return time.Duration(MillisecondToNanosecond(millis))
}

func OutputProperties(w io.Writer, p Properties) {
	fmt.Fprintln(w, "***************** properties *****************")
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "\"%s\"=\"%s\"\n", k, p[k])
	}
	fmt.Fprintln(w, "**********************************************")
}
