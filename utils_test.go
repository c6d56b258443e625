package mapbench

import (
	"bytes"
	"testing"
	"time"

	"github.com/hhkbp2/testify/require"
)

func TestProperties(t *testing.T) {
	k := "key"
	v := "value"
	p := NewProperties()
	p.Add(k, v)
	x := p.Get(k)
	require.Equal(t, v, x)
	x = p.GetDefault(k, "other")
	require.Equal(t, v, x)
	require.Equal(t, "other", p.GetDefault("missing", "other"))
	require.Equal(t, "", p.Get("missing"))
	k1 := "a"
	v1 := "b"
	p2 := map[string]string{k1: v1, k: "overwritten"}
	p.Merge(p2)
	require.Equal(t, v1, p.Get(k1))
	require.Equal(t, "overwritten", p.Get(k))
}

func TestPropertiesTypedGetters(t *testing.T) {
	p := NewProperties()
	p.Add("int", "0x10")
	p.Add("float", "2.5")
	p.Add("bool", "true")
	p.Add("bad", "x")

	i, err := p.GetInt64("int", "0")
	require.Nil(t, err)
	require.Equal(t, int64(16), i)
	i, err = p.GetInt64("missing", "-3")
	require.Nil(t, err)
	require.Equal(t, int64(-3), i)
	_, err = p.GetInt64("bad", "0")
	require.NotNil(t, err)

	u, err := p.GetUint64("int", "0")
	require.Nil(t, err)
	require.Equal(t, uint64(16), u)
	_, err = p.GetUint64("missing", "-1")
	require.NotNil(t, err)

	f, err := p.GetFloat64("float", "0")
	require.Nil(t, err)
	require.Equal(t, 2.5, f)
	_, err = p.GetFloat64("bad", "0")
	require.NotNil(t, err)

	b, err := p.GetBool("bool", "false")
	require.Nil(t, err)
	require.True(t, b)
	_, err = p.GetBool("bad", "false")
	require.NotNil(t, err)
}

func TestPropertiesGetList(t *testing.T) {
	p := NewProperties()
	require.Equal(t, []string{}, p.GetList("missing"))
	p.Add("list", " a, b,,c ,")
	require.Equal(t, []string{"a", "b", "c"}, p.GetList("list"))
}

func TestToTime(t *testing.T) {
	millisecond := int64(12345)
	nanosecond := MillisecondToNanosecond(millisecond)
	require.Equal(t, millisecond*1000*1000, nanosecond)
	require.Equal(t, 12345*time.Millisecond, MillisecondToDuration(millisecond))
}

func TestOutputProperties(t *testing.T) {
	p := NewProperties()
	p.Add("b", "2")
	p.Add("a", "1")
	var buf bytes.Buffer
	OutputProperties(&buf, p)
	expected := "***************** properties *****************\n" +
		"\"a\"=\"1\"\n" +
		"\"b\"=\"2\"\n" +
		"**********************************************\n"
	require.Equal(t, expected, buf.String())
}
