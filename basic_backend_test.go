package mapbench

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestBasicCollection(t *testing.T) {
	c, err := NewBasicCollection(NewProperties(), 16)
	require.Nil(t, err)
	h := c.Pin()
	require.False(t, h.Get(1))
	require.False(t, h.Update(1))
	require.True(t, h.Insert(1))
	require.False(t, h.Insert(1))
	require.True(t, h.Update(1))
	require.Equal(t, 1, c.Len())
	require.True(t, h.Remove(1))
	require.False(t, h.Remove(1))
	require.Equal(t, 0, c.Len())
	require.Nil(t, c.Close())
}

func TestBasicCollectionVerbose(t *testing.T) {
	p := NewProperties()
	p.Add(ConfigBasicVerbose, "true")
	c, err := NewBasicCollection(p, 16)
	require.Nil(t, err)
	var buf bytes.Buffer
	c.SetOutput(&buf)
	h := c.Pin()
	h.Insert(3)
	h.Get(3)
	h.Update(4)
	h.Remove(3)
	expected := "INSERT 3 true\nGET 3 true\nUPDATE 4 false\nREMOVE 3 true\n"
	require.Equal(t, expected, buf.String())
}

func TestBasicCollectionDelay(t *testing.T) {
	p := NewProperties()
	p.Add(ConfigSimulateDelay, "1")
	p.Add(ConfigRandomizeDelay, "false")
	c, err := NewBasicCollection(p, 16)
	require.Nil(t, err)
	require.Equal(t, int64(1), c.toDelay)
	require.True(t, c.Pin().Insert(1))

	p.Add(ConfigSimulateDelay, "soon")
	_, err = NewBasicCollection(p, 16)
	require.NotNil(t, err)
	require.True(t, strings.Contains(err.Error(), ConfigSimulateDelay))
}
