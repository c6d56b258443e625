package mapbench

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hhkbp2/go-strftime"
	"github.com/hhkbp2/testify/require"
)

func newTestArguments(stdin string, stdout *bytes.Buffer) *Arguments {
	p := NewProperties()
	p.Add(PropertyWorkload, testWorkloadName)
	p.Add(PropertyBackends, "basic")
	p.Add(PropertyThreads, "1")
	p.Add(PropertyGCSleep, "0")
	p.Add(PropertyGCRounds, "0")
	return &Arguments{
		Properties: p,
		Stdin:      strings.NewReader(stdin),
		Stdout:     stdout,
		Logger:     hclog.NewNullLogger(),
	}
}

func TestShell(t *testing.T) {
	var out bytes.Buffer
	input := "insert 5\nget 5\n\nupdate 0x5\nremove 5\nget 5\nget\nget x\nbogus\nhelp\nquit\nget 1\n"
	args := newTestArguments(input, &out)
	args.Backend = "basic"
	require.Nil(t, NewShell(args).Main())
	s := out.String()
	require.Equal(t, 4, strings.Count(s, "Result: true"))
	require.Equal(t, 1, strings.Count(s, "Result: false"))
	require.True(t, strings.Contains(s, `Error: syntax is "get key"`))
	require.True(t, strings.Contains(s, "Error: invalid key: x"))
	require.True(t, strings.Contains(s, `Error: unknown command "bogus"`))
	require.True(t, strings.Contains(s, "Commands"))
}

func TestShellIndentedCommands(t *testing.T) {
	var out bytes.Buffer
	input := "  insert 7\n\tget  7 \n   \n remove 7\t\nquit\n"
	args := newTestArguments(input, &out)
	args.Backend = "basic"
	require.Nil(t, NewShell(args).Main())
	require.Equal(t, 3, strings.Count(out.String(), "Result: true"))
}

func TestShellUnknownBackend(t *testing.T) {
	var out bytes.Buffer
	args := newTestArguments("", &out)
	args.Backend = "nope"
	require.NotNil(t, NewShell(args).Main())
}

func TestRunnerExportFile(t *testing.T) {
	var out bytes.Buffer
	args := newTestArguments("", &out)
	pattern := filepath.Join(t.TempDir(), "bench-%Y.csv")
	args.Add(PropertyExportFile, pattern)
	args.Add(PropertyExporter, "csv")
	require.Nil(t, NewRunner(args).Main())
	require.Equal(t, "", out.String())

	f, err := os.Open(strftime.Format(pattern, time.Now()))
	require.Nil(t, err)
	defer f.Close()
	records, err := ParseRecords(f)
	require.Nil(t, err)
	require.Equal(t, 1, len(records))
	require.Equal(t, uint64(256), records[0].TotalOps)
}

func TestRunnerStdout(t *testing.T) {
	var out bytes.Buffer
	args := newTestArguments("", &out)
	args.Add(PropertyExporter, "jsonarray")
	require.Nil(t, NewRunner(args).Main())
	require.True(t, strings.HasPrefix(out.String(), `[{"name":"basic"`))
	require.True(t, strings.HasSuffix(out.String(), "]"))

	args = newTestArguments("", &out)
	args.Add(PropertyExporter, "yaml")
	require.NotNil(t, NewRunner(args).Main())
}
