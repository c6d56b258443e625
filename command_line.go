package mapbench

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
)

var (
	// flag name to the property it sets
	flagProperties = []struct {
		flag     string
		property string
	}{
		{"workload", PropertyWorkload},
		{"operations", PropertyOperations},
		{"capacity-log2", PropertyInitialCapacityLog2},
		{"prefill", PropertyPrefillFraction},
		{"distribution", PropertyRequestDistribution},
		{"seed", PropertySeed},
		{"hasher", PropertyHasher},
		{"gc-sleep-ms", PropertyGCSleep},
		{"gc-rounds", PropertyGCRounds},
		{"pin-cpus", PropertyPinCPUs},
		{"sample-every", PropertySampleEvery},
		{"output", PropertyExporter},
		{"csv-no-headers", PropertyCSVNoHeaders},
		{"export-file", PropertyExportFile},
		{"metrics-addr", PropertyMetricsAddr},
		{"log-level", PropertyLogLevel},
		{"log-json", PropertyLogJSON},
	}
)

func ExitOnError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}

func propertyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "P", Usage: "specify a property file (YAML)"},
		&cli.StringSliceFlag{Name: "p", Usage: "specify a property value as name=value"},
		&cli.StringFlag{Name: "log-level", Value: PropertyLogLevelDefault, Usage: "verbose, debug, info, warn, error or quiet"},
		&cli.BoolFlag{Name: "log-json", Usage: "log JSON lines"},
	}
}

func runFlags() []cli.Flag {
	return append(propertyFlags(),
		&cli.StringFlag{Name: "workload", Aliases: []string{"w"}, Value: PropertyWorkloadDefault, Usage: "workload preset"},
		&cli.Float64Flag{Name: "operations", Aliases: []string{"o"}, Value: 1, Usage: "operations per thread as a multiple of the initial capacity"},
		&cli.IntSliceFlag{Name: "threads", Usage: "thread counts, derived from the cpu count if unset"},
		&cli.StringFlag{Name: "hasher", Aliases: []string{"H"}, Value: PropertyHasherDefault, Usage: "hash function of hashing backends: maphash, xxhash, murmur3 or fnv"},
		&cli.StringSliceFlag{Name: "skip", Usage: "backends to skip"},
		&cli.StringSliceFlag{Name: "backend", Usage: "backends to run, every in-process backend if unset"},
		&cli.BoolFlag{Name: "csv", Usage: "export records as CSV"},
		&cli.BoolFlag{Name: "csv-no-headers", Usage: "omit the CSV header line"},
		&cli.StringFlag{Name: "output", Value: PropertyExporterDefault, Usage: "exporter: text, csv, json or jsonarray"},
		&cli.StringFlag{Name: "export-file", Usage: "write records to this file, strftime conversions allowed"},
		&cli.Int64Flag{Name: "gc-sleep-ms", Value: 2000, Usage: "pause between two cases"},
		&cli.IntFlag{Name: "gc-rounds", Value: 32, Usage: "forced garbage collections between two cases"},
		&cli.Uint64Flag{Name: "seed", Usage: "seed of the operation logs"},
		&cli.UintFlag{Name: "capacity-log2", Usage: "log2 of the initial capacity, overrides the preset"},
		&cli.Float64Flag{Name: "prefill", Usage: "prefill fraction, overrides the preset"},
		&cli.StringFlag{Name: "distribution", Usage: "key distribution: uniform, zipfian, hotspot, exponential or sequential"},
		&cli.IntFlag{Name: "sample-every", Usage: "time every Nth operation into a latency histogram"},
		&cli.BoolFlag{Name: "pin-cpus", Usage: "pin worker threads to cpus"},
		&cli.StringFlag{Name: "metrics-addr", Usage: "serve prometheus metrics on this address"},
	)
}

// buildProperties merges, from lowest to highest precedence, the property
// file, MAPBENCH_* environment variables, -p pairs and explicit flags.
func buildProperties(c *cli.Context) (Properties, error) {
	p, err := LoadProperties(c.String("P"), EnvPrefix)
	if err != nil {
		return nil, err
	}
	for _, kv := range c.StringSlice("p") {
		k, v, err := ParseProperty(kv)
		if err != nil {
			return nil, err
		}
		p.Add(k, v)
	}
	for _, f := range flagProperties {
		if c.IsSet(f.flag) {
			p.Add(f.property, c.String(f.flag))
		}
	}
	if c.IsSet("threads") {
		items := make([]string, 0)
		for _, n := range c.IntSlice("threads") {
			items = append(items, strconv.Itoa(n))
		}
		p.Add(PropertyThreads, strings.Join(items, ","))
	}
	if c.IsSet("skip") {
		p.Add(PropertySkip, strings.Join(c.StringSlice("skip"), ","))
	}
	if c.IsSet("backend") {
		p.Add(PropertyBackends, strings.Join(c.StringSlice("backend"), ","))
	}
	if c.Bool("csv") && !c.IsSet("output") {
		p.Add(PropertyExporter, "csv")
	}
	return p, nil
}

func newArguments(c *cli.Context) (*Arguments, error) {
	p, err := buildProperties(c)
	if err != nil {
		return nil, err
	}
	logger, err := NewLoggerFromProperties(p, c.App.ErrWriter)
	if err != nil {
		return nil, err
	}
	return &Arguments{
		Command:    c.Command.Name,
		Properties: p,
		Stdin:      c.App.Reader,
		Stdout:     c.App.Writer,
		Logger:     logger,
	}, nil
}

// NewApp creates the command line application over the given streams.
func NewApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "mapbench",
		Usage:     "benchmark concurrent maps under mixed workloads",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run a workload against backends for a range of thread counts",
				Flags: runFlags(),
				Action: func(c *cli.Context) error {
					args, err := newArguments(c)
					if err != nil {
						return err
					}
					return NewRunner(args).Main()
				},
			},
			{
				Name:      "shell",
				Usage:     "run single operations against one backend",
				ArgsUsage: "backend",
				Flags:     propertyFlags(),
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("shell takes exactly one backend")
					}
					args, err := newArguments(c)
					if err != nil {
						return err
					}
					args.Backend = c.Args().First()
					return NewShell(args).Main()
				},
			},
			{
				Name:  "list",
				Usage: "list the registered backends, workloads and exporters",
				Action: func(c *cli.Context) error {
					return listRegistered(c.App.Writer)
				},
			},
			{
				Name:      "report",
				Usage:     "render CSV records as a table",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					var r io.Reader = c.App.Reader
					if c.NArg() > 0 {
						f, err := os.Open(c.Args().First())
						if err != nil {
							return err
						}
						defer f.Close()
						r = f
					}
					records, err := ParseRecords(r)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(c.App.Writer, RenderReport(records))
					return err
				},
			},
		},
	}
}

func listRegistered(w io.Writer) error {
	fmt.Fprintln(w, "Backends:")
	for _, name := range BackendNames() {
		info := Backends[name]
		remote := ""
		if info.Remote {
			remote = " (remote, run with --backend)"
		}
		fmt.Fprintf(w, "  %-16s %s%s\n", name, info.Doc, remote)
	}
	fmt.Fprintln(w, "Workloads:")
	for _, name := range WorkloadNames() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w, "Exporters:")
	names := make([]string, 0, len(RecordExporters))
	for name := range RecordExporters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}
	return nil
}

func Main() {
	app := NewApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		ExitOnError("%s", err)
	}
}
