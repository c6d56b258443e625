package mapbench

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hhkbp2/go-strftime"
	"github.com/prometheus/client_golang/prometheus"
)

type Client interface {
	Main() error
}

// Arguments carries what a client needs from the command line.
type Arguments struct {
	Command string
	Backend string
	Properties
	Stdin  io.Reader
	Stdout io.Writer
	Logger hclog.Logger
}

// Runner sweeps the configured backends and thread counts and exports
// one record per case.
type Runner struct {
	args *Arguments
}

func NewRunner(args *Arguments) *Runner {
	return &Runner{
		args: args,
	}
}

func (self *Runner) openOutput() (io.WriteCloser, error) {
	pattern := self.args.Get(PropertyExportFile)
	if len(pattern) == 0 {
		return NopWriteCloser(self.args.Stdout), nil
	}
	path := strftime.Format(pattern, time.Now())
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("fail to create export file: %w", err)
	}
	return f, nil
}

func (self *Runner) Main() error {
	logger := loggerOrNull(self.args.Logger)
	sweep, err := NewSweepFromProperties(self.args.Properties, logger)
	if err != nil {
		return err
	}
	registry := prometheus.NewRegistry()
	sweep.Metrics = NewMetrics(registry)
	if addr := self.args.Get(PropertyMetricsAddr); len(addr) > 0 {
		server := ServeMetrics(addr, registry, logger)
		defer server.Close()
	}
	w, err := self.openOutput()
	if err != nil {
		return err
	}
	exporter, err := NewRecordExporter(
		self.args.GetDefault(PropertyExporter, PropertyExporterDefault), w, self.args.Properties)
	if err != nil {
		w.Close()
		return err
	}
	logger.Info("sweep started", "run", sweep.RunID, "backends", sweep.BackendNames(),
		"threads", sweep.Threads)
	err = sweep.Run(exporter.Write)
	if cerr := exporter.Close(); err == nil {
		err = cerr
	}
	return err
}

// Shell runs single operations against one collection interactively.
type Shell struct {
	args *Arguments
}

func NewShell(args *Arguments) *Shell {
	return &Shell{
		args: args,
	}
}

func (self *Shell) println(format string, args ...interface{}) {
	fmt.Fprintf(self.args.Stdout, format, args...)
	fmt.Fprintln(self.args.Stdout)
}

func (self *Shell) Main() error {
	self.println("mapbench Command Line Client")
	self.println(`Type "help" for command line help`)

	newCollection, err := NewBackend(self.args.Backend, self.args.Properties, self.args.Logger)
	if err != nil {
		return err
	}
	capacityLog2, err := self.args.GetInt64(PropertyInitialCapacityLog2, "10")
	if err != nil {
		return err
	}
	if capacityLog2 < 0 || capacityLog2 > MaxInitialCapacityLog2 {
		return fmt.Errorf("%w: initial capacity log2 %d", ErrInvalidWorkload, capacityLog2)
	}
	collection, err := construct(newCollection, 1<<capacityLog2)
	if err != nil {
		return err
	}
	t := newLeaseTable(collection)
	l := t.pin()
	defer func() {
		l.release()
		closeTable(t, loggerOrNull(self.args.Logger))
	}()

	self.println("Connected.")
	scanner := bufio.NewScanner(self.args.Stdin)
	for {
		fmt.Fprint(self.args.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		startTime := time.Now()
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "help":
			self.help()
			continue
		case "quit":
			return nil
		case "get", "insert", "remove", "update":
			if len(parts) != 2 {
				self.println(`Error: syntax is "%s key"`, parts[0])
				continue
			}
			key, err := strconv.ParseUint(parts[1], 0, 64)
			if err != nil {
				self.println("Error: invalid key: %s", parts[1])
				continue
			}
			var ok bool
			switch parts[0] {
			case "get":
				ok = l.Get(key)
			case "insert":
				ok = l.Insert(key)
			case "remove":
				ok = l.Remove(key)
			case "update":
				ok = l.Update(key)
			}
			self.println("Result: %v", ok)
		default:
			self.println(`Error: unknown command "%s"`, parts[0])
			continue
		}
		self.println("%s", time.Since(startTime))
	}
	return scanner.Err()
}

func (self *Shell) help() {
	helpFormat := `Commands
  get key - Check whether key is present
  insert key - Insert key if absent
  remove key - Remove key if present
  update key - Update the value of key if present
  quit - Quit`
	self.println("%s", helpFormat)
}
