package mapbench

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Record is the machine readable result of one case. Durations are kept
// in whole nanoseconds.
type Record struct {
	Name       string        `json:"name"`
	TotalOps   uint64        `json:"total_ops"`
	Threads    int           `json:"threads"`
	Spent      time.Duration `json:"spent"`
	Throughput float64       `json:"throughput"`
	Latency    time.Duration `json:"latency"`
	// Not part of the CSV form.
	RunID string `json:"run_id,omitempty"`
}

var (
	RecordHeader = []string{"name", "total_ops", "threads", "spent", "throughput", "latency"}
)

func NewRecord(name string, m *Measurement) *Record {
	return &Record{
		Name:       name,
		TotalOps:   m.TotalOps,
		Threads:    m.Threads,
		Spent:      m.Spent,
		Throughput: m.Throughput,
		Latency:    m.Latency,
	}
}

func (self *Record) String() string {
	return fmt.Sprintf("total_ops=%d\tthreads=%d\tspent=%s\tlatency=%s\tthroughput=%.0fop/s",
		self.TotalOps, self.Threads, self.Spent.Round(100*time.Microsecond),
		self.Latency, self.Throughput)
}

// Fields returns the CSV fields of this record in `RecordHeader` order.
// Throughput is written with the shortest representation that parses back
// to the same float64.
func (self *Record) Fields() []string {
	return []string{
		self.Name,
		strconv.FormatUint(self.TotalOps, 10),
		strconv.Itoa(self.Threads),
		strconv.FormatInt(int64(self.Spent), 10),
		strconv.FormatFloat(self.Throughput, 'f', -1, 64),
		strconv.FormatInt(int64(self.Latency), 10),
	}
}

// ParseRecordFields is the inverse of Fields.
func ParseRecordFields(fields []string) (*Record, error) {
	if len(fields) != len(RecordHeader) {
		return nil, fmt.Errorf("record has %d fields, want %d", len(fields), len(RecordHeader))
	}
	totalOps, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid total_ops: %w", err)
	}
	threads, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("invalid threads: %w", err)
	}
	spent, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid spent: %w", err)
	}
	throughput, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid throughput: %w", err)
	}
	latency, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latency: %w", err)
	}
	return &Record{
		Name:       fields[0],
		TotalOps:   totalOps,
		Threads:    threads,
		Spent:      time.Duration(spent),
		Throughput: throughput,
		Latency:    time.Duration(latency),
	}, nil
}

// WriteRecords writes records as CSV, preceded by the header line if header
// is set.
func WriteRecords(w io.Writer, records []*Record, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(RecordHeader); err != nil {
			return err
		}
	}
	for _, r := range records {
		if err := cw.Write(r.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseRecords reads CSV records written by WriteRecords, with or without
// the header line.
func ParseRecords(r io.Reader) ([]*Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(RecordHeader)
	records := make([]*Record, 0)
	for line := 1; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && isRecordHeader(fields) {
			continue
		}
		record, err := ParseRecordFields(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, record)
	}
}

func isRecordHeader(fields []string) bool {
	for i, h := range RecordHeader {
		if fields[i] != h {
			return false
		}
	}
	return true
}
