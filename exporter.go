package mapbench

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	g "github.com/hhkbp2/mapbench/generator"
)

// RecordExporter exports the results of cases into a useful format, for
// example human readable text or machine readable CSV and JSON.
type RecordExporter interface {
	// Write exports one case. m carries the details not part of a Record
	// and may be nil.
	Write(r *Record, m *Measurement) error
	io.Closer
}

type MakeRecordExporterFunc func(w io.WriteCloser, p Properties) (RecordExporter, error)

var (
	RecordExporters map[string]MakeRecordExporterFunc
)

func init() {
	RecordExporters = map[string]MakeRecordExporterFunc{
		"text": func(w io.WriteCloser, _ Properties) (RecordExporter, error) {
			return NewTextRecordExporter(w), nil
		},
		"csv": func(w io.WriteCloser, p Properties) (RecordExporter, error) {
			noHeaders, err := p.GetBool(PropertyCSVNoHeaders, PropertyCSVNoHeadersDefault)
			if err != nil {
				return nil, err
			}
			return NewCSVRecordExporter(w, !noHeaders), nil
		},
		"json": func(w io.WriteCloser, _ Properties) (RecordExporter, error) {
			return NewJSONRecordExporter(w), nil
		},
		"jsonarray": func(w io.WriteCloser, _ Properties) (RecordExporter, error) {
			return NewJSONArrayRecordExporter(w), nil
		},
	}
}

func NewRecordExporter(className string, w io.WriteCloser, p Properties) (RecordExporter, error) {
	f, ok := RecordExporters[className]
	if !ok {
		return nil, g.NewErrorf("unsupported record exporter: %s", className)
	}
	return f(w, p)
}

func closeBuffered(buf *bufio.Writer, w io.Closer) error {
	err := buf.Flush()
	err2 := w.Close()
	if err != nil {
		return err
	}
	return err2
}

// TextRecordExporter writes one line per case, grouped under the name of
// the backend.
type TextRecordExporter struct {
	io.WriteCloser
	buf      *bufio.Writer
	lastName string
}

func NewTextRecordExporter(w io.WriteCloser) *TextRecordExporter {
	return &TextRecordExporter{
		WriteCloser: w,
		buf:         bufio.NewWriter(w),
	}
}

func (self *TextRecordExporter) Write(r *Record, m *Measurement) error {
	if r.Name != self.lastName {
		if len(self.lastName) > 0 {
			if _, err := self.buf.WriteString("\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(self.buf, "-- %s\n", r.Name); err != nil {
			return err
		}
		self.lastName = r.Name
	}
	if _, err := fmt.Fprintln(self.buf, r.String()); err != nil {
		return err
	}
	if m != nil && m.Sampled != nil {
		if _, err := fmt.Fprintf(self.buf, "\tsampled: %s\n", m.Sampled); err != nil {
			return err
		}
	}
	// keep progress visible on long sweeps
	return self.buf.Flush()
}

func (self *TextRecordExporter) Close() error {
	return closeBuffered(self.buf, self.WriteCloser)
}

// CSVRecordExporter writes records in the form ParseRecords reads.
type CSVRecordExporter struct {
	io.WriteCloser
	w      *csv.Writer
	header bool
}

func NewCSVRecordExporter(w io.WriteCloser, header bool) *CSVRecordExporter {
	return &CSVRecordExporter{
		WriteCloser: w,
		w:           csv.NewWriter(w),
		header:      header,
	}
}

func (self *CSVRecordExporter) Write(r *Record, _ *Measurement) error {
	if self.header {
		if err := self.w.Write(RecordHeader); err != nil {
			return err
		}
		self.header = false
	}
	if err := self.w.Write(r.Fields()); err != nil {
		return err
	}
	self.w.Flush()
	return self.w.Error()
}

func (self *CSVRecordExporter) Close() error {
	self.w.Flush()
	err := self.w.Error()
	err2 := self.WriteCloser.Close()
	if err != nil {
		return err
	}
	return err2
}

type innerJSONRecord struct {
	*Record
	Hits    uint64          `json:"hits"`
	Misses  uint64          `json:"misses"`
	Sampled *LatencySummary `json:"sampled,omitempty"`
}

func newInnerJSONRecord(r *Record, m *Measurement) *innerJSONRecord {
	ret := &innerJSONRecord{
		Record: r,
	}
	if m != nil {
		ret.Hits = m.Hits
		ret.Misses = m.Misses
		ret.Sampled = m.Sampled
	}
	return ret
}

// JSONRecordExporter writes one JSON object per line.
type JSONRecordExporter struct {
	io.WriteCloser
	buf *bufio.Writer
}

func NewJSONRecordExporter(w io.WriteCloser) *JSONRecordExporter {
	return &JSONRecordExporter{
		WriteCloser: w,
		buf:         bufio.NewWriter(w),
	}
}

func (self *JSONRecordExporter) Write(r *Record, m *Measurement) error {
	b, err := json.Marshal(newInnerJSONRecord(r, m))
	if err != nil {
		return err
	}
	if _, err = self.buf.Write(b); err != nil {
		return err
	}
	_, err = self.buf.WriteString("\n")
	return err
}

func (self *JSONRecordExporter) Close() error {
	return closeBuffered(self.buf, self.WriteCloser)
}

// JSONArrayRecordExporter writes a single JSON array of record objects.
type JSONArrayRecordExporter struct {
	io.WriteCloser
	buf        *bufio.Writer
	afterFirst bool
}

func NewJSONArrayRecordExporter(w io.WriteCloser) *JSONArrayRecordExporter {
	object := &JSONArrayRecordExporter{
		WriteCloser: w,
		buf:         bufio.NewWriter(w),
		afterFirst:  false,
	}
	object.buf.WriteString("[")
	return object
}

func (self *JSONArrayRecordExporter) Write(r *Record, m *Measurement) error {
	b, err := json.Marshal(newInnerJSONRecord(r, m))
	if err != nil {
		return err
	}
	if self.afterFirst {
		_, err = self.buf.WriteString(",")
		if err != nil {
			return err
		}
	} else {
		self.afterFirst = true
	}
	_, err = self.buf.Write(b)
	return err
}

func (self *JSONArrayRecordExporter) Close() error {
	_, err := self.buf.WriteString("]")
	if err != nil {
		return err
	}
	return closeBuffered(self.buf, self.WriteCloser)
}

// nopCloser keeps a shared stream such as stdout open when an exporter
// closes.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

// NopWriteCloser wraps w with a no-op Close.
func NopWriteCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}
