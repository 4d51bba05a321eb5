// AngelaMos | 2026
// csv.go

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/carterperez-dev/balansai/internal/core"
)

const (
	TimeLayout   = "2006-01-02 15:04"
	NotAvailable = "N/A"
)

// Column is one named CSV column and how to render it from a row.
type Column[T any] struct {
	Header string
	Value  func(row *T) string
}

// Writer writes rows of T under a fixed header.
type Writer[T any] struct {
	csv     *csv.Writer
	columns []Column[T]
	record  []string
	rows    int
}

func NewWriter[T any](w io.Writer, columns []Column[T]) (*Writer[T], error) {
	cw := csv.NewWriter(w)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Header
	}
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	return &Writer[T]{
		csv:     cw,
		columns: columns,
		record:  make([]string, len(columns)),
	}, nil
}

func (w *Writer[T]) Write(row *T) error {
	for i, c := range w.columns {
		w.record[i] = c.Value(row)
	}
	if err := w.csv.Write(w.record); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	w.rows++
	return nil
}

// Flush must be called once after the last row.
func (w *Writer[T]) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

func (w *Writer[T]) Rows() int {
	return w.rows
}

// Attachment sets the download headers for name-YYYYMMDD.csv.
func Attachment(w http.ResponseWriter, name string, now time.Time) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s-%s.csv"`, name, now.Format("20060102")),
	)
	w.Header().Set("Cache-Control", "no-store")
}

// Response defers the download headers until the first byte goes out,
// so a failure before any output can still become an error page.
type Response struct {
	w       http.ResponseWriter
	name    string
	now     time.Time
	started bool
}

func NewResponse(w http.ResponseWriter, name string, now time.Time) *Response {
	return &Response{w: w, name: name, now: now}
}

func (r *Response) Write(p []byte) (int, error) {
	if !r.started {
		Attachment(r.w, r.name, r.now)
		r.started = true
	}
	return r.w.Write(p)
}

// Started reports whether the headers and any bytes have been sent.
func (r *Response) Started() bool {
	return r.started
}

func ActiveText(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func YesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func Text(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

func OptionalText(s *string) string {
	if s == nil {
		return NotAvailable
	}
	return Text(*s)
}

func Time(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.Format(TimeLayout)
}

func OptionalTime(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}
	return Time(*t)
}

func Int(n int64) string {
	return strconv.FormatInt(n, 10)
}

func Money(a core.Amount) string {
	return a.String()
}
