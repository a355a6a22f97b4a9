package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"github.com/ava12/tapegen/generate"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

type recordWriter interface {
	Write(r generate.Record) error
	Flush() error
}

func newRecordWriter(w io.Writer, format string) recordWriter {
	if format == "" {
		format = formatJSON
		if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			format = formatTable
		}
	}

	if format == formatTable {
		return &tableWriter{w: w}
	}
	return jsonWriter{json.NewEncoder(w)}
}

type jsonWriter struct {
	enc *json.Encoder
}

func (jw jsonWriter) Write(r generate.Record) error {
	return jw.enc.Encode(r)
}

func (jsonWriter) Flush() error {
	return nil
}

// tableWriter buffers records since table columns are the union of record tapes.
type tableWriter struct {
	w       io.Writer
	records []generate.Record
}

func (tw *tableWriter) Write(r generate.Record) error {
	tw.records = append(tw.records, r)
	return nil
}

func (tw *tableWriter) Flush() error {
	seen := make(map[string]bool)
	var header []string
	for _, r := range tw.records {
		for name := range r {
			if !seen[name] {
				seen[name] = true
				header = append(header, name)
			}
		}
	}
	sort.Strings(header)

	rows := make([][]string, len(tw.records))
	for i, r := range tw.records {
		row := make([]string, len(header))
		for j, name := range header {
			row[j] = fmt.Sprintf("%q", r[name])
		}
		rows[i] = row
	}
	tw.records = nil
	return writeTable(tw.w, header, rows)
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header)
	for _, row := range rows {
		if e := table.Append(row); e != nil {
			return e
		}
	}
	return table.Render()
}
