// Package output provides report formatters for analysis results.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/match"
)

// TabWriter writes matched variants in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited report writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Variant",
			"Location",
			"Gene",
			"Star_Allele",
			"RS_ID",
			"Function",
			"Evidence",
			"Match_Strategy",
			"Match_Confidence",
			"Genotype",
			"Drugs",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single matched variant.
func (tw *TabWriter) Write(m *match.Matched) error {
	variant := fmt.Sprintf("%s_%d_%s/%s", m.Record.Chrom, m.Record.Pos, m.Record.Ref, m.Record.Alt)
	location := fmt.Sprintf("%s:%d", m.Record.Chrom, m.Record.Pos)

	star := m.Entry.StarAllele
	if star == "" {
		star = "-"
	}

	drugs := "-"
	if len(m.Entry.Drugs) > 0 {
		drugs = strings.Join(m.Entry.Drugs, ",")
	}

	fields := []string{
		variant,
		location,
		m.Entry.Gene,
		star,
		m.Entry.RSID,
		string(m.Entry.Function),
		string(m.Entry.Evidence),
		string(m.Strategy),
		strconv.FormatFloat(m.Confidence, 'f', 2, 64),
		m.Record.Genotype,
		drugs,
	}

	_, err := tw.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// Flush flushes buffered output.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
