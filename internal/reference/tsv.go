package reference

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// TSV column layout for reference tables:
// rsid  gene  star_allele  chrom  pos  ref  alt  function  evidence  significance  drugs
const tsvColumns = 11

// LoadTSV reads a reference table from a tab-separated file.
// Comment lines and the column-header line are skipped.
func LoadTSV(path string) ([]*Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference table: %w", err)
	}
	defer file.Close()

	entries, err := ParseTSV(file)
	if err != nil {
		return nil, fmt.Errorf("parse reference table %s: %w", path, err)
	}
	return entries, nil
}

// ParseTSV reads reference entries from r.
func ParseTSV(r io.Reader) ([]*Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []*Entry
	lineNo := 0

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineNo++

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if lineNo == 1 && strings.HasPrefix(line, "rsid\t") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < tsvColumns {
			return nil, fmt.Errorf("line %d: expected %d columns, found %d", lineNo, tsvColumns, len(fields))
		}

		pos, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid position: %s", lineNo, fields[4])
		}

		entry := &Entry{
			RSID:         fields[0],
			Gene:         fields[1],
			StarAllele:   fields[2],
			Chrom:        fields[3],
			Pos:          pos,
			Ref:          fields[5],
			Alt:          fields[6],
			Function:     FunctionalStatus(fields[7]),
			Evidence:     EvidenceLevel(fields[8]),
			Significance: fields[9],
		}
		if fields[10] != "" && fields[10] != "." {
			entry.Drugs = strings.Split(fields[10], ",")
		}

		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read reference table: %w", err)
	}

	return entries, nil
}
