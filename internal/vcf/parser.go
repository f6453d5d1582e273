package vcf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Parser reads records from a variant file.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	header     []string
	errorCount int
}

// NewParser creates a new parser for the given file.
// Supports both plain and gzipped (.vcf.gz) files.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open variant file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read variant file header: %w", err)
	}

	if _, err = file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek variant file: %w", err)
	}

	// Gzip magic number (0x1f, 0x8b)
	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader) (*Parser, error) {
	p := &Parser{
		reader: bufio.NewReader(r),
	}

	if err := p.parseHeader(); err != nil {
		return nil, err
	}

	return p, nil
}

// parseHeader reads and stores header lines up to and including #CHROM.
func (p *Parser) parseHeader() error {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read header: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "##") {
			p.header = append(p.header, line)
			continue
		}

		if strings.HasPrefix(line, "#CHROM") {
			p.header = append(p.header, line)
			return nil
		}

		return &ParseError{
			Line:    p.lineNumber,
			Message: "expected #CHROM header line",
		}
	}

	return &ParseError{
		Line:    p.lineNumber,
		Message: "no #CHROM header line found",
	}
}

// Next reads the next record from the file.
// Malformed lines are counted and skipped, never fatal.
// Returns nil, nil when there are no more records.
func (p *Parser) Next() (*Record, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				if line = strings.TrimRight(line, "\r\n"); line != "" {
					return p.parseDataLine(line), nil
				}
				return nil, nil
			}
			return nil, fmt.Errorf("read record line: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if rec := p.parseDataLine(line); rec != nil {
			return rec, nil
		}
		// Soft parse error, keep going.
	}
}

// parseDataLine parses a data line, counting malformities and returning nil
// for lines that cannot form a record.
func (p *Parser) parseDataLine(line string) *Record {
	rec, err := parseLine(line)
	if err != nil {
		p.errorCount++
		return nil
	}
	return rec
}

// parseLine parses a single tab-separated data line into a Record.
func parseLine(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return nil, &ParseError{
			Message: fmt.Sprintf("expected at least 8 columns, found %d", len(fields)),
		}
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &ParseError{
			Message: fmt.Sprintf("invalid position: %s", fields[1]),
		}
	}

	qual := 0.0
	if fields[5] != "." {
		qual, err = strconv.ParseFloat(fields[5], 64)
		if err != nil || qual < 0 || math.IsNaN(qual) || math.IsInf(qual, 0) {
			return nil, &ParseError{
				Message: fmt.Sprintf("invalid quality: %s", fields[5]),
			}
		}
	}

	id := fields[2]
	if id == "." {
		id = ""
	}

	rec := &Record{
		Chrom:    fields[0],
		Pos:      pos,
		ID:       id,
		Ref:      fields[3],
		Alt:      fields[4],
		Qual:     qual,
		Filter:   fields[6],
		Info:     parseInfo(fields[7]),
		Genotype: extractGenotype(fields),
	}
	rec.extractTags()

	return rec, nil
}

// parseInfo parses the INFO field into a map.
// Keys with no "=" are flag-type and stored as boolean true.
func parseInfo(info string) map[string]interface{} {
	result := make(map[string]interface{})
	if info == "." {
		return result
	}

	for _, kv := range strings.Split(info, ";") {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			result[parts[0]] = parts[1]
		} else {
			result[parts[0]] = true
		}
	}

	return result
}

// extractGenotype pulls the GT value from the FORMAT and first sample columns.
// Absence of either column, or of the GT key, yields NoCall.
func extractGenotype(fields []string) string {
	if len(fields) < 10 {
		return NoCall
	}

	gtIndex := -1
	for i, key := range strings.Split(fields[8], ":") {
		if key == "GT" {
			gtIndex = i
			break
		}
	}
	if gtIndex < 0 {
		return NoCall
	}

	sample := strings.Split(fields[9], ":")
	if gtIndex >= len(sample) {
		return NoCall
	}

	return sample[gtIndex]
}

// Parse reads all records from r in one pass.
// Blank lines and comment lines are skipped; malformed data lines are
// counted in errCount and skipped. Header lines are not required here;
// use Validate for structural checks.
func Parse(r io.Reader) (records []*Record, errCount int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rec, perr := parseLine(line)
		if perr != nil {
			errCount++
			continue
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return records, errCount, fmt.Errorf("read input: %w", err)
	}

	return records, errCount, nil
}

// Header returns the header lines seen before the first data line.
func (p *Parser) Header() []string {
	return p.header
}

// ErrorCount returns the number of malformed data lines skipped so far.
func (p *Parser) ErrorCount() int {
	return p.errorCount
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error during parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}
