package vcf

import (
	"bufio"
	"io"
	"strings"
)

// Validate checks the structural format of a variant file: the first line
// must be a ##fileformat= version header and a #CHROM column-header line
// must follow before any data. An input with zero data lines is valid
// (it represents "no variants").
func Validate(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	sawChromHeader := false

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineNo++

		if lineNo == 1 {
			if !strings.HasPrefix(line, "##fileformat=") {
				return &ParseError{
					Line:    1,
					Message: "missing ##fileformat= version header",
				}
			}
			continue
		}

		if strings.HasPrefix(line, "##") || line == "" {
			continue
		}

		if strings.HasPrefix(line, "#CHROM") {
			sawChromHeader = true
			continue
		}

		// Data line before the column header is a structural error.
		if !sawChromHeader {
			return &ParseError{
				Line:    lineNo,
				Message: "data line before #CHROM column header",
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	if lineNo == 0 {
		return &ParseError{Line: 0, Message: "empty input"}
	}
	if !sawChromHeader {
		return &ParseError{Line: lineNo, Message: "no #CHROM column header found"}
	}

	return nil
}
