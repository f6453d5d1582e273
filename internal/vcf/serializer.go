package vcf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultHeader is the minimal header block written when the caller
// provides none. Serialized output re-validates under Validate.
var DefaultHeader = []string{
	"##fileformat=VCFv4.2",
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tSAMPLE",
}

// Serialize writes records back to the tab-separated text form.
// It is a left inverse of parsing: re-parsing the output reproduces
// every field, with INFO keys compared order-insensitively and quality
// within a small float tolerance.
func Serialize(records []*Record, header []string) string {
	var b strings.Builder

	if len(header) == 0 {
		header = DefaultHeader
	}
	for _, line := range header {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	for _, rec := range records {
		b.WriteString(serializeRecord(rec))
		b.WriteByte('\n')
	}

	return b.String()
}

func serializeRecord(rec *Record) string {
	id := rec.ID
	if id == "" {
		id = "."
	}

	qual := "."
	if rec.Qual != 0 {
		qual = strconv.FormatFloat(rec.Qual, 'g', -1, 64)
	}

	fields := []string{
		rec.Chrom,
		strconv.FormatInt(rec.Pos, 10),
		id,
		rec.Ref,
		rec.Alt,
		qual,
		rec.Filter,
		serializeInfo(rec.Info),
	}

	if rec.Genotype != "" && rec.Genotype != NoCall {
		fields = append(fields, "GT", rec.Genotype)
	}

	return strings.Join(fields, "\t")
}

// serializeInfo writes the tag map in sorted key order so output is
// deterministic. Flag-type keys are written bare.
func serializeInfo(info map[string]interface{}) string {
	if len(info) == 0 {
		return "."
	}

	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := info[k].(type) {
		case bool:
			parts = append(parts, k)
		case string:
			parts = append(parts, k+"="+v)
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}

	return strings.Join(parts, ";")
}
