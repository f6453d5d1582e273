package output

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/pipeline"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/reference"
)

func TestSummaryWriter(t *testing.T) {
	p := pipeline.New(reference.Builtin(), reference.GeneDrugs())

	input := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\n" +
		"22\t42130692\trs3892097\tC\tT\t35.2\tPASS\tGENE=CYP2D6;STAR=*4\tGT\t0/1\n"

	res, err := p.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewSummaryWriter(&buf).WriteResult(res))
	out := buf.String()

	assert.Contains(t, out, "Records")
	assert.Contains(t, out, "found_all_matched")
	assert.Contains(t, out, "CYP2D6")
	assert.Contains(t, out, "*1/*4")
	assert.Contains(t, out, "IM (Intermediate Metabolizer)")
	assert.Contains(t, out, "codeine")
	assert.NotContains(t, out, "Narrative contradictions")
}

func TestSummaryWriter_CompletenessNotApplicable(t *testing.T) {
	p := pipeline.New(reference.Builtin(), reference.GeneDrugs())

	input := "##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n"
	res, err := p.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewSummaryWriter(&buf).WriteResult(res))

	assert.Contains(t, buf.String(), "n/a")
	assert.Contains(t, buf.String(), "no_records")
}
