package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/output"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/pipeline"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/reference"
	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/vcf"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		referencePath string
		outputFormat  string
		outputFile    string
		workers       int
		drug          string
	)

	cmd := &cobra.Command{
		Use:   "analyze <input-file>",
		Short: "Analyze variants in a VCF file against the reference table",
		Example: `  pharmgen analyze input.vcf
  pharmgen analyze --drug codeine input.vcf
  pharmgen analyze --reference table.tsv -f tab -o report.tsv input.vcf
  cat input.vcf | pharmgen analyze -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args[0], referencePath, outputFormat, outputFile, workers, drug)
		},
	}

	cmd.Flags().StringVar(&referencePath, "reference", "", "Reference table (.tsv or .duckdb; default: built-in table)")
	cmd.Flags().StringVarP(&outputFormat, "output-format", "f", "summary", "Output format: summary, tab")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Matching workers (0 = number of CPUs)")
	cmd.Flags().StringVar(&drug, "drug", "", "Restrict narratives to genes relevant to this drug")

	return cmd
}

func runAnalyze(inputPath, referencePath, outputFormat, outputFile string, workers int, drug string) error {
	logger := newLogger()
	defer logger.Sync()

	table, err := loadReferenceTable(referencePath)
	if err != nil {
		return err
	}

	parser, err := vcf.NewParser(inputPath)
	if err != nil {
		return err
	}
	defer parser.Close()

	var records []*vcf.Record
	for {
		rec, err := parser.Next()
		if err != nil {
			return fmt.Errorf("read variants: %w", err)
		}
		if rec == nil {
			break
		}
		records = append(records, rec)
	}

	p := pipeline.New(table, reference.GeneDrugs())
	p.SetLogger(logger)
	p.SetWorkers(workers)
	if drug == "" {
		drug = viper.GetString("analysis.drug")
	}
	p.SetDrug(drug)

	res, err := p.Analyze(context.Background(), records, parser.ErrorCount())
	if err != nil {
		return err
	}

	out := os.Stdout
	if outputFile != "" {
		out, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
	}

	switch outputFormat {
	case "tab":
		tw := output.NewTabWriter(out)
		if err := tw.WriteHeader(); err != nil {
			return err
		}
		for _, m := range res.Matched {
			if err := tw.Write(m); err != nil {
				return err
			}
		}
		return tw.Flush()
	case "summary":
		return output.NewSummaryWriter(out).WriteResult(res)
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
}

// loadReferenceTable picks a loader by path: built-in when empty, DuckDB
// for .duckdb files, TSV otherwise.
func loadReferenceTable(path string) ([]*reference.Entry, error) {
	if path == "" {
		path = viper.GetString("reference.path")
	}
	if path == "" {
		return reference.Builtin(), nil
	}

	if strings.HasSuffix(path, ".duckdb") || strings.HasPrefix(path, "s3://") {
		loader, err := reference.NewDuckDBLoader(path)
		if err != nil {
			return nil, err
		}
		defer loader.Close()
		return loader.LoadAll()
	}

	return reference.LoadTSV(path)
}
