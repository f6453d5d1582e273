package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PAVAN2627/PharmaGen-AI-sub000/internal/vcf"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <input-file>",
		Short: "Check the structural format of a variant file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer file.Close()

			if err := vcf.Validate(file); err != nil {
				return fmt.Errorf("invalid: %w", err)
			}

			fmt.Println("ok")
			return nil
		},
	}
}
