package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score and rank leads from a CSV or XLSX export",
	Long: `Parses a lead export, normalizes revenue, employee count, and location,
and ranks every lead by a 0-100 priority score built from revenue, headcount,
owner title seniority, and BBB rating.

Examples:
  # Ranked table on stdout
  score --file leads.csv

  # Top 25 as CSV
  score --file leads.xlsx --limit 25 --format csv --output ranked.csv

  # Full breakdowns as YAML
  score --file leads.csv --format yaml`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("file", "", "lead export to score (.csv or .xlsx)")
	f.String("format", formatTable, "output format: table, csv, json, or yaml")
	f.String("output", "", "output file path (default: stdout)")
	f.Int("limit", 0, "only score the first N rows (0 = all)")
	_ = scoreCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate("score"); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	if !validFormat(format) {
		return eris.Errorf("score: --format must be table, csv, json, or yaml (got %q)", format)
	}

	leads, err := loadLeads(cmd)
	if err != nil {
		return eris.Wrap(err, "score: load leads")
	}
	zap.L().Info("leads scored", zap.String("command", "score"), zap.Int("leads", len(leads)))

	if err := withOutput(outputPath, func(w io.Writer) error {
		return writeLeads(w, leads, format)
	}); err != nil {
		return err
	}

	if format == formatTable {
		printLeadSummary(os.Stdout, leads)
	}
	return nil
}
