package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var openersCmd = &cobra.Command{
	Use:   "openers",
	Short: "Score leads and draft an AI opener for each one",
	Long: `Scores a lead export, then asks Claude for a 2-sentence cold-email opener for
every lead, highest priority first. Leads without a real industry and
location are skipped. One failed lead never stops the batch.

Examples:
  openers --file leads.csv --sales-goal "fleet telematics" --output openers.json
  openers --file leads.csv --subjects --format csv --output outreach.csv`,
	RunE: runOpeners,
}

func init() {
	f := openersCmd.Flags()
	f.String("file", "", "lead export (.csv or .xlsx)")
	f.String("sales-goal", "", "product or goal to frame the openers (default from config)")
	f.Bool("subjects", false, "also draft a subject line for each generated opener")
	f.String("format", formatJSON, "output format: table, csv, json, or yaml")
	f.String("output", "", "output file path (default: stdout)")
	f.Int("limit", 0, "only process the first N rows (0 = all)")
	_ = openersCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(openersCmd)
}

func runOpeners(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("openers"); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	withSubjects, _ := cmd.Flags().GetBool("subjects")
	if !validFormat(format) {
		return eris.Errorf("openers: --format must be table, csv, json, or yaml (got %q)", format)
	}

	leads, err := loadLeads(cmd)
	if err != nil {
		return eris.Wrap(err, "openers: load leads")
	}

	goal := salesGoal(cmd)
	batch := newBatch(newGenerator())

	sum, err := batch.GenerateOpeners(ctx, leads, goal)
	if err != nil {
		return err
	}

	var subjects int
	if withSubjects {
		subjects, err = batch.GenerateSubjects(ctx, leads, goal)
		if err != nil {
			return err
		}
	}

	zap.L().Info("openers complete",
		zap.Int("leads", len(leads)),
		zap.Int("generated", sum.Generated),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
		zap.Int("subjects", subjects),
	)

	if err := withOutput(outputPath, func(w io.Writer) error {
		return writeLeads(w, leads, format)
	}); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Openers: %d generated, %d skipped, %d failed\n", sum.Generated, sum.Skipped, sum.Failed)
	return nil
}
