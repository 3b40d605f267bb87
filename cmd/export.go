package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/export"
	"github.com/sells-group/outreach-cli/pkg/notion"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Upsert scored leads into the Notion lead database",
	Long: `Scores a lead export and writes one page per lead to the Notion database set
by notion.lead_db. Pages are matched by company name: existing pages are
updated, new leads are created. With --openers, AI openers and subjects are
drafted first and exported alongside the scores.`,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.String("file", "", "lead export (.csv or .xlsx)")
	f.Bool("openers", false, "draft AI openers and subjects before exporting")
	f.String("sales-goal", "", "product or goal to frame the openers (default from config)")
	f.Int("limit", 0, "only export the first N rows (0 = all)")
	_ = exportCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	withOpeners, _ := cmd.Flags().GetBool("openers")
	if err := cfg.Validate("export"); err != nil {
		return err
	}
	if withOpeners {
		if err := cfg.Validate("openers"); err != nil {
			return err
		}
	}

	leads, err := loadLeads(cmd)
	if err != nil {
		return eris.Wrap(err, "export: load leads")
	}

	if withOpeners {
		goal := salesGoal(cmd)
		batch := newBatch(newGenerator())
		if _, err := batch.GenerateOpeners(ctx, leads, goal); err != nil {
			return err
		}
		if _, err := batch.GenerateSubjects(ctx, leads, goal); err != nil {
			return err
		}
	}

	client := notion.NewClient(cfg.Notion.Token, notion.WithRateLimit(cfg.Notion.RateLimit))
	res, err := export.NewNotionExporter(client, cfg.Notion.LeadDB).Export(ctx, leads)
	if err != nil {
		zap.L().Error("export incomplete",
			zap.Int("created", res.Created),
			zap.Int("updated", res.Updated),
			zap.Error(err),
		)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d leads to Notion (%d created, %d updated)\n",
		res.Created+res.Updated, res.Created, res.Updated)
	return nil
}
