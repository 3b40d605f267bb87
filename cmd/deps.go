package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/outreach-cli/internal/ingest"
	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/outreach"
	"github.com/sells-group/outreach-cli/internal/scrape"
	"github.com/sells-group/outreach-cli/pkg/anthropic"
)

// newGenerator wires the Anthropic client and website scraper from config.
func newGenerator() *outreach.Generator {
	client := anthropic.NewClient(cfg.Anthropic.Key, cfg.Anthropic.BaseURL)
	scraper := scrape.NewWebsiteScraper(scrape.Options{
		Timeout:      time.Duration(cfg.Scrape.TimeoutSecs) * time.Second,
		UserAgent:    cfg.Scrape.UserAgent,
		MaxBodyBytes: cfg.Scrape.MaxBodyBytes,
	})
	return outreach.NewGenerator(client, scraper, cfg.Anthropic)
}

// newBatch wraps a Copywriter with the configured request rate.
func newBatch(w outreach.Copywriter) *outreach.Batch {
	return outreach.NewBatch(w, cfg.Anthropic.RequestsPerSecond)
}

// salesGoal returns the --sales-goal flag, falling back to config.
func salesGoal(cmd *cobra.Command) string {
	if v, _ := cmd.Flags().GetString("sales-goal"); v != "" {
		return v
	}
	return cfg.Outreach.SalesGoal
}

// loadLeads reads, scores, and sorts the leads in the --file export.
func loadLeads(cmd *cobra.Command) ([]model.Lead, error) {
	path, _ := cmd.Flags().GetString("file")
	limit, _ := cmd.Flags().GetInt("limit")
	return ingest.LoadFile(path, ingest.ProcessOptions{Limit: limit})
}
