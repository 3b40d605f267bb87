package scrape

import "context"

// Scraper fetches a company website and summarizes it as a Snapshot.
type Scraper interface {
	Scrape(ctx context.Context, rawURL string) Snapshot
}

var _ Scraper = (*WebsiteScraper)(nil)
