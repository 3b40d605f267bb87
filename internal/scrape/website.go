package scrape

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FailureMarker starts every Snapshot paragraph that carries a scrape error
// instead of site content.
const FailureMarker = "Scraping failed:"

// FailurePrefix is the marker plus separator used when building failure notes.
const FailurePrefix = FailureMarker + " "

// DefaultUserAgent identifies as a search crawler; many small-business sites
// serve bots a static page.
const DefaultUserAgent = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"

// minParagraphWords is the word count a <p> must exceed to be preferred.
const minParagraphWords = 10

// Snapshot is the small slice of a company homepage used to personalize an
// opener. Either field may be empty.
type Snapshot struct {
	Title     string `json:"title,omitempty"`
	Paragraph string `json:"paragraph,omitempty"`
}

// Failed reports whether the snapshot carries a scrape error.
func (s Snapshot) Failed() bool { return IsFailure(s.Paragraph) }

// IsFailure reports whether paragraph is a scrape failure note.
func IsFailure(paragraph string) bool {
	return strings.HasPrefix(paragraph, FailureMarker)
}

// Options configures a WebsiteScraper. Zero values fall back to defaults.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
}

// WebsiteScraper fetches a homepage and extracts its title and first
// meaningful paragraph.
type WebsiteScraper struct {
	client    *http.Client
	userAgent string
	maxBody   int64
}

// NewWebsiteScraper creates a WebsiteScraper.
func NewWebsiteScraper(opts Options) *WebsiteScraper {
	if opts.Timeout <= 0 {
		opts.Timeout = 7 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 2 << 20
	}
	return &WebsiteScraper{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: opts.Timeout,
				}).DialContext,
				TLSHandshakeTimeout: opts.Timeout,
			},
		},
		userAgent: opts.UserAgent,
		maxBody:   opts.MaxBodyBytes,
	}
}

// Scrape never fails: errors are reported in-band as a Paragraph beginning
// with FailurePrefix.
func (s *WebsiteScraper) Scrape(ctx context.Context, rawURL string) Snapshot {
	snap, err := s.fetch(ctx, NormalizeURL(rawURL))
	if err != nil {
		zap.L().Warn("scrape: website failed",
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return Snapshot{Paragraph: FailurePrefix + err.Error()}
	}
	return snap
}

func (s *WebsiteScraper) fetch(ctx context.Context, target string) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Snapshot{}, eris.Wrap(err, "scrape: create request")
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return Snapshot{}, eris.Wrap(err, "scrape: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBody))
	if err != nil {
		return Snapshot{}, eris.Wrap(err, "scrape: read body")
	}

	if resp.StatusCode >= 400 {
		if blocked, blockType := DetectBlock(resp, body); blocked {
			return Snapshot{}, eris.Errorf("scrape: blocked (%s)", blockType)
		}
		return Snapshot{}, eris.Errorf("scrape: status %d", resp.StatusCode)
	}

	snap, err := extractSnapshot(body)
	if err != nil {
		return Snapshot{}, err
	}

	// Anti-bot markers only matter when the page gave us nothing to use.
	if snap.Title == "" && snap.Paragraph == "" {
		if blocked, blockType := DetectBlock(resp, body); blocked {
			return Snapshot{}, eris.Errorf("scrape: blocked (%s)", blockType)
		}
	}
	return snap, nil
}

func extractSnapshot(body []byte) (Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Snapshot{}, eris.Wrap(err, "scrape: parse html")
	}

	snap := Snapshot{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	var firstNonEmpty string
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return true
		}
		if firstNonEmpty == "" {
			firstNonEmpty = text
		}
		if len(strings.Split(text, " ")) > minParagraphWords {
			snap.Paragraph = text
			return false
		}
		return true
	})
	if snap.Paragraph == "" {
		snap.Paragraph = firstNonEmpty
	}

	return snap, nil
}

// NormalizeURL prefixes https:// when rawURL has no http(s) scheme.
func NormalizeURL(rawURL string) string {
	u := strings.TrimSpace(rawURL)
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}
