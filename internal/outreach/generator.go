// Package outreach writes cold-email openers and subject lines for scored
// leads using an Anthropic model.
package outreach

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/config"
	"github.com/sells-group/outreach-cli/internal/scrape"
	"github.com/sells-group/outreach-cli/pkg/anthropic"
)

// ErrInvalidInput marks a request missing a required field.
var ErrInvalidInput = eris.New("outreach: invalid input")

const (
	fieldOpener  = "opener"
	fieldSubject = "subject"
)

// OpenerInput describes a lead for a standard opener.
type OpenerInput struct {
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	Website     string `json:"website,omitempty"`
	SalesGoal   string `json:"salesGoal,omitempty"`
}

// Validate checks the required fields.
func (in OpenerInput) Validate() error {
	return requireFields(map[string]string{
		"companyName": in.CompanyName,
		"industry":    in.Industry,
		"location":    in.Location,
	})
}

// DeepDiveInput describes a lead whose website is scraped before prompting.
type DeepDiveInput struct {
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	WebsiteURL  string `json:"websiteUrl"`
	SalesGoal   string `json:"salesGoal,omitempty"`
}

// Validate checks the required fields.
func (in DeepDiveInput) Validate() error {
	return requireFields(map[string]string{
		"companyName": in.CompanyName,
		"industry":    in.Industry,
		"location":    in.Location,
		"websiteUrl":  in.WebsiteURL,
	})
}

// SubjectInput describes an email whose opener is already written.
type SubjectInput struct {
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
	Opener      string `json:"opener"`
	SalesGoal   string `json:"salesGoal,omitempty"`
}

// Validate checks the required fields.
func (in SubjectInput) Validate() error {
	return requireFields(map[string]string{
		"companyName": in.CompanyName,
		"industry":    in.Industry,
		"opener":      in.Opener,
	})
}

func requireFields(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return eris.Wrapf(ErrInvalidInput, "missing %s", strings.Join(missing, ", "))
}

// Copywriter produces the text of an outreach email.
type Copywriter interface {
	Opener(ctx context.Context, in OpenerInput) (string, error)
	DeepDiveOpener(ctx context.Context, in DeepDiveInput) (string, error)
	Subject(ctx context.Context, in SubjectInput) (string, error)
}

// Generator implements Copywriter on top of the Anthropic Messages API.
type Generator struct {
	client    anthropic.Client
	scraper   scrape.Scraper
	model       string
	maxTokens   int64
	temperature float64
}

var _ Copywriter = (*Generator)(nil)

// NewGenerator creates a Generator. scraper may be nil when deep dives are
// not used.
func NewGenerator(client anthropic.Client, scraper scrape.Scraper, cfg config.AnthropicConfig) *Generator {
	return &Generator{
		client:    client,
		scraper:   scraper,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// Opener writes a 2-sentence opener from the lead's company, industry, and
// location.
func (g *Generator) Opener(ctx context.Context, in OpenerInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	return g.complete(ctx, "opener", buildOpenerPrompt(in), fieldOpener)
}

// DeepDiveOpener scrapes the lead's website and writes an opener grounded in
// what it found. A failed scrape still produces an opener.
func (g *Generator) DeepDiveOpener(ctx context.Context, in DeepDiveInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	if g.scraper == nil {
		return "", eris.New("outreach: deep dive requires a website scraper")
	}

	snap := g.scraper.Scrape(ctx, in.WebsiteURL)
	zap.L().Debug("outreach: website scraped",
		zap.String("company", in.CompanyName),
		zap.String("url", in.WebsiteURL),
		zap.Bool("failed", snap.Failed()),
	)

	return g.complete(ctx, "deep_dive", buildDeepDivePrompt(in, snap), fieldOpener)
}

// Subject writes a subject line for an email with the given opener.
func (g *Generator) Subject(ctx context.Context, in SubjectInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	return g.complete(ctx, "subject", buildSubjectPrompt(in), fieldSubject)
}

func (g *Generator) complete(ctx context.Context, flow, prompt, field string) (string, error) {
	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		Temperature: &g.temperature,
		System:      []anthropic.SystemBlock{{Text: systemPrompt}},
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", eris.Wrapf(err, "outreach: %s", flow)
	}
	resp.Usage.LogCost(g.model, flow)

	text, err := decodeReply(resp.Text(), field)
	if err != nil {
		return "", eris.Wrapf(err, "outreach: %s", flow)
	}
	return text, nil
}

// decodeReply extracts a non-empty string field from a JSON model reply.
func decodeReply(text, field string) (string, error) {
	var reply map[string]any
	if err := json.Unmarshal([]byte(cleanJSON(text)), &reply); err != nil {
		return "", eris.Wrap(err, "parse reply json")
	}
	v, ok := reply[field].(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", eris.Errorf("reply has no %q", field)
	}
	return strings.TrimSpace(v), nil
}

// cleanJSON extracts a JSON object from text that may contain markdown code
// fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	for _, fence := range []string{"```json", "```"} {
		if rest, ok := strings.CutPrefix(text, fence); ok {
			text = rest
			if idx := strings.LastIndex(text, "```"); idx >= 0 {
				text = text[:idx]
			}
			break
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
