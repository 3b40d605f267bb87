// Package export pushes scored leads into external lead databases.
package export

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/scrape"
	"github.com/sells-group/outreach-cli/pkg/notion"
)

// Notion lead database property names.
const (
	PropName           = "Name"
	PropURL            = "URL"
	PropEmail          = "Email"
	PropIndustry       = "Industry"
	PropLocation       = "Location"
	PropPriorityScore  = "Priority Score"
	PropScoreBreakdown = "Score Breakdown"
	PropOpener         = "Opener"
	PropSubject        = "Subject"
)

// Result counts pages written by one export.
type Result struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// NotionExporter upserts leads into a Notion database keyed by company name.
type NotionExporter struct {
	client notion.Client
	dbID   string
}

// NewNotionExporter creates a NotionExporter for the given database.
func NewNotionExporter(client notion.Client, dbID string) *NotionExporter {
	return &NotionExporter{client: client, dbID: dbID}
}

// Export writes one page per lead, updating pages whose Name matches the
// company name and creating the rest. Leads without a real company name are
// always created. It stops at the first API error.
func (e *NotionExporter) Export(ctx context.Context, leads []model.Lead) (Result, error) {
	var res Result

	existing, err := notion.QueryAll(ctx, e.client, e.dbID, nil)
	if err != nil {
		return res, eris.Wrap(err, "export: load lead database")
	}
	index := make(map[string]string, len(existing))
	for _, p := range existing {
		if name := pageKey(notion.PageTitle(p, PropName)); name != "" {
			index[name] = string(p.ID)
		}
	}

	for i := range leads {
		lead := &leads[i]
		if err := ctx.Err(); err != nil {
			return res, eris.Wrap(err, "export: cancelled")
		}

		props := LeadProperties(*lead)
		key := pageKey(lead.CompanyName)

		if pageID, ok := index[key]; ok && key != "" {
			if _, err := e.client.UpdatePage(ctx, pageID, &notionapi.PageUpdateRequest{Properties: props}); err != nil {
				return res, eris.Wrapf(err, "export: update lead %s", lead.ID)
			}
			res.Updated++
			continue
		}

		page, err := e.client.CreatePage(ctx, &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: notionapi.DatabaseID(e.dbID),
			},
			Properties: props,
		})
		if err != nil {
			return res, eris.Wrapf(err, "export: create lead %s", lead.ID)
		}
		if page != nil && key != "" {
			index[key] = string(page.ID)
		}
		res.Created++
	}

	zap.L().Info("export: leads written to notion",
		zap.String("database", e.dbID),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
	)
	return res, nil
}

// LeadProperties maps a lead onto the lead database schema. Optional values
// that are empty are left out so existing page values are not cleared.
func LeadProperties(lead model.Lead) notionapi.Properties {
	props := notionapi.Properties{
		PropName:          notion.Title(lead.CompanyName),
		PropIndustry:      notion.RichText(lead.Industry),
		PropLocation:      notion.RichText(lead.Location),
		PropPriorityScore: notion.Number(float64(lead.PriorityScoreInfo.Total)),
		PropScoreBreakdown: notion.RichText(
			strings.Join(lead.PriorityScoreInfo.Breakdown.Explanations, "\n"),
		),
	}
	if lead.Website != "" {
		props[PropURL] = notion.URL(scrape.NormalizeURL(lead.Website))
	}
	if lead.OwnerEmail != "" {
		props[PropEmail] = notion.Email(lead.OwnerEmail)
	}
	if lead.AIOpener != "" {
		props[PropOpener] = notion.RichText(lead.AIOpener)
	}
	if lead.AISubject != "" {
		props[PropSubject] = notion.RichText(lead.AISubject)
	}
	return props
}

// pageKey is the upsert key for a company name. Blank names and the
// placeholder company have no key, so those leads always get their own page.
func pageKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == strings.ToLower(model.UnknownCompany) {
		return ""
	}
	return key
}
