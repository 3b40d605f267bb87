package notion

import (
	"github.com/jomei/notionapi"
)

// MaxTextLength is the longest content Notion accepts in one rich text item.
const MaxTextLength = 2000

// Title builds a title property.
func Title(s string) notionapi.TitleProperty {
	return notionapi.TitleProperty{
		Type:  notionapi.PropertyTypeTitle,
		Title: textItems(s),
	}
}

// RichText builds a rich_text property.
func RichText(s string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{
		Type:     notionapi.PropertyTypeRichText,
		RichText: textItems(s),
	}
}

// URL builds a url property.
func URL(s string) notionapi.URLProperty {
	return notionapi.URLProperty{
		Type: notionapi.PropertyTypeURL,
		URL:  s,
	}
}

// Email builds an email property.
func Email(s string) notionapi.EmailProperty {
	return notionapi.EmailProperty{
		Type:  notionapi.PropertyTypeEmail,
		Email: s,
	}
}

// Number builds a number property.
func Number(v float64) notionapi.NumberProperty {
	return notionapi.NumberProperty{
		Type:   notionapi.PropertyTypeNumber,
		Number: v,
	}
}

func textItems(s string) []notionapi.RichText {
	return []notionapi.RichText{
		{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: truncate(s)}},
	}
}

// truncate cuts s to MaxTextLength runes.
func truncate(s string) string {
	r := []rune(s)
	if len(r) <= MaxTextLength {
		return s
	}
	return string(r[:MaxTextLength])
}

// PlainText concatenates the plain text of rich text items.
func PlainText(rts []notionapi.RichText) string {
	var s string
	for _, rt := range rts {
		if rt.PlainText != "" {
			s += rt.PlainText
		} else if rt.Text != nil {
			s += rt.Text.Content
		}
	}
	return s
}

// PageTitle returns the plain text of a page's title property.
func PageTitle(p notionapi.Page, prop string) string {
	switch tp := p.Properties[prop].(type) {
	case *notionapi.TitleProperty:
		return PlainText(tp.Title)
	case notionapi.TitleProperty:
		return PlainText(tp.Title)
	}
	return ""
}
