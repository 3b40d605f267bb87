package notion

import (
	"strings"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyBuilders(t *testing.T) {
	title := Title("Acme Plumbing")
	assert.Equal(t, notionapi.PropertyTypeTitle, title.Type)
	require.Len(t, title.Title, 1)
	assert.Equal(t, "Acme Plumbing", title.Title[0].Text.Content)

	rt := RichText("Austin, TX")
	assert.Equal(t, notionapi.PropertyTypeRichText, rt.Type)
	assert.Equal(t, "Austin, TX", PlainText(rt.RichText))

	assert.Equal(t, "https://acme.com", URL("https://acme.com").URL)
	assert.Equal(t, "jane@acme.com", Email("jane@acme.com").Email)
	assert.InDelta(t, 72, Number(72).Number, 0)
}

func TestRichText_Truncates(t *testing.T) {
	long := strings.Repeat("é", MaxTextLength+10)
	rt := RichText(long)
	assert.Equal(t, MaxTextLength, len([]rune(rt.RichText[0].Text.Content)))
}

func TestPlainText(t *testing.T) {
	rts := []notionapi.RichText{
		{PlainText: "Acme "},
		{Text: &notionapi.Text{Content: "Plumbing"}},
		{},
	}
	assert.Equal(t, "Acme Plumbing", PlainText(rts))
	assert.Empty(t, PlainText(nil))
}

func TestPageTitle(t *testing.T) {
	page := notionapi.Page{
		Properties: notionapi.Properties{
			"Name": &notionapi.TitleProperty{
				Title: []notionapi.RichText{{PlainText: "Acme Plumbing"}},
			},
			"Location": &notionapi.RichTextProperty{
				RichText: []notionapi.RichText{{PlainText: "Austin"}},
			},
		},
	}
	assert.Equal(t, "Acme Plumbing", PageTitle(page, "Name"))
	assert.Empty(t, PageTitle(page, "Location"))
	assert.Empty(t, PageTitle(page, "Missing"))

	valuePage := notionapi.Page{Properties: notionapi.Properties{"Name": Title("Built")}}
	assert.Equal(t, "Built", PageTitle(valuePage, "Name"))
}
