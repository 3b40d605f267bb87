package outreach

import (
	"context"
	"errors"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/config"
	"github.com/sells-group/outreach-cli/internal/scrape"
	"github.com/sells-group/outreach-cli/pkg/anthropic"
)

var testAICfg = config.AnthropicConfig{Model: "claude-haiku-4-5-20251001", MaxTokens: 512, Temperature: 0.7}

func TestGenerator_Opener(t *testing.T) {
	ctx := context.Background()
	aiClient := &mockAnthropicClient{}

	var captured anthropic.MessageRequest
	aiClient.On("CreateMessage", ctx, mock.AnythingOfType("anthropic.MessageRequest")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(anthropic.MessageRequest) }).
		Return(textResponse("```json\n{\"opener\": \"Acme keeps Austin's pipes running. How are you handling the spring rush?\"}\n```"), nil)

	gen := NewGenerator(aiClient, nil, testAICfg)
	opener, err := gen.Opener(ctx, OpenerInput{
		CompanyName: "Acme Plumbing",
		Industry:    "Plumbing",
		Location:    "Austin, TX",
		SalesGoal:   "dispatch software",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme keeps Austin's pipes running. How are you handling the spring rush?", opener)

	assert.Equal(t, "claude-haiku-4-5-20251001", captured.Model)
	assert.Equal(t, int64(512), captured.MaxTokens)
	require.NotNil(t, captured.Temperature)
	assert.InDelta(t, 0.7, *captured.Temperature, 0.001)
	require.Len(t, captured.System, 1)
	assert.Equal(t, systemPrompt, captured.System[0].Text)
	assert.Contains(t, captured.System[0].Text, "expert sales development representative")
	require.Len(t, captured.Messages, 1)
	prompt := captured.Messages[0].Content
	assert.Contains(t, prompt, "Acme Plumbing")
	assert.Contains(t, prompt, "Plumbing")
	assert.Contains(t, prompt, "Austin, TX")
	assert.Contains(t, prompt, "dispatch software")
	assert.Contains(t, prompt, `{"opener": "<text>"}`)
	assert.NotContains(t, prompt, "You are an expert")
	aiClient.AssertExpectations(t)
}

func TestGenerator_Opener_NoSalesGoal(t *testing.T) {
	ctx := context.Background()
	aiClient := &mockAnthropicClient{}

	var prompt string
	aiClient.On("CreateMessage", ctx, mock.Anything).
		Run(func(args mock.Arguments) { prompt = args.Get(1).(anthropic.MessageRequest).Messages[0].Content }).
		Return(textResponse(`{"opener": "Hi."}`), nil)

	_, err := NewGenerator(aiClient, nil, testAICfg).Opener(ctx, OpenerInput{
		CompanyName: "Acme", Industry: "HVAC", Location: "Denver",
	})
	require.NoError(t, err)
	assert.NotContains(t, prompt, "sales goal")
}

func TestGenerator_Opener_Validation(t *testing.T) {
	aiClient := &mockAnthropicClient{}
	gen := NewGenerator(aiClient, nil, testAICfg)

	_, err := gen.Opener(context.Background(), OpenerInput{CompanyName: "Acme"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "industry, location")
	aiClient.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestGenerator_Opener_APIError(t *testing.T) {
	ctx := context.Background()
	aiClient := &mockAnthropicClient{}
	aiClient.On("CreateMessage", ctx, mock.Anything).Return(nil, eris.New("overloaded"))

	_, err := NewGenerator(aiClient, nil, testAICfg).Opener(ctx, OpenerInput{
		CompanyName: "Acme", Industry: "HVAC", Location: "Denver",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outreach: opener")
}

func TestGenerator_Opener_BadReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "not json", reply: "Here is your opener: hello"},
		{name: "missing field", reply: `{"subject": "wrong"}`},
		{name: "empty field", reply: `{"opener": "   "}`},
		{name: "wrong type", reply: `{"opener": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			aiClient := &mockAnthropicClient{}
			aiClient.On("CreateMessage", ctx, mock.Anything).Return(textResponse(tt.reply), nil)

			_, err := NewGenerator(aiClient, nil, testAICfg).Opener(ctx, OpenerInput{
				CompanyName: "Acme", Industry: "HVAC", Location: "Denver",
			})
			assert.Error(t, err)
		})
	}
}

func TestGenerator_DeepDiveOpener_UsesSnippet(t *testing.T) {
	ctx := context.Background()
	aiClient := &mockAnthropicClient{}
	scraper := &mockScraper{}

	scraper.On("Scrape", ctx, "acme.com").Return(scrape.Snapshot{
		Title:     "Acme Plumbing | Austin",
		Paragraph: "Family owned since 1998 and proud to serve central Texas homeowners.",
	})

	var prompt string
	aiClient.On("CreateMessage", ctx, mock.Anything).
		Run(func(args mock.Arguments) { prompt = args.Get(1).(anthropic.MessageRequest).Messages[0].Content }).
		Return(textResponse(`{"opener": "Twenty-five years serving central Texas is no small thing."}`), nil)

	opener, err := NewGenerator(aiClient, scraper, testAICfg).DeepDiveOpener(ctx, DeepDiveInput{
		CompanyName: "Acme Plumbing",
		Industry:    "Plumbing",
		Location:    "Austin, TX",
		WebsiteURL:  "acme.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Twenty-five years serving central Texas is no small thing.", opener)
	assert.Contains(t, prompt, `Website Title: "Acme Plumbing | Austin"`)
	assert.Contains(t, prompt, "Snippet from their website")
	assert.Contains(t, prompt, "Family owned since 1998")
	assert.NotContains(t, prompt, "could not be read")
	scraper.AssertExpectations(t)
}

func TestGenerator_DeepDiveOpener_ScrapeFailure(t *testing.T) {
	ctx := context.Background()
	aiClient := &mockAnthropicClient{}
	scraper := &mockScraper{}

	scraper.On("Scrape", ctx, "https://down.example").Return(scrape.Snapshot{
		Paragraph: scrape.FailurePrefix + "scrape: status 503",
	})

	var prompt string
	aiClient.On("CreateMessage", ctx, mock.Anything).
		Run(func(args mock.Arguments) { prompt = args.Get(1).(anthropic.MessageRequest).Messages[0].Content }).
		Return(textResponse(`{"opener": "Fallback opener."}`), nil)

	opener, err := NewGenerator(aiClient, scraper, testAICfg).DeepDiveOpener(ctx, DeepDiveInput{
		CompanyName: "Down Co",
		Industry:    "Roofing",
		Location:    "Tulsa, OK",
		WebsiteURL:  "https://down.example",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fallback opener.", opener)
	assert.Contains(t, prompt, "could not be read: scrape: status 503")
	assert.NotContains(t, prompt, "Snippet from their website")
	assert.Contains(t, prompt, "If the website information is missing")
}

func TestGenerator_DeepDiveOpener_RequiresURL(t *testing.T) {
	gen := NewGenerator(&mockAnthropicClient{}, &mockScraper{}, testAICfg)
	_, err := gen.DeepDiveOpener(context.Background(), DeepDiveInput{
		CompanyName: "Acme", Industry: "HVAC", Location: "Denver",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "websiteUrl")
}

func TestGenerator_DeepDiveOpener_NoScraper(t *testing.T) {
	gen := NewGenerator(&mockAnthropicClient{}, nil, testAICfg)
	_, err := gen.DeepDiveOpener(context.Background(), DeepDiveInput{
		CompanyName: "Acme", Industry: "HVAC", Location: "Denver", WebsiteURL: "acme.com",
	})
	assert.Error(t, err)
}

func TestGenerator_Subject(t *testing.T) {
	ctx := context.Background()
	aiClient := &mockAnthropicClient{}

	var prompt string
	aiClient.On("CreateMessage", ctx, mock.Anything).
		Run(func(args mock.Arguments) { prompt = args.Get(1).(anthropic.MessageRequest).Messages[0].Content }).
		Return(textResponse(`Sure! {"subject": "Spring rush in Austin"}`), nil)

	subject, err := NewGenerator(aiClient, nil, testAICfg).Subject(ctx, SubjectInput{
		CompanyName: "Acme Plumbing",
		Industry:    "Plumbing",
		Opener:      "Acme keeps Austin's pipes running.",
		SalesGoal:   "dispatch software",
	})
	require.NoError(t, err)
	assert.Equal(t, "Spring rush in Austin", subject)
	assert.Contains(t, prompt, `"Acme keeps Austin's pipes running."`)
	assert.Contains(t, prompt, "dispatch software")
	assert.Contains(t, prompt, `{"subject": "<text>"}`)
}

func TestGenerator_Subject_Validation(t *testing.T) {
	_, err := NewGenerator(&mockAnthropicClient{}, nil, testAICfg).Subject(context.Background(), SubjectInput{
		CompanyName: "Acme", Industry: "HVAC",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opener")
}

func TestCleanJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `{"a": 1}`, want: `{"a": 1}`},
		{name: "json fence", in: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "bare fence", in: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "surrounding prose", in: `Here you go: {"a": 1} Hope it helps.`, want: `{"a": 1}`},
		{name: "no object", in: "  nothing  ", want: "nothing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cleanJSON(tt.in))
		})
	}
}
