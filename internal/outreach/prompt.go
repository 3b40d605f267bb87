package outreach

import (
	"fmt"
	"strings"

	"github.com/sells-group/outreach-cli/internal/scrape"
)

// systemPrompt is sent as the system block on every request.
const systemPrompt = `You are an expert sales development representative who writes cold-email copy for small and mid-sized businesses.
Keep the tone professional yet curious, never pushy, and do not offer a solution in the opening lines.
Always answer with the single JSON object requested and nothing else.`

const openerPrompt = `Write a compelling, 2-sentence opening for a cold email.
Sentence 1 must be a personalized observation that mentions the prospect's company name (%s), their industry (%s), and their location (%s).
Sentence 2 must be an insightful, open-ended question that connects their industry to a common business challenge, creating a reason to talk.
Keep the tone professional yet curious. Do not offer a solution yet.
`

const deepDivePrompt = `Write a compelling, concise, hyper-personalized opening for a cold email.
Use the website information below (title and snippet, when available) to make the opener specific to the company.
Naturally mention the company name, "%s". Keep the tone professional yet curious.
Highlight something specific from their website and connect it to a relevant observation. Do not offer a solution yet.

Company Name: %s
Industry: %s
Location: %s
`

const deepDiveFallback = `If the website information is missing or the scrape failed, write the best opener you can from the industry, location, and company name, in the same tone.
`

const subjectPrompt = `Write a concise and compelling subject line for a cold outreach email.
The email is for %s, a company in the %s industry.
The opening line of the email body is: "%s"
`

const replyFormat = `
Respond with only a JSON object of the form {"%s": "<text>"} and nothing else.`

func buildOpenerPrompt(in OpenerInput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, openerPrompt, in.CompanyName, in.Industry, in.Location)
	if in.SalesGoal != "" {
		fmt.Fprintf(&sb, "Consider this sales goal when framing the challenge: %s\n", in.SalesGoal)
	}
	fmt.Fprintf(&sb, replyFormat, fieldOpener)
	return sb.String()
}

func buildDeepDivePrompt(in DeepDiveInput, snap scrape.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, deepDivePrompt, in.CompanyName, in.CompanyName, in.Industry, in.Location)
	if in.SalesGoal != "" {
		fmt.Fprintf(&sb, "Sales Goal/Product: %s\n", in.SalesGoal)
	}
	if snap.Title != "" {
		fmt.Fprintf(&sb, "Website Title: %q\n", snap.Title)
	}
	if snap.Failed() {
		fmt.Fprintf(&sb, "Note: the website could not be read: %s\n", strings.TrimSpace(strings.TrimPrefix(snap.Paragraph, scrape.FailureMarker)))
	} else if snap.Paragraph != "" {
		fmt.Fprintf(&sb, "Snippet from their website: %q\n", snap.Paragraph)
	}
	if snap.Failed() || (snap.Title == "" && snap.Paragraph == "") {
		sb.WriteString(deepDiveFallback)
	}
	fmt.Fprintf(&sb, replyFormat, fieldOpener)
	return sb.String()
}

func buildSubjectPrompt(in SubjectInput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, subjectPrompt, in.CompanyName, in.Industry, in.Opener)
	if in.SalesGoal != "" {
		fmt.Fprintf(&sb, "The sender's sales goal is: %q\n", in.SalesGoal)
	}
	sb.WriteString("Make it engaging, relevant, and likely to get the email opened.\n")
	fmt.Fprintf(&sb, replyFormat, fieldSubject)
	return sb.String()
}
