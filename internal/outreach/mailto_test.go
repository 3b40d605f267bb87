package outreach

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/outreach-cli/internal/model"
)

func TestMailtoURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lead    model.Lead
		subject string
		want    string
	}{
		{
			name:    "full",
			lead:    model.Lead{CompanyName: "Acme", OwnerEmail: "jane@acme.com", AIOpener: "Hi Jane, quick question?"},
			subject: "Spring rush & you",
			want:    "mailto:jane%40acme.com?subject=Spring%20rush%20%26%20you&body=Hi%20Jane%2C%20quick%20question%3F",
		},
		{
			name: "fallback subject and no email",
			lead: model.Lead{CompanyName: "Acme", AIOpener: "Hello."},
			want: "mailto:?subject=Following%20up%20with%20Acme&body=Hello.",
		},
		{
			name:    "unreserved marks kept",
			lead:    model.Lead{AIOpener: "(it's) fine! ~*_-."},
			subject: "x",
			want:    "mailto:?subject=x&body=(it's)%20fine!%20~*_-.",
		},
		{
			name:    "utf8 and newline",
			lead:    model.Lead{AIOpener: "café\nnext"},
			subject: "x",
			want:    "mailto:?subject=x&body=caf%C3%A9%0Anext",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MailtoURL(tt.lead, tt.subject))
		})
	}
}
