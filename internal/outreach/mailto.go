package outreach

import (
	"strings"

	"github.com/sells-group/outreach-cli/internal/model"
)

// MailtoURL builds a mailto: link addressed to the lead's owner with the
// subject and opener prefilled. An empty subject uses FallbackSubject.
func MailtoURL(lead model.Lead, subject string) string {
	if subject == "" {
		subject = FallbackSubject(lead.CompanyName)
	}
	var sb strings.Builder
	sb.WriteString("mailto:")
	sb.WriteString(encodeURIComponent(lead.OwnerEmail))
	sb.WriteString("?subject=")
	sb.WriteString(encodeURIComponent(subject))
	sb.WriteString("&body=")
	sb.WriteString(encodeURIComponent(lead.AIOpener))
	return sb.String()
}

const upperHex = "0123456789ABCDEF"

// encodeURIComponent percent-encodes every byte outside the URI unreserved
// marks A-Z a-z 0-9 - _ . ! ~ * ' ( ), matching what mail clients expect
// from browser-built links.
func encodeURIComponent(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperHex[c>>4])
		sb.WriteByte(upperHex[c&15])
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
