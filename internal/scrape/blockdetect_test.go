package scrape

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		header http.Header
		body   string
		want   BlockType
	}{
		{
			name:   "cloudflare 403 with cf-ray",
			status: 403,
			header: http.Header{"Cf-Ray": {"abc123"}},
			want:   BlockCloudflare,
		},
		{
			name:   "cloudflare 503 server header",
			status: 503,
			header: http.Header{"Server": {"cloudflare"}},
			want:   BlockCloudflare,
		},
		{
			name:   "cloudflare challenge body",
			status: 200,
			body:   "<html><body>Cloudflare security challenge in progress</body></html>",
			want:   BlockCloudflare,
		},
		{
			name:   "browser check",
			status: 200,
			body:   "<html><body>Checking your browser before accessing</body></html>",
			want:   BlockCloudflare,
		},
		{
			name:   "recaptcha",
			status: 200,
			body:   "<html><body>Please complete the reCAPTCHA to continue</body></html>",
			want:   BlockCaptcha,
		},
		{
			name:   "noscript shell",
			status: 200,
			body:   "<html><noscript>Enable JavaScript to continue</noscript></html>",
			want:   BlockJSShell,
		},
		{
			name:   "meta refresh shell",
			status: 200,
			body:   `<html><head><meta http-equiv="refresh" content="0;url=/app"></head></html>`,
			want:   BlockJSShell,
		},
		{
			name:   "large noscript page is content",
			status: 200,
			body:   "<html><noscript>Enable JavaScript</noscript><p>" + strings.Repeat("word ", 500) + "</p></html>",
			want:   BlockNone,
		},
		{
			name:   "403 without cloudflare headers",
			status: 403,
			body:   "<html><body>Forbidden</body></html>",
			want:   BlockNone,
		},
		{
			name:   "clean page",
			status: 200,
			body:   "<html><body>Welcome to Acme Plumbing. Serving Austin since 1998.</body></html>",
			want:   BlockNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			header := tt.header
			if header == nil {
				header = http.Header{}
			}
			resp := &http.Response{StatusCode: tt.status, Header: header}
			blocked, bt := DetectBlock(resp, []byte(tt.body))
			assert.Equal(t, tt.want != BlockNone, blocked)
			assert.Equal(t, tt.want, bt)
		})
	}
}

func TestDetectBlock_NilResponse(t *testing.T) {
	blocked, bt := DetectBlock(nil, []byte("captcha"))
	assert.False(t, blocked)
	assert.Equal(t, BlockNone, bt)
}
