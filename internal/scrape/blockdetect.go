package scrape

import (
	"bytes"
	"net/http"
)

// BlockType describes the kind of anti-bot wall a site put up.
type BlockType string

const (
	BlockNone       BlockType = ""
	BlockCloudflare BlockType = "cloudflare"
	BlockCaptcha    BlockType = "captcha"
	BlockJSShell    BlockType = "js_shell"
)

// shellMaxBytes bounds the page size treated as a JavaScript-only shell.
const shellMaxBytes = 2000

type bodyMarker struct {
	block BlockType
	all   [][]byte // every marker must appear
}

// bodyMarkers are checked in order against the lowercased body.
var bodyMarkers = []bodyMarker{
	{BlockCloudflare, [][]byte{[]byte("checking your browser")}},
	{BlockCloudflare, [][]byte{[]byte("cf-browser-verification")}},
	{BlockCloudflare, [][]byte{[]byte("cloudflare"), []byte("challenge")}},
	{BlockCaptcha, [][]byte{[]byte("captcha")}},
}

// shellMarkers apply only to bodies under shellMaxBytes.
var shellMarkers = []bodyMarker{
	{BlockJSShell, [][]byte{[]byte("<noscript"), []byte("javascript")}},
	{BlockJSShell, [][]byte{[]byte(`meta http-equiv="refresh"`)}},
}

// DetectBlock reports whether a homepage response is an anti-bot wall rather
// than the company's content.
func DetectBlock(resp *http.Response, body []byte) (bool, BlockType) {
	if resp == nil {
		return false, BlockNone
	}

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusServiceUnavailable {
		if resp.Header.Get("cf-ray") != "" ||
			resp.Header.Get("cf-cache-status") != "" ||
			resp.Header.Get("server") == "cloudflare" {
			return true, BlockCloudflare
		}
	}

	lower := bytes.ToLower(body)
	if bt := matchMarkers(lower, bodyMarkers); bt != BlockNone {
		return true, bt
	}
	if len(body) < shellMaxBytes {
		if bt := matchMarkers(lower, shellMarkers); bt != BlockNone {
			return true, bt
		}
	}

	return false, BlockNone
}

func matchMarkers(lower []byte, markers []bodyMarker) BlockType {
	for _, m := range markers {
		hit := true
		for _, needle := range m.all {
			if !bytes.Contains(lower, needle) {
				hit = false
				break
			}
		}
		if hit {
			return m.block
		}
	}
	return BlockNone
}
