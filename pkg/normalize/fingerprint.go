package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// CanonicalURL reduces a URL to scheme://host/path with a lowercased host,
// no query string, no fragment and no trailing slash. Tracking parameters
// and mobile/desktop host casing therefore collapse to one identity.
// Unparseable input is returned trimmed as-is.
func CanonicalURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return rawURL
	}

	path := strings.TrimSuffix(u.Path, "/")
	return u.Scheme + "://" + strings.ToLower(u.Host) + path
}

// Fingerprint derives the dedup identity for an article. The canonical URL
// is the preferred basis; when a source provides no URL the fingerprint
// falls back to a hash of source, title and the leading slice of the body.
func Fingerprint(canonicalURL, source, title, body string) string {
	if canonicalURL != "" {
		return hashString(canonicalURL)
	}

	prefix := body
	if len(prefix) > 200 {
		prefix = prefix[:200]
	}
	return hashString(source + "|" + title + "|" + prefix)
}

func hashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
