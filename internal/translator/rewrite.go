package translator

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// RewritePlaybackURL rewrites an upstream media URL to the gateway's playback
// proxy endpoint, carrying the original URL as a reversible base64url token.
// Empty input stays empty.
func RewritePlaybackURL(origin string) string {
	if origin == "" {
		return ""
	}
	return "/videoplayback?url=" + base64.RawURLEncoding.EncodeToString([]byte(origin))
}

// DecodePlaybackURL reverses RewritePlaybackURL, accepting both padded and
// unpadded base64url tokens.
func DecodePlaybackURL(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// RewriteImageURL rewrites an upstream thumbnail or avatar URL to the
// gateway's image proxy routes. Unrecognized hosts pass through unchanged,
// and unparsable URLs come back empty rather than leaking garbage into the
// schema.
func RewriteImageURL(origin string) string {
	if origin == "" {
		return ""
	}
	if strings.HasPrefix(origin, "//") {
		origin = "https:" + origin
	}
	u, err := url.Parse(origin)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	switch {
	case strings.HasSuffix(host, "ytimg.com"):
		// Thumbnail hosts serve /vi/<videoId>/<file>; the path maps onto the
		// gateway's /vi route directly.
		return u.Path
	case strings.HasSuffix(host, "ggpht.com"):
		return "/ggpht" + u.Path
	default:
		return origin
	}
}
