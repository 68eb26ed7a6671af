package detail

import (
	"fmt"
	"net/url"
	"strings"
)

// ClaimLink returns the web page address of claim id under webBase.
func ClaimLink(webBase, id string) string {
	return strings.TrimRight(webBase, "/") + "/claim/" + url.PathEscape(id)
}

// ShareLink removes any password query parameter from raw so the link can be
// shared without leaking the credential.
func ShareLink(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid link: %w", err)
	}
	q := u.Query()
	if !q.Has("password") {
		return u.String(), nil
	}
	q.Del("password")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
