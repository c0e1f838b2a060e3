package httpserver

import (
	"net/url"
	"strings"
)

// parseForm reads an application/x-www-form-urlencoded body leniently:
// pairs split on '&' only, a pair without '=' or with a blank value is
// skipped, and a malformed escape is kept as literal text instead of
// dropping the pair. The first non-blank value of each key wins.
func parseForm(body string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(body, "&") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || v == "" {
			continue
		}
		key := unescape(k)
		if _, seen := out[key]; seen {
			continue
		}
		out[key] = unescape(v)
	}
	return out
}

// unescape decodes '+' and %XX escapes. Invalid escapes are copied through.
func unescape(s string) string {
	if d, err := url.QueryUnescape(s); err == nil {
		return d
	}
	s = strings.ReplaceAll(s, "+", " ")
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func ishex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
