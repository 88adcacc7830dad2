package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PII patterns scrubbed from query strings and header values. UUIDs are
// replaced before phone numbers so the loose phone pattern cannot chew on
// the digit runs inside an identifier.
var (
	reUUID  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	reEmail = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// Digits only, so hex fragments of already-scrubbed IDs never match.
	// Covers "+1 212-555-1212", "212 555 1212", "(212) 555-1212".
	rePhone = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// scrubPII replaces identifiers, email addresses, and phone numbers in s
// with typed placeholders.
func scrubPII(s string) string {
	if s == "" {
		return s
	}
	s = reUUID.ReplaceAllString(s, "[REDACTED:id]")
	s = reEmail.ReplaceAllString(s, "[REDACTED:email]")
	s = rePhone.ReplaceAllString(s, "[REDACTED:phone]")
	return s
}

// RedactOptions extends the built-in header mask list. Names are matched
// case-insensitively; Authorization, Cookie, and Set-Cookie are always
// masked regardless of this list.
type RedactOptions struct {
	MaskHeaders []string
}

func headerMaskSet(extra []string) map[string]struct{} {
	set := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}
	for _, h := range extra {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			set[h] = struct{}{}
		}
	}
	return set
}

// RedactingLogger returns a request logger that scrubs PII from request
// metadata before it reaches the log stream. Interview answers and woven
// drafts are personal narratives, so request and response bodies are never
// logged at all; query strings and headers go through scrubPII, and
// sensitive headers are masked outright.
//
// One structured line is emitted per request ("http_request"), at info for
// 2xx/3xx, warn for 4xx, and error for 5xx.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	masked := headerMaskSet(opts.MaskHeaders)

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		safeQuery := scrubPII(c.Request.URL.RawQuery)

		safeHeaders := make(map[string]string, len(c.Request.Header))
		for name, vals := range c.Request.Header {
			if _, hide := masked[strings.ToLower(name)]; hide {
				safeHeaders[name] = "[REDACTED]"
				continue
			}
			safeHeaders[name] = scrubPII(strings.Join(vals, ", "))
		}

		c.Next()

		status := c.Writer.Status()
		reqID := c.Writer.Header().Get("X-Request-ID")
		if reqID == "" {
			reqID = c.GetHeader("X-Request-ID")
		}

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", safeQuery).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}
