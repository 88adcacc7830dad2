package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func redactLine(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &m); err != nil {
		t.Fatalf("unmarshal log line: %v\n%s", err, raw)
	}
	return m
}

func TestRedactingLogger_ScrubsQueryAndHeaders(t *testing.T) {
	buf := captureLogs(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RedactingLogger(RedactOptions{MaskHeaders: []string{" X-Api-Key "}}))
	r.GET("/biography/sessions", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet,
		"/biography/sessions?owner=jane.doe@example.com&ref=6f1f4a3e-9a1b-4c2d-8e3f-aabbccddeeff", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	req.Header.Set("X-Api-Key", "k-123456")
	req.Header.Set("X-Contact", "call +1 212-555-1212 or mail bob@example.org")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	m := redactLine(t, buf.String())
	if m["message"] != "http_request" {
		t.Fatalf("message = %v", m["message"])
	}
	q, _ := m["query"].(string)
	if strings.Contains(q, "example.com") || !strings.Contains(q, "[REDACTED:email]") {
		t.Fatalf("email not scrubbed from query: %q", q)
	}
	if strings.Contains(q, "aabbccddeeff") || !strings.Contains(q, "[REDACTED:id]") {
		t.Fatalf("uuid not scrubbed from query: %q", q)
	}

	hdrs, ok := m["headers"].(map[string]any)
	if !ok {
		t.Fatalf("headers missing: %v", m["headers"])
	}
	if hdrs["Authorization"] != "[REDACTED]" {
		t.Fatalf("Authorization = %v", hdrs["Authorization"])
	}
	if hdrs["X-Api-Key"] != "[REDACTED]" {
		t.Fatalf("custom mask header = %v", hdrs["X-Api-Key"])
	}
	contact, _ := hdrs["X-Contact"].(string)
	if strings.Contains(contact, "555") || !strings.Contains(contact, "[REDACTED:phone]") {
		t.Fatalf("phone not scrubbed: %q", contact)
	}
	if strings.Contains(contact, "example.org") || !strings.Contains(contact, "[REDACTED:email]") {
		t.Fatalf("email in header not scrubbed: %q", contact)
	}
}

func TestRedactingLogger_SeverityByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "info"},
		{http.StatusNotFound, "warn"},
		{http.StatusInternalServerError, "error"},
	}
	for _, tc := range cases {
		buf := captureLogs(t)
		r := gin.New()
		r.Use(RedactingLogger(RedactOptions{}))
		r.GET("/x", func(c *gin.Context) { c.Status(tc.status) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		m := redactLine(t, buf.String())
		if m["level"] != tc.level {
			t.Fatalf("status %d: level = %v, want %s", tc.status, m["level"], tc.level)
		}
		if int(m["status"].(float64)) != tc.status {
			t.Fatalf("status field = %v", m["status"])
		}
	}
}

func TestRedactingLogger_NeverLogsBodies(t *testing.T) {
	buf := captureLogs(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RedactingLogger(RedactOptions{}))
	r.POST("/biography/sessions/:id/responses", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"answer": "I grew up on a farm in Crete."})
	})

	body := strings.NewReader(`{"answer":"I grew up on a farm in Crete."}`)
	req := httptest.NewRequest(http.MethodPost, "/biography/sessions/5/responses", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := buf.String()
	if strings.Contains(out, "Crete") {
		t.Fatalf("answer text leaked into logs:\n%s", out)
	}
	m := redactLine(t, out)
	if m["path"] != "/biography/sessions/:id/responses" {
		t.Fatalf("path = %v", m["path"])
	}
}

func TestRedactingLogger_RequestIDFromResponseHeader(t *testing.T) {
	buf := captureLogs(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(RedactingLogger(RedactOptions{}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "rid-redact")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	m := redactLine(t, buf.String())
	if m["request_id"] != "rid-redact" {
		t.Fatalf("request_id = %v", m["request_id"])
	}
}
