// Package utils holds small helpers shared across the HTTP layer.
package utils

import (
	"strconv"
	"strings"
)

// AtoiDefault parses s as a base-10 integer, returning def when s is
// blank or malformed. Surrounding whitespace is tolerated so that query
// parameters like "?page= 2" still parse.
func AtoiDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
