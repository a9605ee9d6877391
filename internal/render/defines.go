// SPDX-License-Identifier: MPL-2.0

// Package render fills Jinja-syntax templates from the #define values of a
// generated build configuration header.
package render

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// definePattern matches one object-like #define with a value.
var definePattern = regexp.MustCompile(`^#define\s+(\w+)\s+(.*)$`)

// Defines maps configuration macro names to their values. Numeric macros
// carry int values, string-literal macros carry unquoted strings, and
// anything else keeps its raw token text.
type Defines map[string]any

// ParseDefines scans a generated config header and collects every #define
// with a value. Lines that are not defines (includes, comments, function
// macros without the leading pattern) are ignored.
func ParseDefines(r io.Reader) (Defines, error) {
	defines := make(Defines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := definePattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		defines[m[1]] = parseValue(strings.TrimSpace(m[2]))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config header: %w", err)
	}
	return defines, nil
}

// parseValue interprets a define's token: integer literals and quoted
// string literals are converted, everything else stays verbatim.
func parseValue(token string) any {
	if token == "" {
		return ""
	}
	if token[0] >= '0' && token[0] <= '9' {
		if n, err := strconv.ParseInt(token, 0, 64); err == nil {
			return int(n)
		}
		return token
	}
	if token[0] == '"' {
		if s, err := strconv.Unquote(token); err == nil {
			return s
		}
		return token
	}
	return token
}
