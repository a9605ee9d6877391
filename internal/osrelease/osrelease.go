// SPDX-License-Identifier: MPL-2.0

// Package osrelease parses the os-release file format: shell-compatible
// KEY=value assignments describing the operating system, as found in
// /etc/os-release with a fallback in /usr/lib/os-release.
package osrelease

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// DefaultPaths are the standard lookup locations, in priority order.
var DefaultPaths = []string{"/etc/os-release", "/usr/lib/os-release"}

// assignmentPattern matches a well-formed variable assignment line.
var assignmentPattern = regexp.MustCompile(`^([A-Z][A-Z_0-9]+)=(.*)$`)

// Release holds the parsed key/value pairs of one os-release file.
type Release map[string]string

// Parse reads os-release assignments from r. Blank lines and comments are
// skipped. Lines that are not well-formed assignments do not fail the
// parse; they are reported back as warnings carrying name and the line
// number, matching the format's lenient consumers.
func Parse(r io.Reader, name string) (Release, []string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", name, err)
	}

	release := make(Release)
	var warnings []string

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		m := assignmentPattern.FindStringSubmatch(line)
		if m == nil {
			warnings = append(warnings, fmt.Sprintf("%s:%d: bad line %q", name, i+1, line))
			continue
		}

		value, err := unquote(m[2])
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s:%d: %v", name, i+1, err))
			continue
		}
		release[m[1]] = value
	}

	return release, warnings, nil
}

// Load reads the first os-release file found among paths, defaulting to the
// standard locations. It returns the parsed release, any per-line warnings,
// and the path actually read.
func Load(paths ...string) (Release, []string, string, error) {
	if len(paths) == 0 {
		paths = DefaultPaths
	}

	var lastErr error
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			lastErr = err
			continue
		}
		defer f.Close()

		release, warnings, err := Parse(f, path)
		return release, warnings, path, err
	}
	return nil, nil, "", fmt.Errorf("no os-release file found: %w", lastErr)
}

// PrettyName returns PRETTY_NAME, or "Linux" when the field is absent.
func (r Release) PrettyName() string {
	if name, ok := r["PRETTY_NAME"]; ok && name != "" {
		return name
	}
	return "Linux"
}

// ID returns the distribution identifier, or "linux" when absent.
func (r Release) ID() string {
	if id, ok := r["ID"]; ok && id != "" {
		return id
	}
	return "linux"
}

// IDLike returns the space-separated ID_LIKE list.
func (r Release) IDLike() []string {
	return strings.Fields(r["ID_LIKE"])
}

// IsLike reports whether the release is, or declares itself derived from,
// the distribution named by id.
func (r Release) IsLike(id string) bool {
	if r.ID() == id {
		return true
	}
	for _, like := range r.IDLike() {
		if like == id {
			return true
		}
	}
	return false
}

// unquote strips optional single or double quoting from an assignment
// value. Double-quoted values honor backslash escapes for the characters
// the shell would treat specially; single-quoted values are literal.
func unquote(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	switch quote := value[0]; quote {
	case '"':
		if len(value) < 2 || value[len(value)-1] != '"' {
			return "", fmt.Errorf("unterminated quoted value %q", value)
		}
		inner := value[1 : len(value)-1]
		var b strings.Builder
		for i := 0; i < len(inner); i++ {
			c := inner[i]
			if c != '\\' {
				b.WriteByte(c)
				continue
			}
			i++
			if i == len(inner) {
				return "", fmt.Errorf("trailing backslash in %q", value)
			}
			switch inner[i] {
			case '"', '\\', '$', '`':
				b.WriteByte(inner[i])
			default:
				// Unknown escapes pass through unchanged.
				b.WriteByte('\\')
				b.WriteByte(inner[i])
			}
		}
		return b.String(), nil
	case '\'':
		if len(value) < 2 || value[len(value)-1] != '\'' {
			return "", fmt.Errorf("unterminated quoted value %q", value)
		}
		return value[1 : len(value)-1], nil
	default:
		return value, nil
	}
}
