// SPDX-License-Identifier: MPL-2.0

package render

import (
	"strings"
	"testing"
)

func TestParseDefines(t *testing.T) {
	header := `/* Autogenerated by the build system. Do not edit. */
#pragma once

#define PROJECT_VERSION 257
#define PROJECT_URL "https://example.org/project"
#define HAVE_SECCOMP 1
#define DEFAULT_HIERARCHY unified
#define MEMORY_LIMIT 0x1000
#define EMPTYISH
#include <stddef.h>
`

	defines, err := ParseDefines(strings.NewReader(header))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		key  string
		want any
	}{
		{"PROJECT_VERSION", 257},
		{"PROJECT_URL", "https://example.org/project"},
		{"HAVE_SECCOMP", 1},
		{"DEFAULT_HIERARCHY", "unified"},
		{"MEMORY_LIMIT", 0x1000},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := defines[tt.key]
			if !ok {
				t.Fatalf("%s not parsed", tt.key)
			}
			if got != tt.want {
				t.Errorf("%s = %#v, want %#v", tt.key, got, tt.want)
			}
		})
	}

	if _, ok := defines["EMPTYISH"]; ok {
		t.Error("value-less define should be ignored")
	}
}

func TestRender(t *testing.T) {
	defines := Defines{
		"PROJECT_VERSION": 257,
		"PROJECT_URL":     "https://example.org",
		"HAVE_SECCOMP":    1,
	}

	t.Run("substitution", func(t *testing.T) {
		out, err := Render("version {{ PROJECT_VERSION }} at {{ PROJECT_URL }}", defines)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "version 257 at https://example.org" {
			t.Errorf("got %q", out)
		}
	})

	t.Run("trim blocks", func(t *testing.T) {
		tpl := "{% if HAVE_SECCOMP %}\nseccomp on\n{% endif %}\n"
		out, err := Render(tpl, defines)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "seccomp on\n" {
			t.Errorf("got %q, want the tag newlines swallowed", out)
		}
	})

	t.Run("undefined reference is an error", func(t *testing.T) {
		_, err := Render("{{ NO_SUCH_DEFINE }}", defines)
		if err == nil {
			t.Fatal("expected error for undefined reference")
		}
		if !strings.Contains(err.Error(), "NO_SUCH_DEFINE") {
			t.Errorf("error should name the missing define: %v", err)
		}
	})

	t.Run("undefined condition is an error", func(t *testing.T) {
		_, err := Render("{% if HAVE_NOTHING %}x{% endif %}", defines)
		if err == nil {
			t.Fatal("expected error for undefined condition")
		}
	})

	t.Run("parse failure", func(t *testing.T) {
		if _, err := Render("{% if HAVE_SECCOMP %}unclosed", defines); err == nil {
			t.Error("expected template parse error")
		}
	})
}
