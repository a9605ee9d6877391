// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"devaux-cli/internal/issue"
	"devaux-cli/internal/manrules"
)

func TestManRulesDiagnostic(t *testing.T) {
	t.Run("consistency error names the file", func(t *testing.T) {
		err := manRulesDiagnostic(&manrules.ConsistencyError{
			File:      "man/systemctl.xml",
			Title:     "systemd",
			FirstName: "systemctl",
		})

		var ae *issue.ActionableError
		if !errors.As(err, &ae) {
			t.Fatalf("expected ActionableError, got %T", err)
		}
		if ae.Resource != "man/systemctl.xml" {
			t.Errorf("Resource = %q, want the failing file", ae.Resource)
		}
		if len(ae.Suggestions) == 0 {
			t.Error("expected a fix suggestion")
		}
	})

	t.Run("duplicate error names the alias", func(t *testing.T) {
		err := manRulesDiagnostic(&manrules.DuplicatePageError{
			File:  "man/halt.xml",
			Alias: "poweroff.8",
		})

		var ae *issue.ActionableError
		if !errors.As(err, &ae) {
			t.Fatalf("expected ActionableError, got %T", err)
		}
		if ae.Resource != "man/halt.xml" {
			t.Errorf("Resource = %q, want the failing file", ae.Resource)
		}
		found := false
		for _, s := range ae.Suggestions {
			if strings.Contains(s, "poweroff.8") {
				found = true
			}
		}
		if !found {
			t.Errorf("suggestions %q do not name the duplicate alias", ae.Suggestions)
		}
	})

	t.Run("other errors keep their message", func(t *testing.T) {
		cause := errors.New("XML syntax error on line 3")
		err := manRulesDiagnostic(cause)
		if !errors.Is(err, cause) {
			t.Error("expected the cause to stay in the chain")
		}
	})
}

func TestFormatErrorForDisplay(t *testing.T) {
	plain := errors.New("boom")
	if got := formatErrorForDisplay(plain, false); got != "boom" {
		t.Errorf("plain error: got %q", got)
	}

	wrapped := issue.Wrap(plain, "do thing", "the-resource", "Try again")
	got := formatErrorForDisplay(wrapped, false)
	if !strings.Contains(got, "the-resource") || !strings.Contains(got, "Try again") {
		t.Errorf("actionable error missing detail: %q", got)
	}
}
