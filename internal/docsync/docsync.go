// SPDX-License-Identifier: MPL-2.0

// Package docsync publishes a directory of rendered HTML manual pages to
// the documentation web server: it injects the version-selector navigation
// script into every page, maintains the published version index, and pushes
// the result with rsync.
package docsync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
)

// DefaultBaseURL is the published documentation root the version index is
// fetched from.
const DefaultBaseURL = "https://www.freedesktop.org/software/systemd/man/"

// DefaultJQueryURL is the jquery build the navigation script depends on.
const DefaultJQueryURL = "https://code.jquery.com/jquery-3.7.1.min.js"

// navScript is the version-selector script written next to the pages. It
// loads ../index.json and swaps the first span of each page for a version
// drop-down.
const navScript = `
$(document).ready(function() {
    $.getJSON("../index.json", function(data) {
        data.sort().reverse();

        var [filename, dirname] = window.location.pathname.split("/").reverse();

        var items = [];
        $.each( data, function(_, version) {
            if (version == dirname) {
                items.push( "<option selected value='" + version + "'>" + "systemd " + version + "</option>");
            } else if (dirname == "latest" && version == data[0]) {
                items.push( "<option selected value='" + version + "'>" + "systemd " + version + "</option>");
            } else {
                items.push( "<option value='" + version + "'>" + "systemd " + version + "</option>");
            }
        });

        $("span:first").html($( "<select/>", {
            id: "version-selector",
            html: items.join( "" )
        }));

        $("#version-selector").on("change", function() {
            window.location.assign("../" + $(this).val() + "/" + filename);
        });
    });
});
`

// commandRunner executes an external command. Replaced in tests.
type commandRunner func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Syncer holds the endpoints and seams for one publication run.
type Syncer struct {
	// BaseURL is the published documentation root (must end in /).
	BaseURL string
	// JQueryURL is the jquery script injected into every page.
	JQueryURL string

	client *http.Client
	run    commandRunner
}

// NewSyncer returns a Syncer against the given base URL, defaulting both
// URLs when empty.
func NewSyncer(baseURL, jqueryURL string) *Syncer {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if jqueryURL == "" {
		jqueryURL = DefaultJQueryURL
	}
	return &Syncer{
		BaseURL:   baseURL,
		JQueryURL: jqueryURL,
		client:    http.DefaultClient,
		run:       runCommand,
	}
}

// Run publishes dir as version under target. Every HTML page gets the
// navigation scripts, index.json gains the version, and rsync pushes the
// pages to <target>/<version> (and <target>/latest when latest is set),
// followed by the index and navigation files to the target root.
func (s *Syncer) Run(ctx context.Context, version, dir, target string, latest bool) error {
	pages, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return fmt.Errorf("list pages: %w", err)
	}
	for _, page := range pages {
		if err := s.ProcessFile(page); err != nil {
			return err
		}
	}

	navPath := filepath.Join(dir, "nav.js")
	if err := os.WriteFile(navPath, []byte(navScript), 0o644); err != nil {
		return fmt.Errorf("write nav.js: %w", err)
	}

	indexPath := filepath.Join(dir, "index.json")
	if err := s.UpdateIndex(ctx, version, indexPath); err != nil {
		return err
	}

	dirs := []string{version}
	if latest {
		dirs = append(dirs, "latest")
	}
	for _, d := range dirs {
		err := s.run(ctx, "rsync",
			"-rlv",
			"--delete-excluded",
			"--include=*.html",
			"--exclude=*",
			"--omit-dir-times",
			dir+"/", // copy the directory's contents, not the directory
			target+"/"+d,
		)
		if err != nil {
			return fmt.Errorf("rsync pages to %s: %w", d, err)
		}
	}

	if err := s.run(ctx, "rsync", "-v", indexPath, navPath, target); err != nil {
		return fmt.Errorf("rsync index: %w", err)
	}
	return nil
}

// UpdateIndex fetches the published version index, prepends version if it
// is not yet listed, and writes the result to path. A missing remote index
// (404) starts a fresh one.
func (s *Syncer) UpdateIndex(ctx context.Context, version, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"index.json", nil)
	if err != nil {
		return fmt.Errorf("build index request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch index: %w", err)
	}
	defer resp.Body.Close()

	var index []string
	switch {
	case resp.StatusCode == http.StatusNotFound:
		// First publication: no index yet.
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(&index); err != nil {
			return fmt.Errorf("decode index: %w", err)
		}
	default:
		return fmt.Errorf("fetch index: unexpected status %s", resp.Status)
	}

	if !slices.Contains(index, version) {
		index = append([]string{version}, index...)
	}

	data, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// navSrc is the relative script source pages reference; its presence marks
// a page as already processed.
const navSrc = "../nav.js"
