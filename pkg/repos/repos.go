// Package repos turns raw repository location strings into a validated,
// deduplicated set of repository handles ready for engine registration.
//
// Three kinds of locations are accepted:
//   - repo-definition files (TOML, recognized by the .repo extension when
//     the file exists on disk)
//   - local absolute paths, converted to file:// URIs
//   - URLs with an accepted scheme (http, https, ftp, file)
//
// Anything else is silently dropped. Source package repositories —
// any location or definition entry whose identifier contains "srpm",
// case-insensitively — are never wanted and are skipped with a log
// message.
package repos

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// defExt is the file-extension convention for repo-definition files.
const defExt = ".repo"

// acceptedSchemes are the URI schemes passed through unchanged.
var acceptedSchemes = []string{"http://", "https://", "ftp://", "file://"}

// Repo is a repository handle with a synthetic sequential identifier.
type Repo struct {
	ID      string // e.g. "cmdline-repo-0"
	BaseURL string // sanitized URI
}

// Set is the result of classifying a list of repository locations.
type Set struct {
	Repos   []Repo // bare path/URL repositories, in input order
	DefsDir string // directory holding copied definition files (empty if none)
}

// Logf is the diagnostic callback used for skipped repositories.
type Logf func(msg string, args ...any)

// Build classifies each location, sanitizes URIs, filters out source
// repositories, and copies repo-definition files into the repos.d
// subdirectory of scratchDir. Unrecognized locations are dropped
// silently; they are not an error.
func Build(sources []string, scratchDir string, logf Logf) (*Set, error) {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	set := &Set{}
	seen := make(map[string]bool)

	for _, loc := range sources {
		if IsSource(loc) {
			logf("skipping source repository %s", loc)
			continue
		}

		if isDefFile(loc) {
			dir, err := copyDefFile(loc, scratchDir, logf)
			if err != nil {
				return nil, err
			}
			if dir != "" {
				set.DefsDir = dir
			}
			continue
		}

		uri, ok := sanitizeURI(loc)
		if !ok {
			continue
		}
		if seen[uri] {
			continue
		}
		seen[uri] = true

		set.Repos = append(set.Repos, Repo{
			ID:      fmt.Sprintf("cmdline-repo-%d", len(set.Repos)),
			BaseURL: uri,
		})
	}

	return set, nil
}

// IsSource reports whether the identifier names a source package
// repository. The test is a case-insensitive substring match on "srpm".
func IsSource(id string) bool {
	return strings.Contains(strings.ToLower(id), "srpm")
}

// isDefFile reports whether loc is a repo-definition file: it must carry
// the .repo extension and actually exist on disk.
func isDefFile(loc string) bool {
	if !strings.HasSuffix(strings.ToLower(loc), defExt) {
		return false
	}
	info, err := os.Stat(loc)
	return err == nil && !info.IsDir()
}

// sanitizeURI normalizes a bare location to a URI. Local absolute paths
// become file:// URIs; accepted schemes pass through unchanged; anything
// else is dropped (ok=false).
func sanitizeURI(loc string) (string, bool) {
	if filepath.IsAbs(loc) {
		return "file://" + loc, true
	}
	for _, scheme := range acceptedSchemes {
		if strings.HasPrefix(loc, scheme) {
			return loc, true
		}
	}
	return "", false
}
