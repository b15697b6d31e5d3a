// Package manifest extracts requested package names from templated
// manifest files.
//
// Manifests are plain text: any line whose first whitespace-separated
// token is "installpkg" contributes the remaining tokens on that line as
// package names. Every other line — template directives included — is
// ignored; no templating logic is ever evaluated here.
package manifest

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// installToken is the line prefix that marks package installation lines.
const installToken = "installpkg"

// Extract scans the manifest at path and returns the package names it
// requests, in file order. A manifest with no matching lines yields an
// empty list, not an error.
func Extract(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	defer f.Close()

	var pkgs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 1 && fields[0] == installToken {
			pkgs = append(pkgs, fields[1:]...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return pkgs, nil
}
