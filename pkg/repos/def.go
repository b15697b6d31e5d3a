package repos

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// defsSubdir is the scratch subdirectory the engine reads definition
// files from.
const defsSubdir = "repos.d"

// defEntry is one repository definition inside a .repo file. Unknown
// keys are preserved only insofar as the engine re-reads the rewritten
// file; depscout itself only needs the identity fields.
type defEntry struct {
	Name     string `toml:"name"`
	BaseURL  string `toml:"baseurl"`
	Enabled  *bool  `toml:"enabled,omitempty"`
	GPGCheck *bool  `toml:"gpgcheck,omitempty"`
	Proxy    string `toml:"proxy,omitempty"`
}

// copyDefFile validates a TOML repo-definition file, strips source
// repository entries, and writes the filtered definitions into the
// repos.d subdirectory of scratchDir. It returns the directory path, or
// "" when every entry was filtered out and nothing was written.
func copyDefFile(path, scratchDir string, logf Logf) (string, error) {
	var defs map[string]defEntry
	if _, err := toml.DecodeFile(path, &defs); err != nil {
		return "", fmt.Errorf("repo definition %s: %w", path, err)
	}

	filtered := make(map[string]defEntry, len(defs))
	for id, entry := range defs {
		if IsSource(id) || IsSource(entry.Name) || IsSource(entry.BaseURL) {
			logf("skipping source repository %s in %s", id, path)
			continue
		}
		filtered[id] = entry
	}
	if len(filtered) == 0 {
		logf("no usable repositories in %s", path)
		return "", nil
	}

	dir := filepath.Join(scratchDir, defsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst := filepath.Join(dir, filepath.Base(path))
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(filtered); err != nil {
		return "", fmt.Errorf("rewrite %s: %w", dst, err)
	}
	return dir, nil
}
