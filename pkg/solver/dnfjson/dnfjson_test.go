package dnfjson

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutpkg/depscout/pkg/solver"
)

// writeHelper writes a stub helper script that records its stdin to
// reqPath and replies with the contents of respPath.
func writeHelper(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "helper.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func testConfig(t *testing.T) solver.Config {
	t.Helper()
	scratch := t.TempDir()
	return solver.Config{
		ReleaseVer:  "42",
		CacheDir:    filepath.Join(scratch, "cache"),
		LogDir:      filepath.Join(scratch, "logs"),
		InstallRoot: filepath.Join(scratch, "installroot"),
		Best:        true,
		ExcludeDocs: true,
	}
}

const loadResponse = `{"available": [
	{"name": "bash", "version": "5.2.26", "release": "3", "arch": "x86_64", "repo_id": "cmdline-repo-0"},
	{"name": "filesystem", "version": "3.18", "release": "8", "arch": "x86_64", "repo_id": "cmdline-repo-0"}
]}`

const depsolveResponse = `{"install_set": [
	{"name": "bash", "version": "5.2.26", "release": "3", "arch": "x86_64", "repo_id": "cmdline-repo-0"},
	{"name": "filesystem", "version": "3.18", "release": "8", "arch": "x86_64", "repo_id": "cmdline-repo-0"},
	{"name": "glibc", "version": "2.39", "release": "2", "arch": "x86_64", "repo_id": "cmdline-repo-0"}
]}`

func TestLoadMetadataAndResolve(t *testing.T) {
	dir := t.TempDir()
	reqPath := filepath.Join(dir, "request.json")
	respPath := filepath.Join(dir, "response.json")
	require.NoError(t, os.WriteFile(respPath, []byte(loadResponse), 0o644))

	helper := writeHelper(t, fmt.Sprintf("cat > %s\ncat %s\n", reqPath, respPath))
	eng := New(helper)
	require.NoError(t, eng.Configure(testConfig(t)))
	require.NoError(t, eng.AddRepo(solver.Repo{ID: "cmdline-repo-0", BaseURL: "https://example.com/os"}))

	require.NoError(t, eng.LoadMetadata(context.Background()))

	// The helper saw a well-formed load request.
	var req struct {
		Command       string `json:"command"`
		TransactionID string `json:"transaction_id"`
		Arguments     struct {
			ReleaseVer string        `json:"releasever"`
			Best       bool          `json:"best"`
			LoadGroups bool          `json:"load_groups"`
			Repos      []solver.Repo `json:"repos"`
			Packages   []string      `json:"packages"`
		} `json:"arguments"`
	}
	data, err := os.ReadFile(reqPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &req))
	assert.Equal(t, "load", req.Command)
	assert.NotEmpty(t, req.TransactionID)
	assert.Equal(t, "42", req.Arguments.ReleaseVer)
	assert.True(t, req.Arguments.Best)
	assert.True(t, req.Arguments.LoadGroups)
	require.Len(t, req.Arguments.Repos, 1)
	assert.Empty(t, req.Arguments.Packages)

	// The index is queryable.
	avail := eng.Available("bash")
	require.Len(t, avail, 1)
	assert.Equal(t, "bash-5.2.26-3.x86_64", avail[0].NEVRA())
	assert.Empty(t, eng.Available("no-such-package"))

	// Marking and depsolving.
	require.NoError(t, eng.MarkInstall("bash"))
	require.NoError(t, eng.MarkInstall("filesystem"))
	assert.ErrorIs(t, eng.MarkInstall("no-such-package"), ErrUnknownPackage)

	require.NoError(t, os.WriteFile(respPath, []byte(depsolveResponse), 0o644))
	txn, err := eng.Resolve(context.Background())
	require.NoError(t, err)
	require.Len(t, txn, 3)
	assert.Equal(t, "glibc", txn[2].Name)

	data, err = os.ReadFile(reqPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &req))
	assert.Equal(t, "depsolve", req.Command)
	assert.Equal(t, []string{"bash", "filesystem"}, req.Arguments.Packages)
}

func TestMarkInstallDeduplicates(t *testing.T) {
	dir := t.TempDir()
	respPath := filepath.Join(dir, "response.json")
	require.NoError(t, os.WriteFile(respPath, []byte(loadResponse), 0o644))
	helper := writeHelper(t, fmt.Sprintf("cat > /dev/null\ncat %s\n", respPath))

	eng := New(helper)
	require.NoError(t, eng.Configure(testConfig(t)))
	require.NoError(t, eng.AddRepo(solver.Repo{ID: "cmdline-repo-0", BaseURL: "https://example.com/os"}))
	require.NoError(t, eng.LoadMetadata(context.Background()))

	require.NoError(t, eng.MarkInstall("bash"))
	require.NoError(t, eng.MarkInstall("bash"))
	assert.Equal(t, []string{"bash"}, eng.marked)
}

func TestMarkInstallBeforeLoad(t *testing.T) {
	eng := New("/nonexistent/helper")
	require.NoError(t, eng.Configure(testConfig(t)))
	assert.Error(t, eng.MarkInstall("bash"))
}

func TestResolveWithoutMarksSkipsHelper(t *testing.T) {
	eng := New("/nonexistent/helper")
	require.NoError(t, eng.Configure(testConfig(t)))

	txn, err := eng.Resolve(context.Background())
	require.NoError(t, err)
	assert.Empty(t, txn)
}

func TestHelperErrorSurfacesKindAndReason(t *testing.T) {
	helper := writeHelper(t, `cat > /dev/null
echo '{"kind": "DepsolveError", "reason": "nothing provides libfoo"}'
exit 1
`)
	eng := New(helper)
	require.NoError(t, eng.Configure(testConfig(t)))
	require.NoError(t, eng.AddRepo(solver.Repo{ID: "cmdline-repo-0", BaseURL: "https://example.com/os"}))

	err := eng.LoadMetadata(context.Background())
	var herr *Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "DepsolveError", herr.Kind)
	assert.Contains(t, herr.Reason, "libfoo")
}

func TestHelperMissing(t *testing.T) {
	eng := New("/nonexistent/helper")
	require.NoError(t, eng.Configure(testConfig(t)))
	require.NoError(t, eng.AddRepo(solver.Repo{ID: "cmdline-repo-0", BaseURL: "https://example.com/os"}))
	assert.Error(t, eng.LoadMetadata(context.Background()))
}

func TestIndexCacheSkipsSecondLoad(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	respPath := filepath.Join(dir, "response.json")
	callsPath := filepath.Join(dir, "calls")
	require.NoError(t, os.WriteFile(respPath, []byte(loadResponse), 0o644))
	helper := writeHelper(t, fmt.Sprintf("cat > /dev/null\necho x >> %s\ncat %s\n", callsPath, respPath))

	repo := solver.Repo{ID: "cmdline-repo-0", BaseURL: "https://example.com/os"}

	first := New(helper)
	require.NoError(t, first.Configure(cfg))
	require.NoError(t, first.AddRepo(repo))
	require.NoError(t, first.LoadMetadata(context.Background()))

	// A second engine over the same scratch cache and repositories
	// loads from the cache; the helper is not invoked again.
	second := New("/nonexistent/helper")
	require.NoError(t, second.Configure(cfg))
	require.NoError(t, second.AddRepo(repo))
	require.NoError(t, second.LoadMetadata(context.Background()))
	assert.Len(t, second.Available("bash"), 1)

	calls, err := os.ReadFile(callsPath)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(calls))
}

func TestRefreshBypassesIndexCache(t *testing.T) {
	cfg := testConfig(t)
	cfg.Refresh = true

	dir := t.TempDir()
	respPath := filepath.Join(dir, "response.json")
	callsPath := filepath.Join(dir, "calls")
	require.NoError(t, os.WriteFile(respPath, []byte(loadResponse), 0o644))
	helper := writeHelper(t, fmt.Sprintf("cat > /dev/null\necho x >> %s\ncat %s\n", callsPath, respPath))

	repo := solver.Repo{ID: "cmdline-repo-0", BaseURL: "https://example.com/os"}
	for i := 0; i < 2; i++ {
		eng := New(helper)
		require.NoError(t, eng.Configure(cfg))
		require.NoError(t, eng.AddRepo(repo))
		require.NoError(t, eng.LoadMetadata(context.Background()))
	}

	calls, err := os.ReadFile(callsPath)
	require.NoError(t, err)
	assert.Equal(t, "x\nx\n", string(calls))
}
