// Package dnfjson binds the solver.Engine capability interface to an
// external dnf-based helper subprocess.
//
// The helper owns everything depscout treats as out of scope: repository
// metadata fetching, package indexing, and transitive dependency
// solving. One JSON request is written to the helper's stdin per
// invocation and one JSON response is read back from its stdout:
//
//	{"command": "load", "arguments": {...}}     → {"available": [...]}
//	{"command": "depsolve", "arguments": {...}} → {"install_set": [...]}
//
// On failure the helper exits non-zero and emits {"kind", "reason"} on
// stdout, surfaced here as [*Error]. The helper binary is resolved from
// $DEPSCOUT_HELPER, falling back to "depscout-helper" on PATH.
//
// The available-package index returned by a load is kept in a TTL-bound
// file cache inside the scratch cache directory, keyed by the release
// version and the registered repositories, so repeated runs against the
// same repositories skip the helper load. --refresh bypasses it.
package dnfjson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scoutpkg/depscout/pkg/cache"
	"github.com/scoutpkg/depscout/pkg/solver"
)

const (
	helperEnv     = "DEPSCOUT_HELPER"
	defaultHelper = "depscout-helper"

	// indexTTL matches dnf's default metadata_expire.
	indexTTL = 48 * time.Hour
)

// ErrUnknownPackage is returned by MarkInstall when no available package
// record matches the requested name.
var ErrUnknownPackage = errors.New("no match for argument")

// Error is a structured failure reported by the helper itself, as
// opposed to a failure to run it.
type Error struct {
	Kind   string `json:"kind"`   // e.g. "DepsolveError", "RepoError"
	Reason string `json:"reason"` // human-readable detail
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Engine drives the helper subprocess. It is stateful across calls the
// way solver.Engine requires (registered repos, pending markings, the
// loaded index) while the helper itself stays stateless per invocation.
type Engine struct {
	helper string
	cfg    solver.Config
	repos  []solver.Repo
	index  map[string][]solver.Package
	marked []string
	cache  cache.Cache
	loaded bool
}

// New creates an Engine bound to the given helper binary. An empty
// helper falls back to $DEPSCOUT_HELPER, then to "depscout-helper".
func New(helper string) *Engine {
	if helper == "" {
		helper = os.Getenv(helperEnv)
	}
	if helper == "" {
		helper = defaultHelper
	}
	return &Engine{helper: helper}
}

// Configure stores the run configuration and prepares the index cache
// inside the scratch cache directory.
func (e *Engine) Configure(cfg solver.Config) error {
	e.cfg = cfg
	if cfg.Refresh {
		e.cache = cache.NewNullCache()
		return nil
	}
	c, err := cache.NewFileCache(cfg.CacheDir)
	if err != nil {
		return err
	}
	e.cache = c
	return nil
}

// AddRepo registers a repository for the subsequent metadata load.
func (e *Engine) AddRepo(repo solver.Repo) error {
	for _, r := range e.repos {
		if r.ID == repo.ID {
			return fmt.Errorf("repository %s already registered", repo.ID)
		}
	}
	e.repos = append(e.repos, repo)
	return nil
}

// request is the JSON document written to the helper's stdin.
type request struct {
	Command       string    `json:"command"`
	TransactionID string    `json:"transaction_id"`
	Arguments     arguments `json:"arguments"`
}

type arguments struct {
	ReleaseVer  string        `json:"releasever"`
	CacheDir    string        `json:"cachedir"`
	LogDir      string        `json:"logdir"`
	InstallRoot string        `json:"installroot"`
	ReposDir    string        `json:"reposdir,omitempty"`
	Proxy       string        `json:"proxy,omitempty"`
	Best        bool          `json:"best"`
	ExcludeDocs bool          `json:"exclude_docs"`
	LoadGroups  bool          `json:"load_groups"`
	Repos       []solver.Repo `json:"repos"`
	Packages    []string      `json:"packages,omitempty"`
}

type loadResult struct {
	Available []solver.Package `json:"available"`
}

type depsolveResult struct {
	InstallSet []solver.Package `json:"install_set"`
}

func (e *Engine) args(packages []string) arguments {
	return arguments{
		ReleaseVer:  e.cfg.ReleaseVer,
		CacheDir:    e.cfg.CacheDir,
		LogDir:      e.cfg.LogDir,
		InstallRoot: e.cfg.InstallRoot,
		ReposDir:    e.cfg.ReposDir,
		Proxy:       e.cfg.Proxy,
		Best:        e.cfg.Best,
		ExcludeDocs: e.cfg.ExcludeDocs,
		LoadGroups:  true,
		Repos:       e.repos,
		Packages:    packages,
	}
}

// run invokes the helper once and decodes its stdout into v.
func (e *Engine) run(ctx context.Context, req request, v any) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, e.helper)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			var herr Error
			if json.Unmarshal(stdout.Bytes(), &herr) == nil && herr.Kind != "" {
				return &herr
			}
			return fmt.Errorf("helper %s: %w: %s", e.helper, err, strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("helper %s: %w", e.helper, err)
	}
	return json.Unmarshal(stdout.Bytes(), v)
}

// LoadMetadata builds the available-package index from the registered
// repositories, via the cache when a fresh index for the same release
// and repository set exists.
func (e *Engine) LoadMetadata(ctx context.Context) error {
	key := e.indexKey()
	if data, hit, _ := e.cache.Get(ctx, key); hit {
		var available []solver.Package
		if err := json.Unmarshal(data, &available); err == nil {
			e.buildIndex(available)
			return nil
		}
		_ = e.cache.Delete(ctx, key)
	}

	var res loadResult
	req := request{Command: "load", TransactionID: uuid.NewString(), Arguments: e.args(nil)}
	if err := e.run(ctx, req, &res); err != nil {
		return err
	}
	e.buildIndex(res.Available)

	if data, err := json.Marshal(res.Available); err == nil {
		_ = e.cache.Set(ctx, key, data, indexTTL)
	}
	return nil
}

// indexKey derives the cache key for the loaded index from everything
// that changes its contents.
func (e *Engine) indexKey() string {
	ident, _ := json.Marshal(struct {
		ReleaseVer string        `json:"releasever"`
		ReposDir   string        `json:"reposdir"`
		Repos      []solver.Repo `json:"repos"`
	}{e.cfg.ReleaseVer, e.cfg.ReposDir, e.repos})
	return "load:" + cache.Hash(ident)
}

func (e *Engine) buildIndex(available []solver.Package) {
	e.index = make(map[string][]solver.Package, len(available))
	for _, pkg := range available {
		e.index[pkg.Name] = append(e.index[pkg.Name], pkg)
	}
	e.loaded = true
}

// Available returns the records matching name exactly.
func (e *Engine) Available(name string) []solver.Package {
	pkgs := e.index[name]
	out := make([]solver.Package, len(pkgs))
	copy(out, pkgs)
	return out
}

// MarkInstall adds name to the pending transaction. Names with no
// available record fail with [ErrUnknownPackage].
func (e *Engine) MarkInstall(name string) error {
	if !e.loaded {
		return errors.New("metadata not loaded")
	}
	if len(e.index[name]) == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownPackage, name)
	}
	for _, m := range e.marked {
		if m == name {
			return nil
		}
	}
	e.marked = append(e.marked, name)
	return nil
}

// ResetTransaction clears all pending install markings.
func (e *Engine) ResetTransaction() {
	e.marked = nil
}

// Resolve depsolves the pending markings through the helper. With
// nothing marked it returns an empty transaction without invoking the
// helper; the session layer treats that as a hard failure.
func (e *Engine) Resolve(ctx context.Context) (solver.Transaction, error) {
	if len(e.marked) == 0 {
		return nil, nil
	}
	var res depsolveResult
	req := request{Command: "depsolve", TransactionID: uuid.NewString(), Arguments: e.args(e.marked)}
	if err := e.run(ctx, req, &res); err != nil {
		return nil, err
	}
	return solver.Transaction(res.InstallSet), nil
}

// Ensure Engine implements solver.Engine.
var _ solver.Engine = (*Engine)(nil)
