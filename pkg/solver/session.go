package solver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/scoutpkg/depscout/pkg/observability"
	"github.com/scoutpkg/depscout/pkg/repos"
)

// Scratch subdirectory names, created under the scratch root.
const (
	cacheSubdir   = "cache"
	logSubdir     = "logs"
	installSubdir = "installroot"
)

// Session owns the external engine instance for one run. It is created
// once, mutated by repository registration and metadata loading, and
// discarded at process exit. Scratch directories persist; their
// lifecycle is caller-managed.
type Session struct {
	ID      string // per-run identifier, included in engine requests
	Scratch string // scratch root directory

	engine Engine
	cfg    Config
	logf   Logger
}

// NewSession prepares a fully loaded resolver session: scratch
// directories, engine configuration, repository registration, and the
// metadata load. Any repository metadata fetch failure aborts the whole
// run — no session is returned.
func NewSession(ctx context.Context, eng Engine, sources []string, opts Options) (*Session, error) {
	opts = opts.withDefaults()

	scratch := opts.TempDir
	if scratch == "" {
		dir, err := os.MkdirTemp("", "depscout-")
		if err != nil {
			return nil, fmt.Errorf("scratch root: %w", err)
		}
		scratch = dir
	}

	cfg := Config{
		ReleaseVer:  opts.ReleaseVer,
		CacheDir:    filepath.Join(scratch, cacheSubdir),
		LogDir:      filepath.Join(scratch, logSubdir),
		InstallRoot: filepath.Join(scratch, installSubdir),
		Proxy:       opts.Proxy,
		Best:        opts.Best,
		ExcludeDocs: true,
		Refresh:     opts.Refresh,
	}
	for _, dir := range []string{cfg.CacheDir, cfg.LogDir, cfg.InstallRoot} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("scratch dir: %w", err)
		}
	}

	set, err := repos.Build(sources, scratch, repos.Logf(opts.Logger))
	if err != nil {
		return nil, err
	}
	if len(set.Repos) == 0 && set.DefsDir == "" {
		return nil, ErrNoRepos
	}
	cfg.ReposDir = set.DefsDir

	if err := eng.Configure(cfg); err != nil {
		return nil, fmt.Errorf("configure engine: %w", err)
	}
	for _, r := range set.Repos {
		if err := eng.AddRepo(Repo{ID: r.ID, BaseURL: r.BaseURL}); err != nil {
			return nil, fmt.Errorf("register %s: %w", r.ID, err)
		}
		opts.Logger("registered repository %s (%s)", r.ID, r.BaseURL)
	}

	start := time.Now()
	observability.Solver().OnMetadataLoadStart(ctx, len(set.Repos))
	err = eng.LoadMetadata(ctx)
	observability.Solver().OnMetadataLoadComplete(ctx, len(set.Repos), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load repository metadata: %w", err)
	}

	return &Session{
		ID:      uuid.NewString(),
		Scratch: scratch,
		engine:  eng,
		cfg:     cfg,
		logf:    opts.Logger,
	}, nil
}

// Available returns the engine's package records matching name, purely
// for informational display.
func (s *Session) Available(name string) []Package {
	return s.engine.Available(name)
}

// Reset clears the session's pending transaction state. It must be
// called before re-resolving a different request on the same session to
// avoid accumulating stale install markings.
func (s *Session) Reset() {
	s.engine.ResetTransaction()
}
