// Package solver owns the resolver-engine session for a single depscout run.
//
// The actual dependency solving (repository metadata parsing, version
// constraint resolution, conflict handling) is delegated to an external
// engine reached through the [Engine] interface. This package only
// orchestrates: it prepares scratch directories, registers repositories,
// triggers the metadata load, and exposes the two operations the CLI
// needs — resolving a transaction for a set of requested packages and
// brute-forcing which requested package pulls a given dependency in.
//
// # Usage
//
//	eng := dnfjson.New("")
//	sess, err := solver.NewSession(ctx, eng, sources, solver.Options{
//	    ReleaseVer: "42",
//	    Best:       true,
//	})
//	if err != nil {
//	    return err // metadata fetch failure, no usable session
//	}
//	txn, err := sess.Install(ctx, []string{"bash", "vim-minimal"})
package solver

import "context"

// Package is one concrete package record produced by the engine.
// Records are read-only; depscout never constructs them itself outside
// of tests.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Release string `json:"release"`
	Arch    string `json:"arch"`
	Repo    string `json:"repo_id"` // originating repository identifier
}

// Transaction is the engine's computed install set for one resolve
// invocation. A successful resolve with a non-empty request must never
// produce an empty Transaction; callers treat that as a hard failure.
type Transaction []Package

// Repo is a repository handle registered with the engine.
// Registered repositories are always enabled and always fail hard when
// their metadata cannot be fetched; there is no skip-if-unavailable mode.
type Repo struct {
	ID      string `json:"id"`      // synthetic identifier, e.g. "cmdline-repo-0"
	BaseURL string `json:"baseurl"` // sanitized URI (file://, http://, ...)
}

// Config carries the per-run engine configuration.
type Config struct {
	ReleaseVer  string // release version substituted into repo URLs
	CacheDir    string // package/metadata cache inside the scratch root
	LogDir      string // engine log output
	InstallRoot string // synthesized root; nothing is ever installed into it
	ReposDir    string // directory of repo-definition files (may be empty)
	Proxy       string // proxy URL (may be empty)
	Best        bool   // prefer the highest available version
	ExcludeDocs bool   // exclude documentation files from the hypothetical install
	Refresh     bool   // bypass any engine-side index cache
}

// Engine is the capability surface depscout requires from an external
// dependency resolver. Implementations may bind to a library or drive a
// subprocess; all network I/O and solving happens behind this interface.
//
// Calls are blocking and strictly sequential; Engine implementations do
// not need to be safe for concurrent use.
type Engine interface {
	// Configure sets the run-wide configuration. Called exactly once,
	// before any repository is added.
	Configure(cfg Config) error

	// AddRepo registers and enables a repository.
	AddRepo(repo Repo) error

	// LoadMetadata fetches metadata for every registered repository,
	// builds the package index from those repositories only (never from
	// any pre-existing system state), and loads available package-group
	// metadata. Any per-repository fetch failure is fatal for the run.
	LoadMetadata(ctx context.Context) error

	// Available returns the package records matching name exactly,
	// for informational display. It never affects the transaction.
	Available(name string) []Package

	// MarkInstall marks a package for installation in the pending
	// transaction. An unknown name is an error the caller may swallow.
	MarkInstall(name string) error

	// ResetTransaction clears all pending install markings.
	ResetTransaction()

	// Resolve runs dependency resolution over the pending markings and
	// returns the computed install set.
	Resolve(ctx context.Context) (Transaction, error)
}

// Logger is the progress/diagnostic callback used throughout this
// package. It keeps library code decoupled from any logging framework.
type Logger func(msg string, args ...any)

// Options configures a Session.
type Options struct {
	ReleaseVer string // required release version string
	TempDir    string // scratch root (fresh temp dir when empty)
	Proxy      string // optional proxy URL
	Best       bool   // prefer-highest-version policy
	Refresh    bool   // bypass the engine's index cache
	Logger     Logger // diagnostic callback (optional)
}

// withDefaults returns a copy of Options with a usable Logger.
func (o Options) withDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// NEVRA returns the package identity as name-version-release.arch.
func (p Package) NEVRA() string {
	return p.Name + "-" + p.Version + "-" + p.Release + "." + p.Arch
}
