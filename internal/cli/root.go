package cli

import (
	"context"
	"errors"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/scoutpkg/depscout/pkg/buildinfo"
	"github.com/scoutpkg/depscout/pkg/manifest"
	"github.com/scoutpkg/depscout/pkg/observability"
	"github.com/scoutpkg/depscout/pkg/solver"
	"github.com/scoutpkg/depscout/pkg/solver/dnfjson"
)

// ErrNoPackages is the usage-level failure: nothing was requested on the
// command line and nothing was extracted from the manifest. It is
// reported before any resolver work starts.
var ErrNoPackages = errors.New("no packages requested (give package names or a manifest with installpkg lines)")

// rootOpts holds the command-line flags for the depscout command.
type rootOpts struct {
	release    string   // release version passed to the resolver engine
	sources    []string // repository locations, in order
	template   string   // manifest file to extract package names from
	find       string   // target package name for parent-finder mode
	skipBroken bool     // disable the prefer-highest-version policy
	tempDir    string   // scratch root (fresh temp dir if empty)
	proxy      string   // proxy URL passed to the engine
	refresh    bool     // bypass the scratch index cache
}

// Execute runs the depscout CLI and returns an error if the run fails.
// This is the main entry point for the CLI application.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd builds the depscout command tree: a single flat command,
// no subcommands.
func newRootCmd() *cobra.Command {
	var verbose bool
	opts := &rootOpts{}

	root := &cobra.Command{
		Use:   "depscout [flags] packages...",
		Short: "depscout reports which packages a resolver would install",
		Long: `depscout asks an external dependency resolver which packages would be
selected for installation given a set of repositories and requested
package names, without installing anything.

With --find it instead brute-forces which requested package is
responsible for pulling the named target in as a dependency.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			if verbose {
				observability.SetSolverHooks(&logSolverHooks{logger: logger})
				observability.SetCacheHooks(&logCacheHooks{logger: logger})
			}
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.Flags().StringVarP(&opts.release, "release", "r", "", "release version passed to the resolver engine")
	root.Flags().StringArrayVarP(&opts.sources, "source", "s", nil, "repository location (path, URL, or .repo file; repeatable)")
	root.Flags().StringVarP(&opts.template, "template", "t", "", "manifest file to extract package names from")
	root.Flags().StringVarP(&opts.find, "find", "f", "", "diagnose which requested package pulls this one in")
	root.Flags().BoolVar(&opts.skipBroken, "skip-broken", false, "do not prefer the highest available version")
	root.Flags().StringVar(&opts.tempDir, "tempdir", "", "scratch root (default: a fresh temporary directory)")
	root.Flags().StringVar(&opts.proxy, "proxy", "", "proxy URL passed to the resolver engine")
	root.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the scratch metadata index cache")

	_ = root.MarkFlagRequired("release")
	_ = root.MarkFlagRequired("source")

	return root
}

// run executes one depscout invocation: gather the request, build the
// session, and dispatch to normal or find mode.
func run(cmd *cobra.Command, args []string, opts *rootOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	packages, err := collectPackages(args, opts.template)
	if err != nil {
		return err
	}
	if len(packages) == 0 {
		_ = cmd.Usage()
		return ErrNoPackages
	}
	logger.Debugf("requested packages: %v", packages)

	sess, err := newSession(ctx, opts)
	if err != nil {
		return err
	}
	logger.Debugf("session %s ready (scratch %s)", sess.ID, sess.Scratch)

	if opts.find != "" {
		return runFind(ctx, sess, opts.find, packages)
	}
	return runInstall(ctx, sess, packages)
}

// collectPackages merges positional package names with the ones
// extracted from the manifest template, preserving order as supplied.
func collectPackages(args []string, template string) ([]string, error) {
	packages := append([]string(nil), args...)
	if template == "" {
		return packages, nil
	}
	extracted, err := manifest.Extract(template)
	if err != nil {
		return nil, err
	}
	return append(packages, extracted...), nil
}

// newSession prepares the fully loaded resolver session. Any repository
// metadata fetch failure surfaces here and aborts the run.
func newSession(ctx context.Context, opts *rootOpts) (*solver.Session, error) {
	logger := loggerFromContext(ctx)

	spin := newSpinnerWithContext(ctx, "Loading repository metadata")
	spin.Start()
	defer spin.Stop()

	return solver.NewSession(ctx, dnfjson.New(""), opts.sources, solver.Options{
		ReleaseVer: opts.release,
		TempDir:    opts.tempDir,
		Proxy:      opts.proxy,
		Best:       !opts.skipBroken,
		Refresh:    opts.refresh,
		Logger:     func(msg string, args ...any) { logger.Warnf(msg, args...) },
	})
}

// runInstall reports matching available records for each requested
// package, then the full resolved install set.
func runInstall(ctx context.Context, sess *solver.Session, packages []string) error {
	logger := loggerFromContext(ctx)

	for _, name := range packages {
		printAvailable(name, sess.Available(name))
	}

	prog := newProgress(logger)
	txn, err := sess.Install(ctx, packages)
	if err != nil {
		return err
	}
	prog.done(formatResolved(len(txn)))

	printInstallSet(txn)
	return nil
}

// runFind brute-forces the minimal requested subset that pulls target
// into the install set. No match is not an error; the run just ends.
func runFind(ctx context.Context, sess *solver.Session, target string, packages []string) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Searching for what pulls in %s", target)

	subset, found, err := sess.FindParent(ctx, target, packages)
	if err != nil {
		return err
	}
	if found {
		printFoundIt(target, subset)
	}
	return nil
}
