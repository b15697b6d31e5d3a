// Package pkg provides the core libraries for depscout dependency
// reporting.
//
// # Overview
//
// depscout asks an external dependency resolver which packages would be
// selected for installation, without installing anything. The pkg
// directory is organized into five areas:
//
//  1. [solver] - Resolver sessions (scratch layout, install, parent finding)
//  2. [solver/dnfjson] - The subprocess binding to the resolver helper
//  3. [repos] - Repository source classification and definition files
//  4. [manifest] - Package extraction from installer manifest templates
//  5. [cache] / [observability] - Scratch index caching and event hooks
//
// # Architecture
//
// The typical data flow through depscout:
//
//	repository locations + requested packages
//	         ↓
//	    [repos] package (classify, rewrite definition files)
//	         ↓
//	    [solver] package (session, scratch dirs, transaction)
//	         ↓
//	    [solver/dnfjson] package (helper subprocess, JSON protocol)
//	         ↓
//	    install set on stdout
//
// # Quick Start
//
// Resolve an install set:
//
//	import (
//	    "context"
//	    "github.com/scoutpkg/depscout/pkg/solver"
//	    "github.com/scoutpkg/depscout/pkg/solver/dnfjson"
//	)
//
//	sess, _ := solver.NewSession(context.Background(), dnfjson.New(""),
//	    []string{"https://example.com/os"}, solver.Options{ReleaseVer: "42"})
//	txn, _ := sess.Install(context.Background(), []string{"bash", "kernel"})
//	for _, pkg := range txn {
//	    fmt.Printf("%s - %s\n", pkg.Repo, pkg.NEVRA())
//	}
//
// Find which requested package pulls a dependency in:
//
//	subset, found, _ := sess.FindParent(ctx, "libfoo", requested)
//
// # Main Packages
//
// [solver] - Session lifecycle over a pluggable Engine: scratch
// directory layout, metadata loading, install-set resolution, and the
// brute-force parent finder.
//
// [solver/dnfjson] - Engine implementation that shells out to a helper
// process speaking JSON over stdin/stdout, with a scratch-local index
// cache between invocations.
//
// [repos] - Turns command-line repository locations (paths, URLs, .repo
// definition files) into registered repositories, dropping source
// repositories along the way.
//
// [manifest] - Extracts requested package names from installer manifest
// templates (installpkg lines).
//
// [cache] - File-backed TTL cache used for the resolver metadata index.
//
// [observability] - Process-wide solver and cache event hooks; the CLI
// registers logging hooks under --verbose.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/solver/...       # Specific package
//
// [solver]: https://pkg.go.dev/github.com/scoutpkg/depscout/pkg/solver
// [solver/dnfjson]: https://pkg.go.dev/github.com/scoutpkg/depscout/pkg/solver/dnfjson
// [repos]: https://pkg.go.dev/github.com/scoutpkg/depscout/pkg/repos
// [manifest]: https://pkg.go.dev/github.com/scoutpkg/depscout/pkg/manifest
// [cache]: https://pkg.go.dev/github.com/scoutpkg/depscout/pkg/cache
// [observability]: https://pkg.go.dev/github.com/scoutpkg/depscout/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/scoutpkg/depscout/pkg/buildinfo
package pkg
