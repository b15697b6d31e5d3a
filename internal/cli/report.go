package cli

import (
	"fmt"

	"github.com/scoutpkg/depscout/pkg/solver"
)

// printAvailable lists the available records matching one requested
// package name. Purely informational; it never affects the transaction.
func printAvailable(name string, pkgs []solver.Package) {
	if len(pkgs) == 0 {
		printWarning("no available package matches %s", name)
		return
	}
	printInfo("Available %s:", name)
	for _, pkg := range pkgs {
		printDetail("%s (%s)", pkg.NEVRA(), pkg.Repo)
	}
}

// printInstallSet writes the resolved install set to stdout, one
// "<repository-id> - <name>-<version>-<release>.<arch>" line per entry.
// These lines are the tool's primary output and stay unstyled so they
// can be consumed by scripts.
func printInstallSet(txn solver.Transaction) {
	for _, pkg := range txn {
		fmt.Printf("%s - %s\n", pkg.Repo, pkg.NEVRA())
	}
}

// printFoundIt reports the minimal requested subset that pulled the
// target in.
func printFoundIt(target string, subset []string) {
	printSuccess("FOUND IT!")
	printInfo("%s is pulled in once these are requested:", target)
	for _, name := range subset {
		printDetail("%s", name)
	}
}

// formatResolved builds the progress completion message for a resolve.
func formatResolved(count int) string {
	return fmt.Sprintf("Resolved transaction with %d packages", count)
}
