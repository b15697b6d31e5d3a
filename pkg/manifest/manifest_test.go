package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runtime-install.tmpl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtract(t *testing.T) {
	path := writeManifest(t, `## template header
installpkg foo bar
mkdir /run/install
installpkg baz
removepkg docs
`)

	pkgs, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := []string{"foo", "bar", "baz"}
	if !reflect.DeepEqual(pkgs, want) {
		t.Errorf("Extract = %v, want %v", pkgs, want)
	}
}

func TestExtractIgnoresPrefixLookalikes(t *testing.T) {
	path := writeManifest(t, `installpkgs not-this-one
 installpkg indented-does-count
installpkg
`)

	pkgs, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	// "installpkgs" is a different token; a bare "installpkg" line
	// contributes nothing; leading whitespace is fine.
	want := []string{"indented-does-count"}
	if !reflect.DeepEqual(pkgs, want) {
		t.Errorf("Extract = %v, want %v", pkgs, want)
	}
}

func TestExtractNoMatches(t *testing.T) {
	path := writeManifest(t, "just\nsome\nlines\n")

	pkgs, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(pkgs) != 0 {
		t.Errorf("Extract = %v, want empty", pkgs)
	}
}

func TestExtractMissingFile(t *testing.T) {
	if _, err := Extract(filepath.Join(t.TempDir(), "nope.tmpl")); err == nil {
		t.Fatal("Extract should fail on a missing file")
	}
}
