package solver

import (
	"context"
	"strings"
)

// FindParent identifies the minimal prefix of the requested package list
// that pulls target into the install set.
//
// It grows a working subset one requested package at a time and
// re-resolves the whole subset at each step; the engine exposes no
// incremental API, so the repeated full resolves are inherent. The match
// is substring containment on package names, not an exact-name test, so
// a target like "lib" can match "libfoo" — first match wins.
//
// A resolve failure or empty transaction at any step is fatal. When no
// subset through the full list produces a match, FindParent returns
// found=false with a nil error.
func (s *Session) FindParent(ctx context.Context, target string, requested []string) (subset []string, found bool, err error) {
	working := make([]string, 0, len(requested))

	for _, name := range requested {
		working = append(working, name)
		s.Reset()

		txn, err := s.Install(ctx, working)
		if err != nil {
			return nil, false, err
		}
		for _, pkg := range txn {
			if strings.Contains(pkg.Name, target) {
				return working, true, nil
			}
		}
	}
	return nil, false, nil
}
