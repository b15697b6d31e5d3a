package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/scoutpkg/depscout/pkg/observability"
)

// Install marks every requested package for installation and resolves
// the pending transaction once.
//
// A package that cannot be marked (an unknown name, typically) is logged
// and skipped; it never aborts the run. A resolution failure is fatal
// and propagates wrapped. A successful resolve that selects nothing is
// also fatal: see [ErrEmptyTransaction].
func (s *Session) Install(ctx context.Context, requested []string) (Transaction, error) {
	for _, name := range requested {
		if err := s.engine.MarkInstall(name); err != nil {
			s.logf("cannot install %s: %v", name, err)
		}
	}

	start := time.Now()
	observability.Solver().OnResolveStart(ctx, len(requested))
	txn, err := s.engine.Resolve(ctx)
	observability.Solver().OnResolveComplete(ctx, len(txn), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("dependency resolution: %w", err)
	}
	if len(txn) == 0 {
		return nil, ErrEmptyTransaction
	}
	return txn, nil
}
