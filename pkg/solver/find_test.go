package solver

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestFindParent(t *testing.T) {
	eng := newFakeEngine()
	sess := newTestSession(t, eng)

	// libdep only appears once "b" joins the working subset.
	subset, found, err := sess.FindParent(context.Background(), "libdep", []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("FindParent: %v", err)
	}
	if !found {
		t.Fatal("expected a match")
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(subset, want) {
		t.Errorf("subset = %v, want %v", subset, want)
	}
}

func TestFindParentSubstringMatch(t *testing.T) {
	eng := newFakeEngine()
	sess := newTestSession(t, eng)

	// "lib" matches "libdep" by containment; false positives like this
	// are accepted behavior.
	_, found, err := sess.FindParent(context.Background(), "lib", []string{"a", "b"})
	if err != nil {
		t.Fatalf("FindParent: %v", err)
	}
	if !found {
		t.Error("substring containment should match libdep")
	}
}

func TestFindParentNoMatch(t *testing.T) {
	eng := newFakeEngine()
	sess := newTestSession(t, eng)

	subset, found, err := sess.FindParent(context.Background(), "ghost", []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("FindParent: %v", err)
	}
	if found || subset != nil {
		t.Errorf("expected no match, got %v", subset)
	}
}

func TestFindParentResolveFailureIsFatal(t *testing.T) {
	eng := newFakeEngine()
	sess := newTestSession(t, eng)
	eng.resolveErr = errors.New("conflicting requests")

	if _, _, err := sess.FindParent(context.Background(), "libdep", []string{"a"}); err == nil {
		t.Fatal("resolve failure should propagate")
	}
}

func TestFindParentResetsBetweenSteps(t *testing.T) {
	eng := newFakeEngine()
	sess := newTestSession(t, eng)

	_, _, err := sess.FindParent(context.Background(), "ghost", []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("FindParent: %v", err)
	}
	// After the last step the engine holds exactly the final subset,
	// not an accumulation of every iteration's markings.
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(eng.marked, want) {
		t.Errorf("marked = %v, want %v", eng.marked, want)
	}
}
