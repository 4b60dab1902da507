// Package testsupport holds fixtures shared by renderer and engine tests.
package testsupport

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/goliatone/go-dynform/pkg/catalog"
	"github.com/goliatone/go-dynform/pkg/engine"
	"github.com/goliatone/go-dynform/pkg/render"
)

// SequentialIDs returns a record id generator producing prefix-1, prefix-2...
func SequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// NewEngine builds an engine over the default catalog with formType
// selected and deterministic record ids ("rec-1", "rec-2", ...).
func NewEngine(t *testing.T, formType string, options ...engine.Option) *engine.Engine {
	t.Helper()

	opts := []engine.Option{engine.WithIDGenerator(SequentialIDs("rec"))}
	if formType != "" {
		opts = append(opts, engine.WithInitialFormType(formType))
	}
	e, err := engine.New(catalog.MustDefault(), append(opts, options...)...)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return e
}

// Fill applies name/value pairs to the draft in argument order.
func Fill(t *testing.T, e *engine.Engine, pairs ...string) {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatalf("testsupport: Fill needs name/value pairs, got %d args", len(pairs))
	}
	for i := 0; i < len(pairs); i += 2 {
		if err := e.UpdateField(pairs[i], pairs[i+1]); err != nil {
			t.Fatalf("update %s: %v", pairs[i], err)
		}
	}
}

// Submit fails the test when the draft does not commit.
func Submit(t *testing.T, e *engine.Engine) {
	t.Helper()
	if err := e.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
}

// Render renders snapshot and fails the test on error.
func Render(t *testing.T, r render.Renderer, snapshot engine.Snapshot, opts render.RenderOptions) string {
	t.Helper()
	out, err := r.Render(context.Background(), snapshot, opts)
	if err != nil {
		t.Fatalf("render %s: %v", r.Name(), err)
	}
	return string(out)
}

// AssertContains fails when any fragment is missing from out.
func AssertContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, out)
		}
	}
}

// AssertNotContains fails when any fragment is present in out.
func AssertNotContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(out, fragment) {
			t.Fatalf("expected output to omit %q\n%s", fragment, out)
		}
	}
}
