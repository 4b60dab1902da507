package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/engine"
	"github.com/goliatone/go-dynform/pkg/render"
)

type namedRenderer struct {
	name string
}

func (r namedRenderer) Name() string        { return r.name }
func (r namedRenderer) ContentType() string { return "text/plain" }
func (r namedRenderer) Render(_ context.Context, snapshot engine.Snapshot, _ render.RenderOptions) ([]byte, error) {
	return []byte(snapshot.FormType), nil
}

func TestRegistry_RegisterAndList(t *testing.T) {
	registry := render.NewRegistry(namedRenderer{name: "vanilla"}, namedRenderer{name: "json"})

	if diff := cmp.Diff([]string{"json", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("json") || registry.Has("preact") {
		t.Fatalf("unexpected Has results")
	}

	got, err := registry.Get("vanilla")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name() != "vanilla" {
		t.Fatalf("expected vanilla, got %s", got.Name())
	}
}

func TestRegistry_RejectsInvalidRegistrations(t *testing.T) {
	registry := render.NewRegistry()

	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
	if err := registry.Register(namedRenderer{name: "  "}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	registry.MustRegister(namedRenderer{name: "text"})
	if err := registry.Register(namedRenderer{name: "text"}); !errors.Is(err, render.ErrDuplicateRenderer) {
		t.Fatalf("expected ErrDuplicateRenderer, got %v", err)
	}
	if _, err := registry.Get("html"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestRenderOptions_Action(t *testing.T) {
	cases := []struct {
		prefix string
		path   string
		want   string
	}{
		{prefix: "", path: "/submit", want: "/submit"},
		{prefix: "/forms/", path: "/submit", want: "/forms/submit"},
		{prefix: "/forms", path: "records/1/edit", want: "/forms/records/1/edit"},
	}
	for _, tc := range cases {
		got := render.RenderOptions{ActionPrefix: tc.prefix}.Action(tc.path)
		if got != tc.want {
			t.Fatalf("Action(%q) with prefix %q = %q, want %q", tc.path, tc.prefix, got, tc.want)
		}
	}
}
