package jsonview_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/catalog"
	"github.com/goliatone/go-dynform/pkg/engine"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/jsonview"
)

func TestRenderer_EncodesSnapshot(t *testing.T) {
	e, err := engine.New(catalog.MustDefault(), engine.WithIDGenerator(func() string { return "id-1" }))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	_ = e.UpdateField("firstName", "Ann")
	_ = e.Submit()

	cfg, err := render.ResolveTheme(render.NewThemeSelector(render.DefaultThemeManifest()), "", "dark")
	if err != nil {
		t.Fatalf("theme: %v", err)
	}

	out, err := jsonview.New("  ").Render(context.Background(), e.Snapshot(), render.RenderOptions{Notice: "hi", Theme: cfg})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasSuffix(string(out), "}\n") || !strings.Contains(string(out), "\n  \"formType\"") {
		t.Fatalf("expected indented output:\n%s", out)
	}

	var got struct {
		FormType        string            `json:"formType"`
		Draft           map[string]string `json:"draft"`
		Errors          map[string]string `json:"errors"`
		ProgressPercent int               `json:"progressPercent"`
		Editing         bool              `json:"editing"`
		EditIndex       int               `json:"editIndex"`
		Records         []engine.Record   `json:"records"`
		Notice          string            `json:"notice"`
		Theme           string            `json:"theme"`
		Variant         string            `json:"variant"`
	}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.FormType != "userInfo" || got.ProgressPercent != 33 || got.Editing || got.EditIndex != engine.NoEdit {
		t.Fatalf("unexpected header fields: %+v", got)
	}
	if diff := cmp.Diff(map[string]string{"lastName": "Last Name is required"}, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if got.Records == nil || len(got.Records) != 0 {
		t.Fatalf("expected empty records array, got %#v", got.Records)
	}
	if got.Notice != "hi" || got.Theme != render.DefaultThemeName || got.Variant != "dark" {
		t.Fatalf("unexpected options fields: %+v", got)
	}
}

func TestRenderer_CompactOutput(t *testing.T) {
	e, err := engine.New(catalog.MustDefault())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	r := jsonview.New("")
	out, err := r.Render(context.Background(), e.Snapshot(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Count(string(out), "\n") != 1 {
		t.Fatalf("expected single-line output:\n%s", out)
	}
	if r.Name() != jsonview.Name || r.ContentType() != "application/json" {
		t.Fatalf("unexpected renderer identity")
	}
}
