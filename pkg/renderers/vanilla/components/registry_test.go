package components

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/model"
)

type recordingTemplates struct {
	names []string
}

func (r *recordingTemplates) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	r.names = append(r.names, name)
	return "<" + name + ">", nil
}

func (r *recordingTemplates) RenderString(string, any, ...io.Writer) (string, error) {
	return "", errors.New("not implemented")
}

func (r *recordingTemplates) RegisterFilter(string, func(any, any) (any, error)) error { return nil }
func (r *recordingTemplates) GlobalContext(any) error                                  { return nil }

func TestDefaultRegistry_Names(t *testing.T) {
	registry := NewDefaultRegistry()
	if diff := cmp.Diff([]string{NameInput, NameSelect}, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestComponentFor(t *testing.T) {
	for kind, want := range map[model.FieldKind]string{
		model.FieldKindText:     NameInput,
		model.FieldKindNumber:   NameInput,
		model.FieldKindDate:     NameInput,
		model.FieldKindPassword: NameInput,
		model.FieldKindDropdown: NameSelect,
	} {
		if got := ComponentFor(kind); got != want {
			t.Fatalf("ComponentFor(%s) = %s, want %s", kind, got, want)
		}
	}
}

func TestTemplateComponent_ThemePartialOverride(t *testing.T) {
	registry := NewDefaultRegistry()
	descriptor, ok := registry.Descriptor(" INPUT ")
	if !ok {
		t.Fatalf("input component missing")
	}

	templates := &recordingTemplates{}
	var buf bytes.Buffer
	if err := descriptor.Renderer(&buf, Field{Name: "a"}, ComponentData{Template: templates}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := descriptor.Renderer(&buf, Field{Name: "b"}, ComponentData{
		Template:      templates,
		ThemePartials: map[string]string{PartialInput: "themes/acme/input.tmpl"},
	}); err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []string{"templates/components/input.tmpl", "themes/acme/input.tmpl"}
	if diff := cmp.Diff(want, templates.names); diff != "" {
		t.Fatalf("template names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_RegisterValidation(t *testing.T) {
	registry := New()
	if err := registry.Register("", Descriptor{Renderer: func(*bytes.Buffer, Field, ComponentData) error { return nil }}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := registry.Register("x", Descriptor{}); err == nil {
		t.Fatalf("expected error for nil renderer")
	}

	clone := NewDefaultRegistry().Clone()
	clone.MustRegister("textarea", Descriptor{Renderer: func(*bytes.Buffer, Field, ComponentData) error { return nil }})
	if _, ok := NewDefaultRegistry().Descriptor("textarea"); ok {
		t.Fatalf("clone mutation leaked into a fresh default registry")
	}
	if len(clone.Names()) != 3 {
		t.Fatalf("expected three components in clone, got %v", clone.Names())
	}
}

func TestTemplateComponent_RequiresTemplates(t *testing.T) {
	descriptor, _ := NewDefaultRegistry().Descriptor(NameSelect)
	if err := descriptor.Renderer(&bytes.Buffer{}, Field{}, ComponentData{}); err == nil {
		t.Fatalf("expected error without template renderer")
	}
}
