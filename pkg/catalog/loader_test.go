package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/catalog"
	"github.com/goliatone/go-dynform/pkg/model"
)

func TestDefaultCatalogMatchesBuiltInFormTypes(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}

	if diff := cmp.Diff([]string{"userInfo", "addressInfo", "paymentInfo"}, cat.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	user, _ := cat.Schema("userInfo")
	want := model.FormSchema{
		Key:   "userInfo",
		Title: "User Information",
		Fields: []model.FieldDescriptor{
			{Name: "firstName", Kind: model.FieldKindText, Label: "First Name", Required: true},
			{Name: "lastName", Kind: model.FieldKindText, Label: "Last Name", Required: true},
			{Name: "age", Kind: model.FieldKindNumber, Label: "Age"},
		},
	}
	if diff := cmp.Diff(want, user); diff != "" {
		t.Fatalf("userInfo mismatch (-want +got):\n%s", diff)
	}

	address, _ := cat.Schema("addressInfo")
	state, ok := address.Field("state")
	if !ok {
		t.Fatalf("expected state field")
	}
	if state.Kind != model.FieldKindDropdown || !state.Required {
		t.Fatalf("unexpected state descriptor: %+v", state)
	}
	if diff := cmp.Diff([]string{"California", "Texas", "New York"}, state.Options); diff != "" {
		t.Fatalf("state options mismatch (-want +got):\n%s", diff)
	}

	payment, _ := cat.Schema("paymentInfo")
	cvv, _ := payment.Field("cvv")
	if cvv.Kind != model.FieldKindPassword {
		t.Fatalf("expected cvv to be a password field, got %s", cvv.Kind)
	}
}

func TestParseAcceptsJSONAndYAML(t *testing.T) {
	jsonDoc := []byte(`{"formTypes":[{"key":"contact","fields":[{"name":"email","required":true}]}]}`)
	yamlDoc := []byte("formTypes:\n  - key: contact\n    fields:\n      - name: email\n        required: true\n")

	for name, data := range map[string][]byte{"json": jsonDoc, "yaml": yamlDoc} {
		t.Run(name, func(t *testing.T) {
			cat, err := catalog.Parse(data, name)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			schema, ok := cat.Schema("contact")
			if !ok {
				t.Fatalf("expected contact schema")
			}
			want := []model.FieldDescriptor{{Name: "email", Kind: model.FieldKindText, Label: "Email", Required: true}}
			if diff := cmp.Diff(want, schema.Fields); diff != "" {
				t.Fatalf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRejectsEmptyAndInvalidDocuments(t *testing.T) {
	if _, err := catalog.Parse([]byte("   "), "blank"); !errors.Is(err, catalog.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if _, err := catalog.Parse([]byte("formTypes: [\n"), "broken"); err == nil {
		t.Fatalf("expected parse error")
	}
	invalid := []byte("formTypes:\n  - key: a\n    fields:\n      - name: pick\n        kind: dropdown\n")
	if _, err := catalog.Parse(invalid, "invalid"); !errors.Is(err, model.ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
}

func TestLoadFSMergesFilesAndRejectsDuplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml":     {Data: []byte("formTypes:\n  - key: first\n")},
		"b/c.json":   {Data: []byte(`{"formTypes":[{"key":"second"}]}`)},
		"README.txt": {Data: []byte("ignored")},
	}
	cat, err := catalog.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second"}, cat.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	fsys["d.yml"] = &fstest.MapFile{Data: []byte("formTypes:\n  - key: first\n")}
	if _, err := catalog.LoadFS(fsys); !errors.Is(err, model.ErrInvalidCatalog) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestLoadFileReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "forms.yaml")
	if err := os.WriteFile(path, []byte("formTypes:\n  - key: disk\n    title: From Disk\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	schema, _ := cat.Schema("disk")
	if schema.Title != "From Disk" {
		t.Fatalf("unexpected title %q", schema.Title)
	}

	if _, err := catalog.LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
