package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidCatalog is returned (wrapped) whenever NewCatalog rejects its
// input.
var ErrInvalidCatalog = errors.New("model: invalid catalog")

// Catalog is the immutable, ordered set of form schemas available to an
// engine. Build it with NewCatalog; the zero value is an empty catalog.
type Catalog struct {
	order   []string
	schemas map[string]FormSchema
}

// NewCatalog validates and normalises the supplied schemas. Empty field kinds
// default to text, missing labels and titles are derived with DefaultLabeler.
// Schema order is preserved and becomes the catalog order.
func NewCatalog(schemas ...FormSchema) (*Catalog, error) {
	catalog := &Catalog{
		order:   make([]string, 0, len(schemas)),
		schemas: make(map[string]FormSchema, len(schemas)),
	}
	for _, raw := range schemas {
		schema, err := normaliseSchema(raw)
		if err != nil {
			return nil, err
		}
		if _, exists := catalog.schemas[schema.Key]; exists {
			return nil, fmt.Errorf("%w: duplicate form type %q", ErrInvalidCatalog, schema.Key)
		}
		catalog.order = append(catalog.order, schema.Key)
		catalog.schemas[schema.Key] = schema
	}
	return catalog, nil
}

// MustCatalog panics when NewCatalog fails. Useful for static test fixtures.
func MustCatalog(schemas ...FormSchema) *Catalog {
	catalog, err := NewCatalog(schemas...)
	if err != nil {
		panic(err)
	}
	return catalog
}

// Schema returns a copy of the schema registered under key.
func (c *Catalog) Schema(key string) (FormSchema, bool) {
	if c == nil {
		return FormSchema{}, false
	}
	schema, ok := c.schemas[key]
	if !ok {
		return FormSchema{}, false
	}
	return schema.Clone(), true
}

// Has reports whether key is registered.
func (c *Catalog) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c.schemas[key]
	return ok
}

// Keys returns the form-type keys in catalog order.
func (c *Catalog) Keys() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.order)
}

// Schemas returns copies of every schema in catalog order.
func (c *Catalog) Schemas() []FormSchema {
	if c == nil {
		return nil
	}
	out := make([]FormSchema, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.schemas[key].Clone())
	}
	return out
}

// Len reports the number of form types.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

func normaliseSchema(raw FormSchema) (FormSchema, error) {
	schema := raw.Clone()
	schema.Key = strings.TrimSpace(schema.Key)
	if schema.Key == "" {
		return FormSchema{}, fmt.Errorf("%w: form type key is required", ErrInvalidCatalog)
	}
	schema.Title = strings.TrimSpace(schema.Title)
	if schema.Title == "" {
		schema.Title = DefaultLabeler(schema.Key)
	}

	seen := make(map[string]struct{}, len(schema.Fields))
	for i := range schema.Fields {
		field := &schema.Fields[i]
		if err := normaliseField(field); err != nil {
			return FormSchema{}, fmt.Errorf("%w: form type %q: %v", ErrInvalidCatalog, schema.Key, err)
		}
		if _, dup := seen[field.Name]; dup {
			return FormSchema{}, fmt.Errorf("%w: form type %q: duplicate field %q", ErrInvalidCatalog, schema.Key, field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return schema, nil
}

func normaliseField(field *FieldDescriptor) error {
	field.Name = strings.TrimSpace(field.Name)
	if field.Name == "" {
		return errors.New("field name is required")
	}
	field.Kind = FieldKind(strings.ToLower(strings.TrimSpace(string(field.Kind))))
	if field.Kind == "" {
		field.Kind = FieldKindText
	}
	if !field.Kind.Valid() {
		return fmt.Errorf("field %q: unsupported kind %q", field.Name, field.Kind)
	}
	if field.Kind == FieldKindDropdown && len(field.Options) == 0 {
		return fmt.Errorf("field %q: dropdown requires options", field.Name)
	}
	if field.Kind != FieldKindDropdown && len(field.Options) > 0 {
		return fmt.Errorf("field %q: options are only valid for dropdown fields", field.Name)
	}
	field.Label = strings.TrimSpace(field.Label)
	if field.Label == "" {
		field.Label = DefaultLabeler(field.Name)
	}
	return nil
}
