package model

import "slices"

// FieldKind is the simplified enum for form-friendly field kinds.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindNumber   FieldKind = "number"
	FieldKindDate     FieldKind = "date"
	FieldKindPassword FieldKind = "password"
	FieldKindDropdown FieldKind = "dropdown"
)

// FieldKinds lists every recognised kind in declaration order.
func FieldKinds() []FieldKind {
	return []FieldKind{
		FieldKindText,
		FieldKindNumber,
		FieldKindDate,
		FieldKindPassword,
		FieldKindDropdown,
	}
}

// Valid reports whether k is one of the recognised kinds.
func (k FieldKind) Valid() bool {
	return slices.Contains(FieldKinds(), k)
}

// InputType returns the HTML input type used to render the kind. Dropdowns
// render as a select element and report "select".
func (k FieldKind) InputType() string {
	switch k {
	case FieldKindNumber:
		return "number"
	case FieldKindDate:
		return "date"
	case FieldKindPassword:
		return "password"
	case FieldKindDropdown:
		return "select"
	default:
		return "text"
	}
}

// FieldDescriptor models an individual input inside a form schema. Struct
// fields are annotated so catalogs can be declared in JSON or YAML and
// renderers can serialise them directly.
type FieldDescriptor struct {
	Name        string    `json:"name" yaml:"name"`
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Required    bool      `json:"required" yaml:"required"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// DisplayLabel returns the label, falling back to the field name.
func (f FieldDescriptor) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

func (f FieldDescriptor) clone() FieldDescriptor {
	out := f
	out.Options = slices.Clone(f.Options)
	return out
}

// FormSchema is the ordered field list registered under a form-type key.
type FormSchema struct {
	Key    string            `json:"key" yaml:"key"`
	Title  string            `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []FieldDescriptor `json:"fields" yaml:"fields"`
}

// Field looks up a descriptor by name.
func (s FormSchema) Field(name string) (FieldDescriptor, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field.clone(), true
		}
	}
	return FieldDescriptor{}, false
}

// FieldNames returns the field names in schema order.
func (s FormSchema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, field := range s.Fields {
		names[i] = field.Name
	}
	return names
}

// Clone returns a deep copy of the schema.
func (s FormSchema) Clone() FormSchema {
	out := FormSchema{Key: s.Key, Title: s.Title}
	if s.Fields != nil {
		out.Fields = make([]FieldDescriptor, len(s.Fields))
		for i, field := range s.Fields {
			out.Fields[i] = field.clone()
		}
	}
	return out
}
