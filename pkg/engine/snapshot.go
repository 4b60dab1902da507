package engine

import (
	"maps"
	"math"

	"github.com/goliatone/go-dynform/pkg/model"
)

// NoEdit marks an unset edit cursor.
const NoEdit = -1

// Record is a submitted draft. ID is stable across edit-replace.
type Record struct {
	ID     string            `json:"id"`
	Values map[string]string `json:"values"`
}

// Value returns the stored value for name, or "".
func (r Record) Value(name string) string {
	return r.Values[name]
}

func (r Record) clone() Record {
	values := maps.Clone(r.Values)
	if values == nil {
		values = map[string]string{}
	}
	return Record{ID: r.ID, Values: values}
}

// FormTypeOption is a catalog entry as offered to the form-type selector.
type FormTypeOption struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Snapshot is a read-only copy of the engine state taken after a
// transition. Mutating a snapshot never affects the engine.
type Snapshot struct {
	FormType  string            `json:"formType"`
	FormTypes []FormTypeOption  `json:"formTypes"`
	Schema    model.FormSchema  `json:"schema"`
	Draft     map[string]string `json:"draft"`
	Errors    map[string]string `json:"errors"`
	Progress  float64           `json:"progress"`
	Records   []Record          `json:"records"`
	EditIndex int               `json:"editIndex"`
}

// Editing reports whether the next submit replaces an existing record.
func (s Snapshot) Editing() bool {
	return s.EditIndex != NoEdit
}

// ProgressPercent rounds Progress for display.
func (s Snapshot) ProgressPercent() int {
	return int(math.Round(s.Progress))
}

// Value returns the draft value for name, or "".
func (s Snapshot) Value(name string) string {
	return s.Draft[name]
}

// Error returns the validation message for name, or "".
func (s Snapshot) Error(name string) string {
	return s.Errors[name]
}

// Valid reports whether the snapshot carries no validation errors.
func (s Snapshot) Valid() bool {
	return len(s.Errors) == 0
}

func cloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, record := range records {
		out[i] = record.clone()
	}
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	out := maps.Clone(in)
	if out == nil {
		out = map[string]string{}
	}
	return out
}
