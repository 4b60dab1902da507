package engine

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Engine is the form state machine. Construct it with New.
type Engine struct {
	catalog     *model.Catalog
	logger      *slog.Logger
	listeners   []Listener
	initialType string
	newID       func() string

	formType  string
	schema    model.FormSchema
	draft     map[string]string
	errors    map[string]string
	progress  float64
	records   map[string][]Record
	editIndex int
}

// New constructs an engine over catalog and selects the initial form type:
// WithInitialFormType when given, the first catalog key otherwise.
func New(catalog *model.Catalog, options ...Option) (*Engine, error) {
	if catalog.Len() == 0 {
		return nil, ErrEmptyCatalog
	}

	e := &Engine{
		catalog:   catalog,
		logger:    defaultLogger(),
		newID:     newRecordID,
		draft:     map[string]string{},
		errors:    map[string]string{},
		records:   map[string][]Record{},
		editIndex: NoEdit,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}

	initial := e.initialType
	if initial == "" {
		initial = catalog.Keys()[0]
	}
	if err := e.SelectFormType(initial); err != nil {
		return nil, err
	}
	return e, nil
}

// Catalog returns the catalog the engine was built with.
func (e *Engine) Catalog() *model.Catalog {
	return e.catalog
}

// FormType returns the active form-type key.
func (e *Engine) FormType() string {
	return e.formType
}

// SelectFormType activates key and resets the draft, errors, edit cursor and
// progress, even when key is already active.
func (e *Engine) SelectFormType(key string) error {
	schema, ok := e.catalog.Schema(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidFormType, key)
	}

	e.formType = key
	e.schema = schema
	e.resetDraft()

	e.logger.Debug("form type selected", "form_type", key, "fields", len(schema.Fields))
	e.emit(Event{Kind: EventFormTypeSelected, FormType: key, Index: NoEdit})
	return nil
}

// UpdateField stores value in the draft. A non-empty value for a required
// field clears that field's error; errors are never added here.
func (e *Engine) UpdateField(name, value string) error {
	field, ok := e.schema.Field(name)
	if !ok {
		return fmt.Errorf("%w: %q in form type %q", ErrUnknownField, name, e.formType)
	}

	draft := maps.Clone(e.draft)
	draft[name] = value
	e.draft = draft

	if field.Required && value != "" {
		if _, exists := e.errors[name]; exists {
			errs := maps.Clone(e.errors)
			delete(errs, name)
			e.errors = errs
		}
	}

	e.recomputeProgress()
	e.logger.Debug("field updated", "form_type", e.formType, "field", name, "progress", e.progress)
	return nil
}

// Progress is the share of schema fields holding a non-empty draft value,
// in the 0-100 range. Required and optional fields count alike.
func (e *Engine) Progress() float64 {
	return e.progress
}

// Submit validates the draft. On failure it stores and returns a
// *ValidationError and keeps the draft. On success it appends the draft to
// the active record list, or replaces the record under the edit cursor, then
// clears the draft, cursor and errors.
func (e *Engine) Submit() error {
	if errs := validateDraft(e.schema, e.draft); len(errs) > 0 {
		e.errors = errs
		e.logger.Info("submission rejected", "form_type", e.formType, "errors", len(errs))
		e.emit(Event{Kind: EventValidationFailed, FormType: e.formType, Index: e.editIndex, Errors: cloneStringMap(errs)})
		return &ValidationError{FormType: e.formType, Fields: cloneStringMap(errs)}
	}

	current := e.records[e.formType]
	record := Record{Values: cloneStringMap(e.draft)}

	var (
		next  []Record
		index int
		kind  EventKind
	)
	if e.editIndex != NoEdit {
		if e.editIndex < 0 || e.editIndex >= len(current) {
			stale := e.editIndex
			e.editIndex = NoEdit
			return fmt.Errorf("%w: edit cursor %d", ErrRecordIndex, stale)
		}
		index = e.editIndex
		record.ID = current[index].ID
		next = slices.Clone(current)
		next[index] = record
		kind = EventRecordReplaced
	} else {
		record.ID = e.newID()
		next = append(slices.Clone(current), record)
		index = len(next) - 1
		kind = EventRecordAppended
	}

	e.storeRecords(next)
	e.resetDraft()

	e.logger.Debug("record stored", "form_type", e.formType, "index", index, "replaced", kind == EventRecordReplaced)
	e.emit(Event{Kind: kind, FormType: e.formType, Index: index, Record: record.clone()})
	return nil
}

// BeginEdit copies the record at index into the draft and points the edit
// cursor at it. Errors from a previous draft are cleared.
func (e *Engine) BeginEdit(index int) error {
	current := e.records[e.formType]
	if index < 0 || index >= len(current) {
		return fmt.Errorf("%w: %d (form type %q has %d records)", ErrRecordIndex, index, e.formType, len(current))
	}

	e.draft = cloneStringMap(current[index].Values)
	e.errors = map[string]string{}
	e.editIndex = index
	e.recomputeProgress()

	e.logger.Debug("edit started", "form_type", e.formType, "index", index)
	return nil
}

// CancelEdit drops the draft and edit cursor without touching the store.
func (e *Engine) CancelEdit() {
	e.resetDraft()
	e.logger.Debug("edit cancelled", "form_type", e.formType)
}

// DeleteRecord removes the record at index; later records shift down by
// one. The edit cursor is always reset, the draft is kept.
func (e *Engine) DeleteRecord(index int) error {
	current := e.records[e.formType]
	if index < 0 || index >= len(current) {
		return fmt.Errorf("%w: %d (form type %q has %d records)", ErrRecordIndex, index, e.formType, len(current))
	}

	removed := current[index].clone()
	next := slices.Delete(slices.Clone(current), index, index+1)
	e.storeRecords(next)
	e.editIndex = NoEdit

	e.logger.Debug("record deleted", "form_type", e.formType, "index", index, "remaining", len(next))
	e.emit(Event{Kind: EventRecordDeleted, FormType: e.formType, Index: index, Record: removed})
	return nil
}

// Records returns a copy of the records stored for key.
func (e *Engine) Records(key string) ([]Record, error) {
	if !e.catalog.Has(key) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormType, key)
	}
	return cloneRecords(e.records[key]), nil
}

// Snapshot returns a deep copy of the state for rendering.
func (e *Engine) Snapshot() Snapshot {
	schemas := e.catalog.Schemas()
	options := make([]FormTypeOption, len(schemas))
	for i, schema := range schemas {
		options[i] = FormTypeOption{Key: schema.Key, Title: schema.Title}
	}

	return Snapshot{
		FormType:  e.formType,
		FormTypes: options,
		Schema:    e.schema.Clone(),
		Draft:     cloneStringMap(e.draft),
		Errors:    cloneStringMap(e.errors),
		Progress:  e.progress,
		Records:   cloneRecords(e.records[e.formType]),
		EditIndex: e.editIndex,
	}
}

func (e *Engine) storeRecords(next []Record) {
	store := maps.Clone(e.records)
	store[e.formType] = next
	e.records = store
}

func (e *Engine) resetDraft() {
	e.draft = map[string]string{}
	e.errors = map[string]string{}
	e.editIndex = NoEdit
	e.progress = 0
}

func (e *Engine) recomputeProgress() {
	e.progress = computeProgress(e.schema, e.draft)
}

func (e *Engine) emit(event Event) {
	for _, listener := range e.listeners {
		listener(event)
	}
}

func computeProgress(schema model.FormSchema, draft map[string]string) float64 {
	total := len(schema.Fields)
	if total == 0 {
		return 0
	}
	filled := 0
	for _, field := range schema.Fields {
		if draft[field.Name] != "" {
			filled++
		}
	}
	return float64(filled) / float64(total) * 100
}

func validateDraft(schema model.FormSchema, draft map[string]string) map[string]string {
	errs := map[string]string{}
	for _, field := range schema.Fields {
		if field.Required && draft[field.Name] == "" {
			errs[field.Name] = field.DisplayLabel() + " is required"
		}
	}
	return errs
}
