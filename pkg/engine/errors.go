package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidReference is the parent of every caller contract violation.
	ErrInvalidReference = errors.New("engine: invalid reference")
	// ErrInvalidFormType signals a form-type key missing from the catalog.
	ErrInvalidFormType = fmt.Errorf("%w: unknown form type", ErrInvalidReference)
	// ErrUnknownField signals a field name outside the active schema.
	ErrUnknownField = fmt.Errorf("%w: unknown field", ErrInvalidReference)
	// ErrRecordIndex signals an index outside the active record list.
	ErrRecordIndex = fmt.Errorf("%w: record index out of range", ErrInvalidReference)
	// ErrValidation matches any *ValidationError returned by Submit.
	ErrValidation = errors.New("engine: validation failed")
	// ErrEmptyCatalog is returned by New when there is nothing to select.
	ErrEmptyCatalog = errors.New("engine: catalog has no form types")
)

// ValidationError carries the per-field messages produced by Submit.
type ValidationError struct {
	FormType string
	Fields   map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("engine: %s: validation failed for %s", e.FormType, strings.Join(names, ", "))
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
