package engine

// EventKind identifies a state transition reported to listeners.
type EventKind string

const (
	EventFormTypeSelected EventKind = "form_type_selected"
	EventRecordAppended   EventKind = "record_appended"
	EventRecordReplaced   EventKind = "record_replaced"
	EventRecordDeleted    EventKind = "record_deleted"
	EventValidationFailed EventKind = "validation_failed"
)

// Event describes a completed transition. Index is NoEdit for events that do
// not target a record.
type Event struct {
	Kind     EventKind
	FormType string
	Index    int
	Record   Record
	Errors   map[string]string
}

// Succeeded reports whether the event is a successful submission.
func (e Event) Succeeded() bool {
	return e.Kind == EventRecordAppended || e.Kind == EventRecordReplaced
}

// Listener receives events synchronously after the state has changed.
type Listener func(Event)
