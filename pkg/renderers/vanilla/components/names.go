package components

// Canonical component names used by the vanilla renderer and default registry.
const (
	NameInput  = "input"
	NameSelect = "select"
)

// Theme partial keys that may override the default component templates.
const (
	PartialInput  = "forms.input"
	PartialSelect = "forms.select"
)
