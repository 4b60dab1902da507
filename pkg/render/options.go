package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching engine state.
type RenderOptions struct {
	// Notice is a one-shot status message, for example "Form submitted
	// successfully!" after a submission.
	Notice string
	// ActionPrefix is prepended to every action URL emitted by interactive
	// renderers so the HTTP surface can be mounted under a sub-path.
	ActionPrefix string
	// Theme carries resolved tokens and CSS variables. Nil means the
	// renderer's built-in palette.
	Theme *theme.RendererConfig
}

// Action joins the prefix with path.
func (o RenderOptions) Action(path string) string {
	prefix := o.ActionPrefix
	for len(prefix) > 0 && prefix[len(prefix)-1] == '/' {
		prefix = prefix[:len(prefix)-1]
	}
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	return prefix + path
}

// Notices shown after successful mutations.
const (
	NoticeSubmitted = "Form submitted successfully!"
	NoticeDeleted   = "Data deleted successfully!"
)
