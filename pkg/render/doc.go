// Package render defines the presentation contract shared by every
// renderer: a Renderer turns an engine.Snapshot into bytes, a Registry looks
// renderers up by name, and ResolveTheme flattens a go-theme selection into
// the tokens and CSS variables renderers emit.
package render
