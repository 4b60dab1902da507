// Package jsonview renders engine snapshots as JSON documents.
package jsonview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-dynform/pkg/engine"
	"github.com/goliatone/go-dynform/pkg/render"
)

// Name is the registry name of the JSON renderer.
const Name = "json"

// Document is the JSON payload: the snapshot plus display helpers.
type Document struct {
	engine.Snapshot
	ProgressPercent int    `json:"progressPercent"`
	Editing         bool   `json:"editing"`
	Notice          string `json:"notice,omitempty"`
	Theme           string `json:"theme,omitempty"`
	Variant         string `json:"variant,omitempty"`
}

// Renderer implements render.Renderer for JSON.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New returns a JSON renderer. A non-empty indent pretty-prints the output.
func New(indent string) *Renderer {
	return &Renderer{indent: indent}
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) ContentType() string { return "application/json" }

func (r *Renderer) Render(ctx context.Context, snapshot engine.Snapshot, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := Build(snapshot, opts)

	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonview: encode snapshot: %w", err)
	}
	return append(out, '\n'), nil
}

// Build assembles the document Render encodes.
func Build(snapshot engine.Snapshot, opts render.RenderOptions) Document {
	doc := Document{
		Snapshot:        snapshot,
		ProgressPercent: snapshot.ProgressPercent(),
		Editing:         snapshot.Editing(),
		Notice:          opts.Notice,
	}
	if opts.Theme != nil {
		doc.Theme = opts.Theme.Theme
		doc.Variant = opts.Theme.Variant
	}
	if doc.Records == nil {
		doc.Records = []engine.Record{}
	}
	return doc
}
