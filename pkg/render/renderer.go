package render

import (
	"context"

	"github.com/goliatone/go-dynform/pkg/engine"
)

// Renderer converts an engine snapshot into a byte representation (HTML,
// JSON, plain text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snapshot engine.Snapshot, options RenderOptions) ([]byte, error)
}
