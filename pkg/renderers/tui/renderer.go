package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-dynform/pkg/engine"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
)

// Name is the registry name of the text renderer.
const Name = "text"

const (
	defaultBarWidth = 20
	maskedValue     = "****"
)

// Renderer renders a snapshot as plain text for terminals.
type Renderer struct {
	barWidth int
	theme    Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a text renderer.
func New(options ...RendererOption) *Renderer {
	r := &Renderer{barWidth: defaultBarWidth}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.barWidth <= 0 {
		r.barWidth = defaultBarWidth
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render lists the active form's fields with their draft values and errors,
// a progress bar and the records table. Password values are masked.
func (r *Renderer) Render(ctx context.Context, snapshot engine.Snapshot, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s (%s)\n", snapshot.Schema.Title, snapshot.FormType)
	if snapshot.Editing() {
		fmt.Fprintf(&buf, "Editing record %d\n", snapshot.EditIndex+1)
	}
	if opts.Notice != "" {
		fmt.Fprintf(&buf, "%s%s\n", r.theme.InfoPrefix, opts.Notice)
	}
	buf.WriteString("\n")

	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	for _, field := range snapshot.Schema.Fields {
		label := field.DisplayLabel()
		if field.Required {
			label += " *"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", label, displayValue(field, snapshot.Value(field.Name)))
		if message := snapshot.Error(field.Name); message != "" {
			fmt.Fprintf(tw, "  \t%s%s\n", r.theme.ErrorPrefix, message)
		}
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	fmt.Fprintf(&buf, "\n%s %d%% Complete\n", progressBar(snapshot.ProgressPercent(), r.barWidth), snapshot.ProgressPercent())

	if len(snapshot.Records) > 0 {
		fmt.Fprintf(&buf, "\nSubmitted Data for %s\n", snapshot.FormType)
		if err := writeRecords(&buf, snapshot); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// RecordSummaries returns one line per record, used as selection labels.
func RecordSummaries(snapshot engine.Snapshot) []string {
	out := make([]string, len(snapshot.Records))
	for i, record := range snapshot.Records {
		var parts []string
		for _, field := range snapshot.Schema.Fields {
			if value := record.Value(field.Name); value != "" {
				parts = append(parts, displayValue(field, value))
			}
		}
		out[i] = fmt.Sprintf("#%d %s", i+1, strings.Join(parts, ", "))
	}
	return out
}

func writeRecords(buf *bytes.Buffer, snapshot engine.Snapshot) error {
	tw := tabwriter.NewWriter(buf, 0, 4, 2, ' ', 0)

	header := []string{"#"}
	for _, field := range snapshot.Schema.Fields {
		header = append(header, field.DisplayLabel())
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for i, record := range snapshot.Records {
		marker := fmt.Sprint(i + 1)
		if i == snapshot.EditIndex {
			marker += ">"
		}
		row := []string{marker}
		for _, field := range snapshot.Schema.Fields {
			row = append(row, displayValue(field, record.Value(field.Name)))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func displayValue(field model.FieldDescriptor, value string) string {
	if field.Kind == model.FieldKindPassword && value != "" {
		return maskedValue
	}
	return value
}

func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
