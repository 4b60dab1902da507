package vanilla

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goliatone/go-dynform/pkg/engine"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/vanilla/components"
)

// pageView is the template payload. Numbers are pre-formatted strings since
// the template engine prints JSON numbers as floats.
type pageView struct {
	Heading       string         `json:"heading"`
	FormType      string         `json:"formType"`
	FormTitle     string         `json:"formTitle"`
	FormTypes     []optionView   `json:"formTypes"`
	Fields        []fieldView    `json:"fields"`
	Editing       bool           `json:"editing"`
	EditLabel     string         `json:"editLabel"`
	SubmitLabel   string         `json:"submitLabel"`
	Progress      string         `json:"progress"`
	Notice        string         `json:"notice"`
	Columns       []string       `json:"columns"`
	Rows          []rowView      `json:"rows"`
	Actions       actionsView    `json:"actions"`
	Theme         themeView      `json:"theme"`
	Stylesheet    string         `json:"stylesheet"`
	StylesheetURL string         `json:"stylesheetURL"`
}

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type fieldView struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
	Error    string `json:"error"`
	Control  string `json:"control"`
}

type rowView struct {
	Index        string   `json:"index"`
	Cells        []string `json:"cells"`
	Editing      bool     `json:"editing"`
	EditAction   string   `json:"editAction"`
	DeleteAction string   `json:"deleteAction"`
}

type actionsView struct {
	SelectType string `json:"selectType"`
	Submit     string `json:"submit"`
	Cancel     string `json:"cancel"`
}

type themeView struct {
	Name    string `json:"name"`
	Variant string `json:"variant"`
	Style   string `json:"style"`
}

func (r *Renderer) buildView(snapshot engine.Snapshot, opts render.RenderOptions) (pageView, error) {
	view := pageView{
		Heading:     "Dynamic Form",
		FormType:    sanitizeText(snapshot.FormType),
		FormTitle:   sanitizeText(snapshot.Schema.Title),
		Editing:     snapshot.Editing(),
		SubmitLabel: "Submit",
		Progress:    strconv.Itoa(snapshot.ProgressPercent()),
		Notice:      sanitizeText(opts.Notice),
		Actions: actionsView{
			SelectType: opts.Action("/type"),
			Submit:     opts.Action("/submit"),
			Cancel:     opts.Action("/cancel"),
		},
		Stylesheet: defaultStylesheet(),
	}
	if view.Editing {
		view.SubmitLabel = "Update"
		view.EditLabel = fmt.Sprintf("Editing record %d", snapshot.EditIndex+1)
	}

	for _, option := range snapshot.FormTypes {
		view.FormTypes = append(view.FormTypes, optionView{
			Value:    option.Key,
			Label:    sanitizeText(option.Title),
			Selected: option.Key == snapshot.FormType,
		})
	}

	data := components.ComponentData{Template: r.templates}
	if cfg := opts.Theme; cfg != nil {
		data.ThemePartials = cfg.Partials
		view.Theme = themeView{
			Name:    sanitizeText(cfg.Theme),
			Variant: sanitizeText(cfg.Variant),
			Style:   render.CSSVarsStyle(cfg),
		}
		if cfg.AssetURL != nil {
			view.StylesheetURL = sanitizeText(cfg.AssetURL(StylesheetAssetKey))
		}
	}

	for _, field := range snapshot.Schema.Fields {
		control, err := r.renderControl(field, snapshot, data)
		if err != nil {
			return pageView{}, err
		}
		message := snapshot.Error(field.Name)
		view.Fields = append(view.Fields, fieldView{
			ID:       controlID(field.Name),
			Label:    sanitizeText(field.DisplayLabel()),
			Required: field.Required,
			Error:    message,
			Control:  control,
		})
		view.Columns = append(view.Columns, sanitizeText(field.DisplayLabel()))
	}

	for i, record := range snapshot.Records {
		row := rowView{
			Index:        strconv.Itoa(i),
			Editing:      i == snapshot.EditIndex,
			EditAction:   opts.Action(fmt.Sprintf("/records/%d/edit", i)),
			DeleteAction: opts.Action(fmt.Sprintf("/records/%d/delete", i)),
		}
		for _, field := range snapshot.Schema.Fields {
			value := record.Value(field.Name)
			if field.Kind == model.FieldKindPassword && value != "" {
				value = maskedValue
			}
			row.Cells = append(row.Cells, value)
		}
		view.Rows = append(view.Rows, row)
	}

	return view, nil
}

func (r *Renderer) renderControl(field model.FieldDescriptor, snapshot engine.Snapshot, data components.ComponentData) (string, error) {
	name := components.ComponentFor(field.Kind)
	descriptor, ok := r.components.Descriptor(name)
	if !ok {
		return "", fmt.Errorf("vanilla renderer: component %q not registered for field %q", name, field.Name)
	}

	value := snapshot.Value(field.Name)
	control := components.Field{
		ID:          controlID(field.Name),
		Name:        field.Name,
		Kind:        string(field.Kind),
		InputType:   field.Kind.InputType(),
		Label:       sanitizeText(field.DisplayLabel()),
		Required:    field.Required,
		Value:       value,
		Placeholder: sanitizeText(field.Placeholder),
		Invalid:     snapshot.Error(field.Name) != "",
	}
	for _, option := range field.Options {
		control.Options = append(control.Options, components.Option{
			Value:    option,
			Label:    sanitizeText(option),
			Selected: option == value,
		})
	}

	var buf bytes.Buffer
	if err := descriptor.Renderer(&buf, control, data); err != nil {
		return "", fmt.Errorf("vanilla renderer: field %q: %w", field.Name, err)
	}
	return buf.String(), nil
}

func controlID(name string) string {
	return "df-" + name
}
