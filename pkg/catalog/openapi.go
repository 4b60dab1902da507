package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-dynform/pkg/model"
)

// orderExtensionKey lets OpenAPI properties declare their position in the
// generated form. Properties without it sort after ordered ones, by name.
const orderExtensionKey = "x-order"

// OpenAPIOption configures FromOpenAPI.
type OpenAPIOption func(*openAPIConfig)

type openAPIConfig struct {
	operations        map[string]struct{}
	allowExternalRefs bool
}

// WithOperations restricts the import to the listed operation ids.
func WithOperations(ids ...string) OpenAPIOption {
	return func(cfg *openAPIConfig) {
		for _, id := range ids {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				if cfg.operations == nil {
					cfg.operations = make(map[string]struct{})
				}
				cfg.operations[trimmed] = struct{}{}
			}
		}
	}
}

// WithExternalRefs allows the loader to follow external $ref targets.
func WithExternalRefs(allow bool) OpenAPIOption {
	return func(cfg *openAPIConfig) {
		cfg.allowExternalRefs = allow
	}
}

// FromOpenAPI derives a catalog from the request bodies of an OpenAPI 3
// document. Each operation with an object request body becomes a form type
// keyed by its operationId (or "method:path" when the id is missing).
func FromOpenAPI(ctx context.Context, data []byte, options ...OpenAPIOption) (*model.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: openapi payload", ErrEmptyDocument)
	}

	cfg := openAPIConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: cfg.allowExternalRefs,
	}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: load openapi document: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("catalog: openapi document does not contain any paths")
	}

	var schemas []model.FormSchema
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			key := operation.OperationID
			if key == "" {
				key = strings.ToLower(method) + ":" + path
			}
			if cfg.operations != nil {
				if _, ok := cfg.operations[key]; !ok {
					continue
				}
			}
			body := requestBodySchema(operation.RequestBody)
			if body == nil || !body.Type.Is(openapi3.TypeObject) {
				continue
			}
			title := strings.TrimSpace(operation.Summary)
			schemas = append(schemas, model.FormSchema{
				Key:    key,
				Title:  title,
				Fields: fieldsFromObject(body),
			})
		}
	}

	if len(schemas) == 0 {
		return nil, errors.New("catalog: no operations with object request bodies found")
	}
	sort.Slice(schemas, func(i, j int) bool { return schemas[i].Key < schemas[j].Key })

	catalog, err := model.NewCatalog(schemas...)
	if err != nil {
		return nil, fmt.Errorf("catalog: openapi: %w", err)
	}
	return catalog, nil
}

func requestBodySchema(ref *openapi3.RequestBodyRef) *openapi3.Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	content := ref.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

type orderedProperty struct {
	name  string
	order float64
	set   bool
	value *openapi3.Schema
}

func fieldsFromObject(schema *openapi3.Schema) []model.FieldDescriptor {
	properties := make([]orderedProperty, 0, len(schema.Properties))
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		order, ok := orderFromExtensions(ref.Value.Extensions)
		properties = append(properties, orderedProperty{name: name, order: order, set: ok, value: ref.Value})
	}
	sort.SliceStable(properties, func(i, j int) bool {
		a, b := properties[i], properties[j]
		if a.set != b.set {
			return a.set
		}
		if a.set && a.order != b.order {
			return a.order < b.order
		}
		return a.name < b.name
	})

	fields := make([]model.FieldDescriptor, 0, len(properties))
	for _, property := range properties {
		kind, options, ok := fieldKind(property.value)
		if !ok {
			continue
		}
		fields = append(fields, model.FieldDescriptor{
			Name:        property.name,
			Kind:        kind,
			Label:       strings.TrimSpace(property.value.Title),
			Required:    slices.Contains(schema.Required, property.name),
			Options:     options,
			Description: property.value.Description,
		})
	}
	return fields
}

func fieldKind(schema *openapi3.Schema) (model.FieldKind, []string, bool) {
	if len(schema.Enum) > 0 {
		options := make([]string, 0, len(schema.Enum))
		for _, value := range schema.Enum {
			if value == nil {
				continue
			}
			options = append(options, fmt.Sprint(value))
		}
		if len(options) > 0 {
			return model.FieldKindDropdown, options, true
		}
	}

	switch {
	case schema.Type.Is(openapi3.TypeInteger), schema.Type.Is(openapi3.TypeNumber):
		return model.FieldKindNumber, nil, true
	case schema.Type.Is(openapi3.TypeBoolean):
		return model.FieldKindDropdown, []string{"true", "false"}, true
	case schema.Type.Is(openapi3.TypeString):
		switch schema.Format {
		case "date", "date-time":
			return model.FieldKindDate, nil, true
		case "password":
			return model.FieldKindPassword, nil, true
		default:
			return model.FieldKindText, nil, true
		}
	default:
		return "", nil, false
	}
}

func orderFromExtensions(ext map[string]any) (float64, bool) {
	raw, ok := ext[orderExtensionKey]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
