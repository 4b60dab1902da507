// Package model defines the typed form catalog consumed by the engine and
// the renderers. A Catalog maps a form-type key (for example "userInfo") to an
// ordered FormSchema whose FieldDescriptors carry the field name, kind, label,
// required flag and, for dropdowns, the ordered option list. Catalogs are
// built once through NewCatalog, validated up front and never mutated after
// construction; accessors hand out copies so callers cannot alter the shared
// definitions. Loaders for embedded, file-based and OpenAPI-derived catalogs
// live in pkg/catalog.
package model
