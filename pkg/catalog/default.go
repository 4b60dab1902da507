package catalog

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-dynform/pkg/model"
)

//go:embed defaults/*.yaml
var embeddedDefaults embed.FS

const defaultCatalogFile = "defaults/forms.yaml"

// DefaultFS exposes the embedded catalog files.
func DefaultFS() fs.FS {
	return embeddedDefaults
}

// Default parses the embedded default catalog.
func Default() (*model.Catalog, error) {
	data, err := fs.ReadFile(embeddedDefaults, defaultCatalogFile)
	if err != nil {
		return nil, err
	}
	return Parse(data, defaultCatalogFile)
}

// MustDefault panics if the embedded catalog cannot be parsed.
func MustDefault() *model.Catalog {
	catalog, err := Default()
	if err != nil {
		panic(err)
	}
	return catalog
}
