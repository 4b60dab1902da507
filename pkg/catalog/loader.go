package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dynform/pkg/model"
)

// ErrEmptyDocument is returned when a catalog file has no content.
var ErrEmptyDocument = errors.New("catalog: document is empty")

type documentFile struct {
	FormTypes []model.FormSchema `json:"formTypes" yaml:"formTypes"`
}

// Parse decodes a JSON or YAML catalog document and validates it.
func Parse(data []byte, source string) (*model.Catalog, error) {
	schemas, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	catalog, err := model.NewCatalog(schemas...)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", source, err)
	}
	return catalog, nil
}

// LoadFile reads a single catalog document from disk.
func LoadFile(path string) (*model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS walks fsys and merges every JSON/YAML catalog document it finds in
// walk order. Duplicate form-type keys across files are rejected.
func LoadFS(fsys fs.FS) (*model.Catalog, error) {
	if fsys == nil {
		return nil, errors.New("catalog: filesystem is nil")
	}

	var schemas []model.FormSchema
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}
		parsed, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		schemas = append(schemas, parsed...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	catalog, err := model.NewCatalog(schemas...)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return catalog, nil
}

func parseDocument(data []byte, source string) ([]model.FormSchema, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc.FormTypes, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return doc.FormTypes, nil
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
