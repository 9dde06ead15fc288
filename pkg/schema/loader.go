package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store holds loaded schemas keyed by their type.
type Store struct {
	schemas map[string]Schema
}

// Parse decodes a single schema document. JSON is attempted first, then YAML.
// Presets are expanded and field names checked for duplicates.
func Parse(data []byte, source string) (Schema, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Schema{}, fmt.Errorf("schema: file %s is empty", source)
	}

	var doc Schema
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = Schema{}
		if yerr := yaml.Unmarshal(data, &doc); yerr != nil {
			return Schema{}, fmt.Errorf("schema: parse %s: invalid JSON or YAML", source)
		}
	}

	if strings.TrimSpace(doc.Type) == "" {
		return Schema{}, fmt.Errorf("schema: file %s does not define dataset_type", source)
	}

	fields, err := normaliseFields(doc.DatasetFields, source)
	if err != nil {
		return Schema{}, err
	}
	doc.DatasetFields = fields

	fields, err = normaliseFields(doc.ResourceFields, source)
	if err != nil {
		return Schema{}, err
	}
	doc.ResourceFields = fields

	return doc, nil
}

// LoadFile parses the schema stored at path.
func LoadFile(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS walks fsys and parses every JSON/YAML schema file it finds. When
// fsys is nil the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{schemas: make(map[string]Schema)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}

		doc, err := Parse(data, path)
		if err != nil {
			return err
		}
		if _, exists := store.schemas[doc.Type]; exists {
			return fmt.Errorf("schema: duplicate dataset_type %q (file %s)", doc.Type, path)
		}
		store.schemas[doc.Type] = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Get returns the schema registered for typ.
func (s *Store) Get(typ string) (Schema, bool) {
	if s == nil {
		return Schema{}, false
	}
	doc, ok := s.schemas[typ]
	return doc, ok
}

// Types lists the loaded schema types, sorted.
func (s *Store) Types() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.schemas))
	for typ := range s.schemas {
		out = append(out, typ)
	}
	sort.Strings(out)
	return out
}

func normaliseFields(fields []Field, source string) ([]Field, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	seen := make(map[string]struct{}, len(fields))
	out := make([]Field, 0, len(fields))
	for idx, field := range fields {
		field.FieldName = strings.TrimSpace(field.FieldName)
		if field.FieldName == "" {
			return nil, fmt.Errorf("schema: file %s field #%d has no field_name", source, idx)
		}
		if _, dup := seen[field.FieldName]; dup {
			return nil, fmt.Errorf("schema: file %s defines field %q twice", source, field.FieldName)
		}
		seen[field.FieldName] = struct{}{}

		expanded, ok := ApplyPreset(field)
		if !ok {
			return nil, fmt.Errorf("schema: file %s field %q uses unknown preset %q", source, field.FieldName, field.Preset)
		}
		out = append(out, expanded)
	}
	return out, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
