// Package schemafile loads record layout declarations from YAML
// documents and compiles them into schema layouts.
package schemafile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/binrec/pkg/schema"
)

// document is the YAML form of a schema file
type document struct {
	Types []typeDoc `yaml:"types"`
}

// typeDoc declares one record type
type typeDoc struct {
	Name   string     `yaml:"name"`
	Doc    string     `yaml:"doc"`
	Fields []fieldDoc `yaml:"fields"`
}

// fieldDoc declares one field of a record type
type fieldDoc struct {
	Name    string      `yaml:"name"`
	Type    string      `yaml:"type"`
	Length  int         `yaml:"length"`
	Default interface{} `yaml:"default"`
	Doc     string      `yaml:"doc"`
}

var fieldKinds = map[string]schema.Kind{
	"int8":    schema.KindInt8,
	"uint8":   schema.KindUint8,
	"int16":   schema.KindInt16,
	"uint16":  schema.KindUint16,
	"int32":   schema.KindInt32,
	"uint32":  schema.KindUint32,
	"int64":   schema.KindInt64,
	"uint64":  schema.KindUint64,
	"string":  schema.KindString,
	"pad":     schema.KindPad,
	"virtual": schema.KindVirtual,
}

// Set holds the compiled layouts of one schema document.
type Set struct {
	names   []string
	layouts map[string]*schema.Layout
	docs    map[string]string
}

// Load reads and compiles the schema file at path.
func Load(path string) (*Set, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("schema file does not exist: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema file %s: %w", path, err)
	}
	return s, nil
}

// Parse compiles a YAML schema document. Every declared type must
// compile; a single malformed field fails the whole document.
func Parse(data []byte) (*Set, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema document: %w", err)
	}
	if len(doc.Types) == 0 {
		return nil, fmt.Errorf("schema document declares no types")
	}

	s := &Set{
		layouts: make(map[string]*schema.Layout, len(doc.Types)),
		docs:    make(map[string]string, len(doc.Types)),
	}
	for _, t := range doc.Types {
		if t.Name == "" {
			return nil, fmt.Errorf("schema document declares a type without a name")
		}
		if _, dup := s.layouts[t.Name]; dup {
			return nil, fmt.Errorf("duplicate type %q", t.Name)
		}

		fields := make([]schema.Field, 0, len(t.Fields))
		for _, fd := range t.Fields {
			f, err := parseField(fd)
			if err != nil {
				return nil, fmt.Errorf("type %s: %w", t.Name, err)
			}
			fields = append(fields, f)
		}

		layout, err := schema.NewLayout(t.Name, fields)
		if err != nil {
			return nil, err
		}
		s.names = append(s.names, t.Name)
		s.layouts[t.Name] = layout
		s.docs[t.Name] = t.Doc
	}
	return s, nil
}

func parseField(fd fieldDoc) (schema.Field, error) {
	kind, ok := fieldKinds[fd.Type]
	if !ok {
		return schema.Field{}, fmt.Errorf("unknown field type %q", fd.Type)
	}
	return schema.Field{
		Name:    fd.Name,
		Kind:    kind,
		Len:     fd.Length,
		Default: fd.Default,
		Doc:     fd.Doc,
	}, nil
}

// Layout returns the compiled layout of the named type.
func (s *Set) Layout(name string) (*schema.Layout, error) {
	l, ok := s.layouts[name]
	if !ok {
		return nil, fmt.Errorf("schema set has no type %q", name)
	}
	return l, nil
}

// Names returns the type names in declaration order.
func (s *Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Doc returns the documentation text of the named type, if any.
func (s *Set) Doc(name string) string {
	return s.docs[name]
}
