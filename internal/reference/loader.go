package reference

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"crudgen/internal/dsl"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Default возвращает встроенный каталог типов.
func Default() *TypeCatalog {
	c, err := parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("reference: embedded catalog is broken: %v", err))
	}
	return c
}

// LoadTypeCatalog читает каталог из YAML-файла поверх встроенного.
// Пустой путь — только встроенный каталог.
func LoadTypeCatalog(path string) (*TypeCatalog, error) {
	base := Default()
	if strings.TrimSpace(path) == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	override, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	// типы, которых нет в файле, берём из встроенного каталога
	for _, e := range base.Types {
		if _, ok := override.Lookup(e.Type); !ok {
			override.Types = append(override.Types, e)
		}
	}
	if override.Name == "" {
		override.Name = base.Name
	}
	return override, nil
}

func parse(data []byte) (*TypeCatalog, error) {
	var c TypeCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	seen := map[dsl.FieldType]struct{}{}
	for _, e := range c.Types {
		if _, ok := dsl.LookupFieldType(string(e.Type)); !ok {
			return nil, fmt.Errorf("unknown field type %q", e.Type)
		}
		if _, dup := seen[e.Type]; dup {
			return nil, fmt.Errorf("duplicate field type %q", e.Type)
		}
		if strings.TrimSpace(e.SQLType) == "" {
			return nil, fmt.Errorf("field type %q has no sql_type", e.Type)
		}
		seen[e.Type] = struct{}{}
	}
	return &c, nil
}

// Lookup ищет запись для типа поля.
func (c *TypeCatalog) Lookup(t dsl.FieldType) (TypeEntry, bool) {
	for _, e := range c.Types {
		if e.Type == t {
			return e, true
		}
	}
	return TypeEntry{}, false
}

// SQLType — тип колонки для поля с учётом длины.
func (c *TypeCatalog) SQLType(f dsl.Field) (string, error) {
	e, ok := c.Lookup(f.Type)
	if !ok {
		return "", fmt.Errorf("no catalog entry for type %s", f.Type)
	}
	if f.Length != nil && *f.Length > 0 && e.SQLTypeWithLength != "" {
		return fmt.Sprintf(e.SQLTypeWithLength, *f.Length), nil
	}
	return e.SQLType, nil
}

// Imports — отсортированные Java-импорты, нужные полям сущности.
func (c *TypeCatalog) Imports(fields []dsl.Field) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, f := range fields {
		e, ok := c.Lookup(f.Type)
		if !ok || e.JavaImport == "" {
			continue
		}
		if _, dup := seen[e.JavaImport]; dup {
			continue
		}
		seen[e.JavaImport] = struct{}{}
		out = append(out, e.JavaImport)
	}
	sort.Strings(out)
	return out
}
