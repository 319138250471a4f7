package reference

import "crudgen/internal/dsl"

// TypeCatalog описывает, как каждый тип поля выглядит в Java и в SQL
type TypeCatalog struct {
	Name  string      `yaml:"name"`
	Types []TypeEntry `yaml:"types"`
}

type TypeEntry struct {
	Type       dsl.FieldType `yaml:"type" json:"type"`
	JavaImport string        `yaml:"java_import,omitempty" json:"java_import,omitempty"`
	SQLType    string        `yaml:"sql_type" json:"sql_type"`
	// printf-шаблон для типа с длиной, например "varchar(%d)"
	SQLTypeWithLength string `yaml:"sql_type_with_length,omitempty" json:"sql_type_with_length,omitempty"`
	Numeric           bool   `yaml:"numeric,omitempty" json:"numeric,omitempty"`
	Text              bool   `yaml:"text,omitempty" json:"text,omitempty"`
	Decimal           bool   `yaml:"decimal,omitempty" json:"decimal,omitempty"`
}
