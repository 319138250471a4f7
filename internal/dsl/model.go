package dsl

import "strings"

// FieldType перечисляет скалярные типы, допустимые в записи поля.
type FieldType string

const (
	TypeString        FieldType = "String"
	TypeInteger       FieldType = "Integer"
	TypeLong          FieldType = "Long"
	TypeDouble        FieldType = "Double"
	TypeFloat         FieldType = "Float"
	TypeBoolean       FieldType = "Boolean"
	TypeLocalDateTime FieldType = "LocalDateTime"
	TypeLocalDate     FieldType = "LocalDate"
	TypeUUID          FieldType = "UUID"
	TypeBigDecimal    FieldType = "BigDecimal"
)

// FieldTypes — допустимые типы в порядке, в котором их показываем оператору.
var FieldTypes = []FieldType{
	TypeString, TypeInteger, TypeLong, TypeDouble, TypeFloat,
	TypeBoolean, TypeLocalDateTime, TypeLocalDate, TypeUUID, TypeBigDecimal,
}

// LookupFieldType сопоставляет токен с типом. Регистр значим.
func LookupFieldType(s string) (FieldType, bool) {
	for _, t := range FieldTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// RelationType перечисляет виды связей между сущностями.
type RelationType string

const (
	OneToMany  RelationType = "OneToMany"
	ManyToOne  RelationType = "ManyToOne"
	OneToOne   RelationType = "OneToOne"
	ManyToMany RelationType = "ManyToMany"
)

var RelationTypes = []RelationType{OneToMany, ManyToOne, OneToOne, ManyToMany}

func LookupRelationType(s string) (RelationType, bool) {
	for _, t := range RelationTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// IsCollection: связь хранит коллекцию целевых сущностей.
func (t RelationType) IsCollection() bool {
	return t == OneToMany || t == ManyToMany
}

// Field описывает скалярный атрибут сущности
type Field struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Length   *int      `json:"length"`
	NotNull  bool      `json:"not_null"`
	Positive bool      `json:"positive"`
}

// HasLength сообщает, задана ли длина, пригодная для колонки.
// Нулевая длина разбирается, но в артефактах не используется.
func (f Field) HasLength() bool { return f.Length != nil && *f.Length > 0 }

// Column — имя колонки в генерируемых артефактах.
func (f Field) Column() string { return strings.ToUpper(f.Name) }

// Relationship описывает связь с другой сущностью
type Relationship struct {
	Name         string       `json:"name"`
	Type         RelationType `json:"type"`
	Target       string       `json:"target"`
	MappedBy     *string      `json:"mapped_by"`
	Cascade      bool         `json:"cascade"`
	NotNull      bool         `json:"not_null"`
	Owner        bool         `json:"owner"`
	InverseField *string      `json:"inverse_field"`
}

// Entity — собранная модель одной сущности; после Assemble не меняется.
type Entity struct {
	Name          string         `json:"entity_name"`
	Table         string         `json:"table_name"`
	Fields        []Field        `json:"fields"`
	Relationships []Relationship `json:"relationships"`
}

func typeNames[T ~string](ts []T) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
