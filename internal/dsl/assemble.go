package dsl

import "strings"

// DefaultTable — имя таблицы по умолчанию для сущности.
func DefaultTable(entity string) string {
	return strings.ToLower(strings.TrimSpace(entity))
}

// Assemble собирает модель сущности из имени и двух накопленных списков.
// Списки копируются, так что дальнейшие изменения у вызывающего модель не трогают.
func Assemble(name, table string, fields []Field, rels []Relationship) (*Entity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEntityNameRequired
	}
	if len(fields) == 0 && len(rels) == 0 {
		return nil, ErrNothingToGenerate
	}
	table = strings.TrimSpace(table)
	if table == "" {
		table = DefaultTable(name)
	}
	return &Entity{
		Name:          name,
		Table:         table,
		Fields:        append([]Field{}, fields...),
		Relationships: append([]Relationship{}, rels...),
	}, nil
}
