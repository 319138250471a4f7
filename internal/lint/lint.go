// Package lint проверяет собранную сущность на противоречия, которые не
// ломают генерацию, но почти наверняка являются ошибкой оператора.
package lint

import (
	"fmt"
	"strings"

	"crudgen/internal/dsl"
	"crudgen/internal/pg"
)

type Issue struct {
	Subject string `json:"subject"` // поле, связь или таблица
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	CodeDuplicateName     = "duplicate_name"
	CodeReservedName      = "reserved_name"
	CodeMissingMappedBy   = "missing_mapped_by"
	CodeInverseFieldKind  = "inverse_field_kind"
	CodeNotNullCollection = "not_null_collection"
	CodeOwnerMappedBy     = "owner_with_mapped_by"
)

// Check возвращает предупреждения в порядке полей и связей.
func Check(e *dsl.Entity) []Issue {
	var issues []Issue

	if pg.IsReserved(e.Table) {
		issues = append(issues, Issue{
			Subject: e.Table,
			Code:    CodeReservedName,
			Message: fmt.Sprintf("table name %q is an SQL keyword and must be quoted everywhere", e.Table),
		})
	}

	seen := map[string]string{}
	dup := func(name, kind string) {
		key := strings.ToLower(name)
		if prev, ok := seen[key]; ok {
			issues = append(issues, Issue{
				Subject: name,
				Code:    CodeDuplicateName,
				Message: fmt.Sprintf("%s %q duplicates %s with the same name", kind, name, prev),
			})
			return
		}
		seen[key] = kind
	}

	for _, f := range e.Fields {
		dup(f.Name, "field")
		if pg.IsReserved(f.Name) {
			issues = append(issues, Issue{
				Subject: f.Name,
				Code:    CodeReservedName,
				Message: fmt.Sprintf("column name %q is an SQL keyword", f.Name),
			})
		}
	}

	for _, r := range e.Relationships {
		dup(r.Name, "relationship")

		if r.Type == dsl.OneToMany && r.MappedBy == nil {
			issues = append(issues, Issue{
				Subject: r.Name,
				Code:    CodeMissingMappedBy,
				Message: fmt.Sprintf("OneToMany %q has no mapped_by; JPA will create a join table", r.Name),
			})
		}
		if r.InverseField != nil && r.Type != dsl.ManyToMany {
			issues = append(issues, Issue{
				Subject: r.Name,
				Code:    CodeInverseFieldKind,
				Message: fmt.Sprintf("inverse_field is only used by ManyToMany, %q is %s", r.Name, r.Type),
			})
		}
		if r.NotNull && r.Type.IsCollection() {
			issues = append(issues, Issue{
				Subject: r.Name,
				Code:    CodeNotNullCollection,
				Message: fmt.Sprintf("not_null has no effect on collection relationship %q", r.Name),
			})
		}
		if r.Owner && r.MappedBy != nil {
			issues = append(issues, Issue{
				Subject: r.Name,
				Code:    CodeOwnerMappedBy,
				Message: fmt.Sprintf("%q is marked owner but has mapped_by=%s, which makes it the inverse side", r.Name, *r.MappedBy),
			})
		}
	}
	return issues
}
