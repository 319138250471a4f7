package pg

import (
	"fmt"
	"sort"
	"strings"

	"crudgen/internal/dsl"
	"crudgen/internal/reference"
)

const (
	PhaseTable       = "000_table"
	PhaseJoinTables  = "100_join_tables"
	PhaseForeignKeys = "200_foreign_keys"
)

var reserved = map[string]struct{}{
	"user": {}, "select": {}, "table": {}, "insert": {}, "update": {}, "delete": {},
	"where": {}, "join": {}, "group": {}, "order": {}, "limit": {}, "offset": {},
	"primary": {}, "foreign": {}, "key": {}, "constraint": {}, "default": {},
	"from": {}, "into": {}, "values": {}, "unique": {}, "index": {}, "create": {},
	"drop": {}, "alter": {}, "schema": {}, "grant": {}, "revoke": {},
}

// IsReserved сообщает, совпадает ли имя с ключевым словом SQL.
func IsReserved(s string) bool { _, ok := reserved[strings.ToLower(s)]; return ok }

// имена без кавычек Postgres приводит к нижнему регистру; Hibernate шлёт их без кавычек
func sqlIdent(s string) string { return `"` + strings.ToLower(s) + `"` }

// JoinTable — имя связующей таблицы для владеющей стороны ManyToMany.
func JoinTable(e *dsl.Entity, r dsl.Relationship) string {
	return e.Table + "_" + r.Name
}

// JoinColumn — колонка внешнего ключа, указывающая на сущность name.
func JoinColumn(name string) string {
	return strings.ToLower(name) + "_id"
}

// JoinTableColumns — колонки связующей таблицы: владелец и цель.
// Для связи сущности с самой собой колонка цели называется по связи,
// иначе обе колонки совпали бы.
func JoinTableColumns(e *dsl.Entity, r dsl.Relationship) (owner, inverse string) {
	owner, inverse = JoinColumn(e.Name), JoinColumn(r.Target)
	if inverse == owner {
		inverse = JoinColumn(r.Name)
	}
	return owner, inverse
}

// OwnsColumn: связь хранит внешний ключ в таблице самой сущности.
func OwnsColumn(r dsl.Relationship) bool {
	switch r.Type {
	case dsl.ManyToOne:
		return true
	case dsl.OneToOne:
		return r.MappedBy == nil
	}
	return false
}

// OwnsJoinTable: ManyToMany без mapped_by владеет связующей таблицей.
func OwnsJoinTable(r dsl.Relationship) bool {
	return r.Type == dsl.ManyToMany && r.MappedBy == nil
}

// GenerateDDL возвращает карту фаза -> SQL для одной сущности.
// Порядок применения задаётся сортировкой ключей.
func GenerateDDL(e *dsl.Entity, catalog *reference.TypeCatalog) (map[string]string, error) {
	out := make(map[string]string, 3)
	tbl := sqlIdent(e.Table)

	cols := []string{`"id" bigserial primary key`}
	seen := map[string]struct{}{"id": {}}

	for _, f := range e.Fields {
		nameLower := strings.ToLower(f.Name)
		if _, exists := seen[nameLower]; exists {
			cols = append(cols, fmt.Sprintf("-- duplicate column %s skipped", sqlIdent(f.Name)))
			continue
		}
		seen[nameLower] = struct{}{}

		typ, err := catalog.SQLType(f)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", e.Name, f.Name, err)
		}
		col := fmt.Sprintf("%s %s", sqlIdent(f.Name), typ)
		if f.NotNull {
			col += " not null"
		}
		if entry, _ := catalog.Lookup(f.Type); f.Positive && entry.Numeric {
			col += fmt.Sprintf(" check (%s > 0)", sqlIdent(f.Name))
		}
		cols = append(cols, col)
	}

	type fkStmt struct {
		tbl, name, col, refTbl string
		onDelete               string
	}
	var fks []fkStmt
	var joins strings.Builder

	for _, r := range e.Relationships {
		refTbl := dsl.DefaultTable(r.Target)
		switch {
		case OwnsColumn(r):
			col := JoinColumn(r.Name)
			if _, exists := seen[col]; exists {
				cols = append(cols, fmt.Sprintf("-- duplicate column %s skipped", sqlIdent(col)))
				continue
			}
			seen[col] = struct{}{}
			null := "null"
			if r.NotNull {
				null = "not null"
			}
			cols = append(cols, fmt.Sprintf("%s bigint %s", sqlIdent(col), null))
			onDelete := "set null"
			if r.NotNull {
				onDelete = "restrict"
			}
			fks = append(fks, fkStmt{
				tbl:      e.Table,
				name:     strings.ToLower(e.Table + "_" + r.Name + "_fk"),
				col:      col,
				refTbl:   refTbl,
				onDelete: onDelete,
			})

		case OwnsJoinTable(r):
			jt := JoinTable(e, r)
			own, inv := JoinTableColumns(e, r)
			fmt.Fprintf(&joins, "create table if not exists %s (\n  %s bigint not null,\n  %s bigint not null,\n  primary key (%s, %s)\n);\n",
				sqlIdent(jt), sqlIdent(own), sqlIdent(inv), sqlIdent(own), sqlIdent(inv))
			fks = append(fks,
				fkStmt{tbl: jt, name: strings.ToLower(jt + "_owner_fk"), col: own, refTbl: e.Table, onDelete: "cascade"},
				fkStmt{tbl: jt, name: strings.ToLower(jt + "_target_fk"), col: inv, refTbl: refTbl, onDelete: "cascade"},
			)
		}
	}

	out[PhaseTable] = fmt.Sprintf("create table if not exists %s (\n  %s\n);\n", tbl, joinColumns(cols))
	if joins.Len() > 0 {
		out[PhaseJoinTables] = joins.String()
	}

	if len(fks) > 0 {
		var sb strings.Builder
		for _, fk := range fks {
			fmt.Fprintf(&sb,
				"alter table %s add constraint %s foreign key (%s) references %s(id) on delete %s;\n",
				sqlIdent(fk.tbl), sqlIdent(fk.name), sqlIdent(fk.col), sqlIdent(fk.refTbl), fk.onDelete)
		}
		out[PhaseForeignKeys] = sb.String()
	}
	return out, nil
}

// joinColumns ставит запятые только между колонками, комментарии остаются отдельными строками.
func joinColumns(cols []string) string {
	var defs []int
	for i, c := range cols {
		if !strings.HasPrefix(c, "--") {
			defs = append(defs, i)
		}
	}
	last := -1
	if len(defs) > 0 {
		last = defs[len(defs)-1]
	}
	var sb strings.Builder
	for i, c := range cols {
		if i > 0 {
			sb.WriteString("\n  ")
		}
		sb.WriteString(c)
		if !strings.HasPrefix(c, "--") && i != last {
			sb.WriteString(",")
		}
	}
	return sb.String()
}

// Script склеивает фазы в один скрипт в порядке применения.
func Script(ddl map[string]string) string {
	keys := make([]string, 0, len(ddl))
	for k := range ddl {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sqlText := strings.TrimSpace(ddl[k])
		if sqlText == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "-- %s\n%s\n", k, sqlText)
	}
	return sb.String()
}
