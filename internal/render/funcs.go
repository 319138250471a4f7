package render

import (
	"fmt"
	"strings"
	"text/template"
	"unicode/utf16"

	"github.com/go-openapi/inflect"

	"crudgen/internal/dsl"
	"crudgen/internal/pg"
	"crudgen/internal/reference"
)

// Param — один компонент Java-record.
type Param struct {
	Annotations []string
	Type        string
	Name        string
}

func (e *Engine) funcs() template.FuncMap {
	return template.FuncMap{
		"upper":      strings.ToUpper,
		"lower":      strings.ToLower,
		"camel":      inflect.Camelize,
		"lowerFirst": inflect.CamelizeDownFirst,
		"capitalize": inflect.Capitalize,
		"plural":     inflect.Pluralize,
		"resource":   resourcePath,
		"imports":    e.catalog.Imports,
		"entry":      e.entry,
		"javaType":   javaType,
		"cascade":    cascade,
		"joinColumn": func(name string) string { return strings.ToUpper(pg.JoinColumn(name)) },
		"joinTable": func(ent *dsl.Entity, r dsl.Relationship) string {
			return strings.ToUpper(pg.JoinTable(ent, r))
		},
		"ownerJoinColumn": func(ent *dsl.Entity, r dsl.Relationship) string {
			own, _ := pg.JoinTableColumns(ent, r)
			return strings.ToUpper(own)
		},
		"inverseJoinColumn": func(ent *dsl.Entity, r dsl.Relationship) string {
			_, inv := pg.JoinTableColumns(ent, r)
			return strings.ToUpper(inv)
		},
		"ownsColumn":     pg.OwnsColumn,
		"ownsJoinTable":  pg.OwnsJoinTable,
		"targets":        targets,
		"idParam":        idParam,
		"requestParams":  e.requestParams,
		"responseParams": responseParams,
		"sample":         e.sample,
		"ddl": func(ent *dsl.Entity) (string, error) {
			ddl, err := pg.GenerateDDL(ent, e.catalog)
			if err != nil {
				return "", err
			}
			return pg.Script(ddl), nil
		},
	}
}

func (e *Engine) entry(t dsl.FieldType) (reference.TypeEntry, error) {
	te, ok := e.catalog.Lookup(t)
	if !ok {
		return reference.TypeEntry{}, fmt.Errorf("type %s is not in catalog %s", t, e.catalog.Name)
	}
	return te, nil
}

// resourcePath: ItemPedido -> item-pedidos
func resourcePath(entity string) string {
	return inflect.Dasherize(inflect.Pluralize(inflect.Underscore(entity)))
}

func javaType(r dsl.Relationship) string {
	switch r.Type {
	case dsl.OneToMany:
		return "List<" + r.Target + ">"
	case dsl.ManyToMany:
		return "Set<" + r.Target + ">"
	default:
		return r.Target
	}
}

// cascade возвращает хвост аннотации со списком каскадов или пустую строку.
// На ManyToOne и ManyToMany удаление не каскадируется.
func cascade(r dsl.Relationship) string {
	if !r.Cascade {
		return ""
	}
	switch r.Type {
	case dsl.ManyToOne, dsl.ManyToMany:
		return ", cascade = {CascadeType.PERSIST, CascadeType.MERGE}"
	default:
		return ", cascade = CascadeType.ALL"
	}
}

// targets — целевые сущности связей без повторов, в порядке объявления.
func targets(rels []dsl.Relationship) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range rels {
		if seen[r.Target] {
			continue
		}
		seen[r.Target] = true
		out = append(out, r.Target)
	}
	return out
}

// idParam — имя компонента запроса, которым передаётся связь: clienteId, itensIds.
func idParam(r dsl.Relationship) string {
	if r.Type.IsCollection() {
		return r.Name + "Ids"
	}
	return r.Name + "Id"
}

func (e *Engine) requestParams(ent *dsl.Entity) ([]Param, error) {
	out := make([]Param, 0, len(ent.Fields)+len(ent.Relationships))
	for _, f := range ent.Fields {
		te, err := e.entry(f.Type)
		if err != nil {
			return nil, err
		}
		var ann []string
		switch {
		case f.NotNull && te.Text:
			ann = append(ann, "@NotBlank")
		case f.NotNull:
			ann = append(ann, "@NotNull")
		}
		if f.HasLength() && te.Text {
			ann = append(ann, fmt.Sprintf("@Size(max=%d)", *f.Length))
		}
		if f.Positive && te.Numeric {
			if te.Decimal {
				ann = append(ann, `@DecimalMin(value = "0.0", inclusive = false)`)
			} else {
				ann = append(ann, "@Positive")
			}
		}
		if te.Decimal {
			ann = append(ann, "@Digits(integer = 17, fraction = 2)")
		}
		out = append(out, Param{Annotations: ann, Type: string(f.Type), Name: f.Name})
	}
	for _, r := range ent.Relationships {
		p := Param{Name: idParam(r), Type: "Long"}
		if r.Type.IsCollection() {
			p.Type = "List<Long>"
		} else if r.NotNull {
			p.Annotations = []string{"@NotNull"}
		}
		out = append(out, p)
	}
	return out, nil
}

func responseParams(ent *dsl.Entity) []Param {
	out := []Param{{Type: "Long", Name: "id"}}
	for _, f := range ent.Fields {
		out = append(out, Param{Type: string(f.Type), Name: f.Name})
	}
	for _, r := range ent.Relationships {
		t := r.Target + "Summary"
		if r.Type.IsCollection() {
			t = "List<" + t + ">"
		}
		out = append(out, Param{Type: t, Name: r.Name})
	}
	return out
}

// sample — Java-литерал для тестовых данных; для длины учитывается length.
func (e *Engine) sample(f dsl.Field) (string, error) {
	if _, err := e.entry(f.Type); err != nil {
		return "", err
	}
	switch f.Type {
	case dsl.TypeString:
		v := []rune(f.Name)
		if f.HasLength() && len(v) > *f.Length {
			v = v[:*f.Length]
		}
		return javaString(string(v)), nil
	case dsl.TypeInteger:
		return "1", nil
	case dsl.TypeLong:
		return "1L", nil
	case dsl.TypeDouble:
		return "1.0", nil
	case dsl.TypeFloat:
		return "1.0f", nil
	case dsl.TypeBoolean:
		return "true", nil
	case dsl.TypeLocalDateTime:
		return "LocalDateTime.of(2024, 1, 1, 0, 0)", nil
	case dsl.TypeLocalDate:
		return "LocalDate.of(2024, 1, 1)", nil
	case dsl.TypeUUID:
		return `UUID.fromString("00000000-0000-0000-0000-000000000001")`, nil
	case dsl.TypeBigDecimal:
		return `new BigDecimal("1.00")`, nil
	}
	return "", fmt.Errorf("no sample value for %s", f.Type)
}

// javaString — строковый литерал Java; всё вне печатного ASCII уходит в \uXXXX.
func javaString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r >= 0x20 && r < 0x7f:
			sb.WriteRune(r)
		case r < 0x20:
			// \u000a внутри литерала Java ломает разбор, управляющие символы — только восьмерично
			fmt.Fprintf(&sb, "\\%03o", r)
		default:
			for _, u := range utf16.Encode([]rune{r}) {
				fmt.Fprintf(&sb, "\\u%04x", u)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
