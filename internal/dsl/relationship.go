package dsl

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	RelationshipGrammar = "name:Type:target[:mapped_by][:options]"
	relationshipExample = "pedidos:OneToMany:Pedido"
)

// OptionValue — значение опции: строка из key=value либо голый флаг.
type OptionValue struct {
	Value string
	Flag  bool
}

// Options — все опции связи как есть. Набор ключей не ограничен:
// незнакомые ключи сохраняются и просто не читаются моделью.
type Options map[string]OptionValue

// ParseOptions разбирает "cascade,inverse_field=posts".
func ParseOptions(raw string) Options {
	opts := Options{}
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		// флаг без значения → true
		if !strings.Contains(tok, "=") {
			opts[tok] = OptionValue{Flag: true}
			continue
		}
		kv := strings.SplitN(tok, "=", 2)
		k := strings.TrimSpace(kv[0])
		if k == "" {
			continue
		}
		opts[k] = OptionValue{Value: strings.TrimSpace(kv[1])}
	}
	return opts
}

// Bool читает булеву опцию. key=value читается через ParseBool, прочие
// непустые значения считаются истиной.
func (o Options) Bool(key string) bool {
	v, ok := o[key]
	if !ok {
		return false
	}
	if v.Flag {
		return true
	}
	if b, err := strconv.ParseBool(v.Value); err == nil {
		return b
	}
	return v.Value != ""
}

// String возвращает значение только для формы key=value.
func (o Options) String(key string) (string, bool) {
	v, ok := o[key]
	if !ok || v.Flag {
		return "", false
	}
	return v.Value, true
}

// project переносит распознанные ключи в типизированные поля связи.
func (o Options) project(r *Relationship) {
	r.Cascade = o.Bool("cascade")
	r.NotNull = o.Bool("not_null")
	r.Owner = o.Bool("owner")
	if v, ok := o.String("inverse_field"); ok {
		r.InverseField = &v
	}
}

// ParseRelationship разбирает строку вида tags:ManyToMany:Tag::cascade,inverse_field=posts.
func ParseRelationship(line string) (Relationship, error) {
	parts := strings.Split(line, ":")
	if len(parts) < 3 {
		return Relationship{}, &GrammarError{
			Entry:   line,
			Reason:  "minimum format is name:Type:target (" + RelationshipGrammar + ")",
			Example: relationshipExample,
		}
	}

	name := strings.TrimSpace(parts[0])
	rawType := strings.TrimSpace(parts[1])
	target := strings.TrimSpace(parts[2])

	typ, ok := LookupRelationType(rawType)
	if !ok {
		return Relationship{}, &GrammarError{
			Entry:   line,
			Reason:  fmt.Sprintf("relationship type %q is not supported, use one of: %s", rawType, typeNames(RelationTypes)),
			Example: relationshipExample,
		}
	}
	if name == "" {
		return Relationship{}, &GrammarError{Entry: line, Reason: "relationship name is empty", Example: relationshipExample}
	}
	if target == "" {
		return Relationship{}, &GrammarError{Entry: line, Reason: "relationship target is empty", Example: relationshipExample}
	}

	r := Relationship{Name: name, Type: typ, Target: target}
	if len(parts) > 3 {
		if mb := strings.TrimSpace(parts[3]); mb != "" {
			r.MappedBy = &mb
		}
	}
	if len(parts) > 4 && strings.TrimSpace(parts[4]) != "" {
		ParseOptions(parts[4]).project(&r)
	}
	return r, nil
}
