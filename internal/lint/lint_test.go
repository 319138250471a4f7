package lint

import (
	"testing"

	"crudgen/internal/dsl"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func codes(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, it := range issues {
		out = append(out, it.Code)
	}
	return out
}

func TestCheck_Clean(t *testing.T) {
	e := &dsl.Entity{
		Name:  "Pedido",
		Table: "pedido",
		Fields: []dsl.Field{
			{Name: "numero", Type: dsl.TypeString, NotNull: true},
		},
		Relationships: []dsl.Relationship{
			{Name: "cliente", Type: dsl.ManyToOne, Target: "Cliente", NotNull: true},
			{Name: "itens", Type: dsl.OneToMany, Target: "Item", MappedBy: strPtr("pedido")},
			{Name: "tags", Type: dsl.ManyToMany, Target: "Tag", InverseField: strPtr("pedidos")},
		},
	}
	assert.Empty(t, Check(e))
}

func TestCheck_Issues(t *testing.T) {
	e := &dsl.Entity{
		Name:  "User",
		Table: "user",
		Fields: []dsl.Field{
			{Name: "nome", Type: dsl.TypeString},
			{Name: "Nome", Type: dsl.TypeString},
			{Name: "order", Type: dsl.TypeInteger},
		},
		Relationships: []dsl.Relationship{
			{Name: "nome", Type: dsl.ManyToOne, Target: "X"},
			{Name: "itens", Type: dsl.OneToMany, Target: "Item", NotNull: true},
			{Name: "perfil", Type: dsl.OneToOne, Target: "Perfil", Owner: true, MappedBy: strPtr("user"), InverseField: strPtr("u")},
		},
	}
	assert.Equal(t, []string{
		CodeReservedName,
		CodeDuplicateName,
		CodeReservedName,
		CodeDuplicateName,
		CodeMissingMappedBy,
		CodeNotNullCollection,
		CodeInverseFieldKind,
		CodeOwnerMappedBy,
	}, codes(Check(e)))
}
