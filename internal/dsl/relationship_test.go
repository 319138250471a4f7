package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseRelationship(t *testing.T) {
	tests := []struct {
		line string
		want Relationship
	}{
		{
			"tags:ManyToMany:Tag::cascade,inverse_field=posts",
			Relationship{Name: "tags", Type: ManyToMany, Target: "Tag", Cascade: true, InverseField: strPtr("posts")},
		},
		{
			"pedidos:OneToMany:Pedido:cliente:cascade",
			Relationship{Name: "pedidos", Type: OneToMany, Target: "Pedido", MappedBy: strPtr("cliente"), Cascade: true},
		},
		{
			"categoria:ManyToOne:Categoria::not_null",
			Relationship{Name: "categoria", Type: ManyToOne, Target: "Categoria", NotNull: true},
		},
		{
			"endereco:OneToOne:Endereco::cascade,owner",
			Relationship{Name: "endereco", Type: OneToOne, Target: "Endereco", Cascade: true, Owner: true},
		},
		{
			"cliente:ManyToOne:Cliente",
			Relationship{Name: "cliente", Type: ManyToOne, Target: "Cliente"},
		},
		{
			"cliente:ManyToOne:Cliente:  :",
			Relationship{Name: "cliente", Type: ManyToOne, Target: "Cliente"},
		},
		{
			"itens:OneToMany:Item:pedido:fetch=lazy,orphan",
			Relationship{Name: "itens", Type: OneToMany, Target: "Item", MappedBy: strPtr("pedido")},
		},
		{
			"itens:OneToMany:Item::cascade=false,owner=yes,not_null=",
			Relationship{Name: "itens", Type: OneToMany, Target: "Item", Owner: true},
		},
		{
			"tags:ManyToMany:Tag::inverse_field",
			Relationship{Name: "tags", Type: ManyToMany, Target: "Tag"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseRelationship(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRelationship_Rejects(t *testing.T) {
	tests := []struct {
		line   string
		reason string
	}{
		{"cliente:ManyToOne", "minimum format is name:Type:target"},
		{"cliente", "minimum format"},
		{"cliente:manytoone:Cliente", "OneToMany, ManyToOne, OneToOne, ManyToMany"},
		{":ManyToOne:Cliente", "name is empty"},
		{"cliente:ManyToOne: ", "target is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := ParseRelationship(tt.line)
			require.Error(t, err)
			require.True(t, IsGrammarError(err))
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestParseOptions(t *testing.T) {
	opts := ParseOptions(" cascade , inverse_field = posts ,fetch=lazy,, expr=a=b")

	assert.Equal(t, Options{
		"cascade":       {Flag: true},
		"inverse_field": {Value: "posts"},
		"fetch":         {Value: "lazy"},
		"expr":          {Value: "a=b"},
	}, opts)

	assert.True(t, opts.Bool("cascade"))
	assert.True(t, opts.Bool("fetch"))
	assert.False(t, opts.Bool("owner"))

	v, ok := opts.String("inverse_field")
	assert.True(t, ok)
	assert.Equal(t, "posts", v)
	_, ok = opts.String("cascade")
	assert.False(t, ok)
}

func TestParseRelationship_Idempotent(t *testing.T) {
	const line = "tags:ManyToMany:Tag:posts:cascade,inverse_field=posts"
	a, err := ParseRelationship(line)
	require.NoError(t, err)
	b, err := ParseRelationship(line)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
