package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestParseField(t *testing.T) {
	tests := []struct {
		line string
		want Field
	}{
		{"nome:String:100", Field{Name: "nome", Type: TypeString, Length: intPtr(100), NotNull: true}},
		{"idade:Integer::positive", Field{Name: "idade", Type: TypeInteger, NotNull: true, Positive: true}},
		{"ativo:Boolean", Field{Name: "ativo", Type: TypeBoolean, NotNull: true}},
		{"preco:BigDecimal::POSITIVE", Field{Name: "preco", Type: TypeBigDecimal, NotNull: true, Positive: true}},
		{"  nomeCompleto : String : 80 ", Field{Name: "nomeCompleto", Type: TypeString, Length: intPtr(80), NotNull: true}},
		{"codigo:UUID:abc", Field{Name: "codigo", Type: TypeUUID, NotNull: true}},
		{"total:Long:12x:positive", Field{Name: "total", Type: TypeLong, NotNull: true, Positive: true}},
		{"peso:Float:-5", Field{Name: "peso", Type: TypeFloat, NotNull: true}},
		{"nota:Double:10:negative", Field{Name: "nota", Type: TypeDouble, Length: intPtr(10), NotNull: true}},
		{"criado:LocalDateTime", Field{Name: "criado", Type: TypeLocalDateTime, NotNull: true}},
		{"nascimento:LocalDate:", Field{Name: "nascimento", Type: TypeLocalDate, NotNull: true}},
		{"huge:String:99999999999999999999999", Field{Name: "huge", Type: TypeString, NotNull: true}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseField(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseField_Rejects(t *testing.T) {
	tests := []struct {
		line   string
		reason string
	}{
		{"nome", "at least name and type"},
		{"", "at least name and type"},
		{"nome:string", "not supported"},
		{"nome:Text:10", "String, Integer, Long, Double, Float, Boolean, LocalDateTime, LocalDate, UUID, BigDecimal"},
		{":String", "name is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := ParseField(tt.line)
			require.Error(t, err)
			require.True(t, IsGrammarError(err))
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestParseField_Idempotent(t *testing.T) {
	a, err := ParseField("nome:String:100:positive")
	require.NoError(t, err)
	b, err := ParseField("nome:String:100:positive")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotSame(t, a.Length, b.Length)
}

func TestField_Column(t *testing.T) {
	f := Field{Name: "email_corporativo"}
	assert.Equal(t, "EMAIL_CORPORATIVO", f.Column())
}
