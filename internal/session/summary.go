package session

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"crudgen/internal/dsl"
	"crudgen/internal/lint"
)

// printSummary показывает оператору собранную модель перед подтверждением.
func printSummary(out io.Writer, e *dsl.Entity, issues []lint.Issue) {
	headColor.Fprintf(out, "\n📋 Resumo da entidade %s:\n", e.Name)
	fmt.Fprintf(out, "   Tabela: %s\n", e.Table)
	fmt.Fprintf(out, "   Campos: %d\n", len(e.Fields))
	fmt.Fprintf(out, "   Relacionamentos: %d\n", len(e.Relationships))

	if len(e.Fields) > 0 {
		fmt.Fprintln(out, "\n   📝 Campos:")
		fieldTable(out, e.Fields)
	}
	if len(e.Relationships) > 0 {
		fmt.Fprintln(out, "\n   🔗 Relacionamentos:")
		relationshipTable(out, e.Relationships)
	}
	for _, is := range issues {
		warnColor.Fprintf(out, "⚠️  %s: %s\n", is.Subject, is.Message)
	}
}

func fieldTable(out io.Writer, fields []dsl.Field) {
	tbl := tablewriter.NewWriter(out)
	tbl.SetAutoFormatHeaders(false)
	tbl.SetHeader([]string{"Campo", "Tipo", "Coluna", "Max", "Flags"})
	for _, f := range fields {
		length := ""
		if f.Length != nil {
			length = strconv.Itoa(*f.Length)
		}
		var flags []string
		if f.NotNull {
			flags = append(flags, "not null")
		}
		if f.Positive {
			flags = append(flags, "positivo")
		}
		tbl.Append([]string{f.Name, string(f.Type), f.Column(), length, strings.Join(flags, ", ")})
	}
	tbl.Render()
}

func relationshipTable(out io.Writer, rels []dsl.Relationship) {
	tbl := tablewriter.NewWriter(out)
	tbl.SetAutoFormatHeaders(false)
	tbl.SetHeader([]string{"Relacionamento", "Tipo", "Alvo", "Mapped by", "Flags"})
	for _, r := range rels {
		mappedBy := ""
		if r.MappedBy != nil {
			mappedBy = *r.MappedBy
		}
		var flags []string
		if r.Cascade {
			flags = append(flags, "cascade")
		}
		if r.NotNull {
			flags = append(flags, "not null")
		}
		if r.Owner {
			flags = append(flags, "owner")
		}
		if r.InverseField != nil {
			flags = append(flags, "inverse="+*r.InverseField)
		}
		tbl.Append([]string{r.Name, string(r.Type), r.Target, mappedBy, strings.Join(flags, ", ")})
	}
	tbl.Render()
}
