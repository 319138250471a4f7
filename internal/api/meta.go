package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crudgen/internal/dsl"
	"crudgen/internal/reference"
	"crudgen/internal/render"
)

type metaTypes struct {
	FieldTypes          []dsl.FieldType       `json:"field_types"`
	RelationshipTypes   []dsl.RelationType    `json:"relationship_types"`
	FieldGrammar        string                `json:"field_grammar"`
	RelationshipGrammar string                `json:"relationship_grammar"`
	Options             []string              `json:"options"`
	Catalog             string                `json:"catalog"`
	Types               []reference.TypeEntry `json:"types"`
	Artifacts           []render.Artifact     `json:"artifacts"`
}

// MetaTypesHandler описывает грамматику записей и каталог типов для UI.
func MetaTypesHandler(engine *render.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat := engine.Catalog()
		success(c, http.StatusOK, metaTypes{
			FieldTypes:          dsl.FieldTypes,
			RelationshipTypes:   dsl.RelationTypes,
			FieldGrammar:        dsl.FieldGrammar,
			RelationshipGrammar: dsl.RelationshipGrammar,
			Options:             []string{"cascade", "not_null", "owner", "inverse_field=<name>"},
			Catalog:             cat.Name,
			Types:               cat.Types,
			Artifacts:           engine.Artifacts(),
		}, "")
	}
}
