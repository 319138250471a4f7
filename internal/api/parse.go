package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crudgen/internal/dsl"
)

type lineRequest struct {
	Line string `json:"line"`
}

func rejection(kind, line string, err error) Rejection {
	var ge *dsl.GrammarError
	if errors.As(err, &ge) {
		return Rejection{Kind: kind, Entry: ge.Entry, Reason: ge.Reason, Example: ge.Example}
	}
	return Rejection{Kind: kind, Entry: line, Reason: err.Error()}
}

// parseHandler оборачивает парсер одной записи: 200 с разобранной записью
// или 422 с причиной отказа.
func parseHandler[T any](kind string, parse func(string) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req lineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, err, "invalid JSON body")
			return
		}
		v, err := parse(req.Line)
		if err != nil {
			failWith(c, http.StatusUnprocessableEntity, err, "entry rejected", rejection(kind, req.Line, err))
			return
		}
		success(c, http.StatusOK, v, "")
	}
}

func ParseFieldHandler() gin.HandlerFunc { return parseHandler("field", dsl.ParseField) }

func ParseRelationshipHandler() gin.HandlerFunc {
	return parseHandler("relationship", dsl.ParseRelationship)
}
