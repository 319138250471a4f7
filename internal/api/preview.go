package api

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"crudgen/internal/dsl"
	"crudgen/internal/lint"
	"crudgen/internal/render"
)

type previewRequest struct {
	EntityName    string   `json:"entity_name"`
	TableName     string   `json:"table_name"`
	Fields        []string `json:"fields"`
	Relationships []string `json:"relationships"`
}

// collectLines — то же, что интерактивный цикл сбора, но без диалога:
// пустые строки пропускаются, отказы копятся и не прерывают разбор.
func collectLines[T any](kind string, lines []string, parse func(string) (T, error), rejected *[]Rejection) []T {
	out := []T{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		v, err := parse(line)
		if err != nil {
			*rejected = append(*rejected, rejection(kind, line, err))
			continue
		}
		out = append(out, v)
	}
	return out
}

// PreviewHandler собирает модель из строк, проверяет её и рендерит все артефакты в память.
func PreviewHandler(engine *render.Engine, storage *Storage, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req previewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, err, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.EntityName) == "" {
			fail(c, http.StatusBadRequest, dsl.ErrEntityNameRequired, "entity_name is required")
			return
		}

		rejected := []Rejection{}
		fields := collectLines("field", req.Fields, dsl.ParseField, &rejected)
		rels := collectLines("relationship", req.Relationships, dsl.ParseRelationship, &rejected)

		ent, err := dsl.Assemble(req.EntityName, req.TableName, fields, rels)
		if err != nil {
			code := http.StatusBadRequest
			if errors.Is(err, dsl.ErrNothingToGenerate) {
				code = http.StatusUnprocessableEntity
			}
			failWith(c, code, err, "cannot assemble entity", gin.H{"rejected": rejected})
			return
		}

		p := &Preview{
			Model:    ent,
			Rejected: rejected,
			Issues:   lint.Check(ent),
		}
		if p.Issues == nil {
			p.Issues = []lint.Issue{}
		}

		rctx := engine.Context(ent)
		for _, a := range engine.Artifacts() {
			var buf bytes.Buffer
			if err := engine.Render(&buf, a, rctx); err != nil {
				log.Error("preview render failed", zap.String("entity", ent.Name), zap.String("artifact", a.Kind), zap.Error(err))
				fail(c, http.StatusInternalServerError, err, "render "+a.Kind+" failed")
				return
			}
			p.Artifacts = append(p.Artifacts, ArtifactOut{
				Name:    a.Kind,
				File:    ent.Name + "/" + a.FileName(ent.Name),
				Content: buf.String(),
			})
		}

		id := storage.Put(p)
		log.Info("preview rendered",
			zap.String("id", id),
			zap.String("entity", ent.Name),
			zap.Int("rejected", len(rejected)),
			zap.Int("issues", len(p.Issues)))
		success(c, http.StatusOK, p, "")
	}
}

// GetPreviewHandler возвращает сохранённое превью по ID.
func GetPreviewHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := storage.Get(c.Param("id"))
		if !ok {
			fail(c, http.StatusNotFound, nil, "preview not found")
			return
		}
		success(c, http.StatusOK, p, "")
	}
}

// ArtifactHandler отдаёт содержимое одного артефакта как текст.
func ArtifactHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := storage.Get(c.Param("id"))
		if !ok {
			fail(c, http.StatusNotFound, nil, "preview not found")
			return
		}
		kind := c.Param("kind")
		for _, a := range p.Artifacts {
			if a.Name == kind {
				c.Header("Content-Disposition", `attachment; filename="`+a.File[strings.LastIndexByte(a.File, '/')+1:]+`"`)
				c.String(http.StatusOK, a.Content)
				return
			}
		}
		fail(c, http.StatusNotFound, nil, "artifact not found")
	}
}
