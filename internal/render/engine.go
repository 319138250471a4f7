// Package render превращает собранную модель сущности в файлы по именованным
// шаблонам. Engine создаётся один раз и передаётся явно; после создания он
// только читается, поэтому его можно делить между запросами.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"crudgen/internal/dsl"
	"crudgen/internal/reference"
)

//go:embed templates/*.tmpl
var embedded embed.FS

// Context — данные, которые видит шаблон.
type Context struct {
	*dsl.Entity
	PackageBase string
}

type Engine struct {
	tmpl        *template.Template
	catalog     *reference.TypeCatalog
	packageBase string
	templateDir string
	artifacts   []Artifact
}

type Option func(*Engine)

// WithTemplateDir подменяет встроенные шаблоны одноимёнными файлами из dir.
func WithTemplateDir(dir string) Option {
	return func(e *Engine) { e.templateDir = dir }
}

// WithArtifacts ограничивает набор генерируемых артефактов.
func WithArtifacts(a []Artifact) Option {
	return func(e *Engine) { e.artifacts = a }
}

func New(catalog *reference.TypeCatalog, packageBase string, opts ...Option) (*Engine, error) {
	e := &Engine{
		catalog:     catalog,
		packageBase: packageBase,
		artifacts:   DefaultArtifacts,
	}
	for _, opt := range opts {
		opt(e)
	}

	t, err := template.New("crudgen").Funcs(e.funcs()).ParseFS(embedded, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse embedded templates: %w", err)
	}
	if e.templateDir != "" {
		for _, a := range e.artifacts {
			path := filepath.Join(e.templateDir, a.Template)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if t, err = t.ParseFiles(path); err != nil {
				return nil, fmt.Errorf("parse template override %s: %w", path, err)
			}
		}
	}
	e.tmpl = t
	return e, nil
}

// Artifacts — артефакты этого движка в порядке генерации.
func (e *Engine) Artifacts() []Artifact {
	return append([]Artifact{}, e.artifacts...)
}

func (e *Engine) Catalog() *reference.TypeCatalog { return e.catalog }

// Context оборачивает модель вместе с настройками пакета.
func (e *Engine) Context(ent *dsl.Entity) Context {
	return Context{Entity: ent, PackageBase: e.packageBase}
}

// Render выполняет шаблон артефакта в w.
func (e *Engine) Render(w io.Writer, a Artifact, c Context) error {
	return e.tmpl.ExecuteTemplate(w, a.Template, c)
}

// Write рендерит артефакт в <dir>/<Entity>/<file> и возвращает путь.
// Файл пишется только после успешного рендера.
func (e *Engine) Write(dir string, a Artifact, c Context) (string, error) {
	var buf bytes.Buffer
	if err := e.Render(&buf, a, c); err != nil {
		return "", err
	}
	path := filepath.Join(dir, c.Name, a.FileName(c.Name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
