package render

import (
	"fmt"
	"strings"
)

// Artifact — один вид генерируемого файла.
type Artifact struct {
	Kind     string `json:"kind"`
	Template string `json:"template"`
	// имя файла; {Entity} заменяется на имя сущности
	File string `json:"file"`
}

func (a Artifact) FileName(entity string) string {
	return strings.ReplaceAll(a.File, "{Entity}", entity)
}

// DefaultArtifacts — все артефакты в фиксированном порядке генерации.
var DefaultArtifacts = []Artifact{
	{Kind: "entity", Template: "entity.java.tmpl", File: "{Entity}.java"},
	{Kind: "repository", Template: "repository.java.tmpl", File: "{Entity}Repository.java"},
	{Kind: "request", Template: "request.java.tmpl", File: "{Entity}Request.java"},
	{Kind: "response", Template: "response.java.tmpl", File: "{Entity}Response.java"},
	{Kind: "mapper", Template: "mapper.java.tmpl", File: "{Entity}Mapper.java"},
	{Kind: "service", Template: "service.java.tmpl", File: "{Entity}Service.java"},
	{Kind: "controller", Template: "controller.java.tmpl", File: "{Entity}Controller.java"},
	{Kind: "service_test", Template: "service_test.java.tmpl", File: "{Entity}ServiceTest.java"},
	{Kind: "controller_test", Template: "controller_test.java.tmpl", File: "{Entity}ControllerTest.java"},
	{Kind: "schema", Template: "schema.sql.tmpl", File: "{Entity}.sql"},
}

// SelectArtifacts оставляет запрошенные виды, сохраняя фиксированный порядок.
// Пустой список — все артефакты.
func SelectArtifacts(kinds []string) ([]Artifact, error) {
	if len(kinds) == 0 {
		return append([]Artifact{}, DefaultArtifacts...), nil
	}
	want := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		k = strings.TrimSpace(strings.ToLower(k))
		if k == "" {
			continue
		}
		want[k] = false
	}
	var out []Artifact
	for _, a := range DefaultArtifacts {
		if _, ok := want[a.Kind]; ok {
			want[a.Kind] = true
			out = append(out, a)
		}
	}
	for k, found := range want {
		if !found {
			return nil, fmt.Errorf("unknown artifact kind %q", k)
		}
	}
	return out, nil
}
