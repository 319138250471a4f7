package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "crudgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output_dir: gen
package_base: br.com.loja
artifacts: [entity, schema]
port: "9090"
`), 0o644))

	t.Setenv("CRUDGEN_PORT", "7070")
	t.Setenv("CRUDGEN_CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gen", cfg.OutputDir)
	assert.Equal(t, "br.com.loja", cfg.PackageBase)
	assert.Equal(t, []string{"entity", "schema"}, cfg.Artifacts)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoad_JSONFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "crudgen.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output_dir": "out", "log_format": "json"}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "com.example", cfg.PackageBase)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".env", []byte("CRUDGEN_PACKAGE_BASE=org.demo\nCRUDGEN_APPLY_DDL=no\n"), 0o644))
	// .env применяется через os.Setenv; после теста переменные должны исчезнуть
	for _, k := range []string{"CRUDGEN_PACKAGE_BASE", "CRUDGEN_APPLY_DDL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "org.demo", cfg.PackageBase)
	assert.False(t, cfg.ApplyDDL)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("nope.yaml")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.ApplyDDL = true
	require.Error(t, cfg.Validate())

	cfg.DBURL = "postgres://localhost/db"
	require.NoError(t, cfg.Validate())

	cfg.PackageBase = " "
	require.Error(t, cfg.Validate())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a,,b ,"))
	assert.Nil(t, SplitList(" , "))
}
