package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	OutputDir   string   `yaml:"output_dir" json:"output_dir"`
	PackageBase string   `yaml:"package_base" json:"package_base"`
	TemplateDir string   `yaml:"template_dir" json:"template_dir"` // пусто = только встроенные шаблоны
	CatalogPath string   `yaml:"catalog" json:"catalog"`           // пусто = встроенный каталог типов
	Artifacts   []string `yaml:"artifacts" json:"artifacts"`       // пусто = все

	// DDL: применяется только при ApplyDDL и непустом DBURL
	DBURL    string `yaml:"db_url" json:"db_url"`
	ApplyDDL bool   `yaml:"apply_ddl" json:"apply_ddl"`

	Port        string   `yaml:"port" json:"port"`
	CORSOrigins []string `yaml:"cors_origins" json:"cors_origins"`

	LogLevel  string `yaml:"log_level" json:"log_level"`
	LogFormat string `yaml:"log_format" json:"log_format"` // text | json
}

func Default() Config {
	return Config{
		OutputDir:   "output",
		PackageBase: "com.example",
		Port:        "8080",
		CORSOrigins: []string{"*"},
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// loadFile читает YAML; JSON тоже подходит, это подмножество YAML.
func loadFile(path string, c *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getenvBool(k string, fallback bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		switch strings.TrimSpace(strings.ToLower(v)) {
		case "1", "true", "yes":
			return true
		case "0", "false", "no":
			return false
		}
	}
	return fallback
}

func getenvList(k string, fallback []string) []string {
	v, ok := os.LookupEnv(k)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	return SplitList(v)
}

// SplitList разбирает список через запятую, пустые элементы отбрасываются.
func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load: значения по умолчанию, затем файл (если задан),
// затем .env и переменные CRUDGEN_*. Флаги CLI накладываются вызывающим,
// он же вызывает Validate. Явно указанный, но отсутствующий файл — ошибка.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	// .env не перекрывает уже заданные переменные окружения
	if st, err := os.Stat(".env"); err == nil && !st.IsDir() {
		if err := godotenv.Load(".env"); err != nil {
			return cfg, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg.OutputDir = getenv("CRUDGEN_OUTPUT_DIR", cfg.OutputDir)
	cfg.PackageBase = getenv("CRUDGEN_PACKAGE_BASE", cfg.PackageBase)
	cfg.TemplateDir = getenv("CRUDGEN_TEMPLATE_DIR", cfg.TemplateDir)
	cfg.CatalogPath = getenv("CRUDGEN_CATALOG", cfg.CatalogPath)
	cfg.Artifacts = getenvList("CRUDGEN_ARTIFACTS", cfg.Artifacts)
	cfg.DBURL = getenv("CRUDGEN_DB_URL", cfg.DBURL)
	cfg.ApplyDDL = getenvBool("CRUDGEN_APPLY_DDL", cfg.ApplyDDL)
	cfg.Port = getenv("CRUDGEN_PORT", cfg.Port)
	cfg.CORSOrigins = getenvList("CRUDGEN_CORS_ORIGINS", cfg.CORSOrigins)
	cfg.LogLevel = getenv("CRUDGEN_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenv("CRUDGEN_LOG_FORMAT", cfg.LogFormat)

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if strings.TrimSpace(c.PackageBase) == "" {
		return fmt.Errorf("package_base must not be empty")
	}
	if c.ApplyDDL && strings.TrimSpace(c.DBURL) == "" {
		return fmt.Errorf("apply_ddl requires db_url")
	}
	return nil
}
