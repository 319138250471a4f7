package main

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crudgen/internal/config"
	"crudgen/internal/logging"
	"crudgen/internal/pg"
	"crudgen/internal/reference"
	"crudgen/internal/render"
	"crudgen/internal/session"
)

type rootFlags struct {
	configPath string
	output     string
	pkg        string
	templates  string
	catalog    string
	artifacts  []string
	db         string
	apply      bool
	logLevel   string
	logFormat  string
	yes        bool
	dumpModel  bool
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var f rootFlags

	root := &cobra.Command{
		Use:   "crudgen",
		Short: "Interactive generator of JPA/Spring CRUD layers for one entity.",
		Example: `  crudgen --output generated --package br.com.loja
  crudgen --artifacts entity,schema --yes < entity.txt
  crudgen serve --port 8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, &f)
			if err != nil {
				return err
			}
			log := logging.New(cfg.LogLevel, cfg.LogFormat, errOut)
			defer func() { _ = log.Sync() }()

			engine, err := newEngine(cfg)
			if err != nil {
				return err
			}

			var opts []session.Option
			switch {
			case f.yes:
				opts = append(opts, session.WithConfirmer(session.AutoConfirm))
			case in == os.Stdin && isatty.IsTerminal(os.Stdin.Fd()):
				opts = append(opts, session.WithConfirmer(session.PromptConfirmer(os.Stdin, os.Stdout)))
			}
			if f.dumpModel {
				opts = append(opts, session.WithModelDump())
			}
			if cfg.ApplyDDL {
				applier, closeDB := ddlApplier(cfg.DBURL, log)
				defer closeDB()
				opts = append(opts, session.WithDDLApplier(applier))
			}

			s := session.New(in, out, engine, cfg.OutputDir, log, opts...)
			_, err = s.Run(cmd.Context())
			if errors.Is(err, session.ErrCancelled) {
				return nil
			}
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "path to YAML or JSON config file")
	pf.StringVar(&f.templates, "templates", "", "directory with template overrides")
	pf.StringVar(&f.catalog, "catalog", "", "type catalog YAML (default: embedded java-postgres)")
	pf.StringVar(&f.pkg, "package", "", "base Java package of generated code")
	pf.StringSliceVar(&f.artifacts, "artifacts", nil, "artifact kinds to generate (default: all)")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&f.logFormat, "log-format", "", "log format: text or json")

	fl := root.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output directory")
	fl.StringVar(&f.db, "db", "", "Postgres URL for --apply")
	fl.BoolVar(&f.apply, "apply", false, "apply generated DDL to --db")
	fl.BoolVarP(&f.yes, "yes", "y", false, "skip confirmation")
	fl.BoolVar(&f.dumpModel, "dump-model", false, "print the assembled model as JSON before confirmation")

	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(newServeCmd(&f, errOut), newVersionCmd())
	return root
}

// loadConfig: файл и окружение, затем явно заданные флаги.
func loadConfig(cmd *cobra.Command, f *rootFlags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}

	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("output", &cfg.OutputDir, f.output)
	set("package", &cfg.PackageBase, f.pkg)
	set("templates", &cfg.TemplateDir, f.templates)
	set("catalog", &cfg.CatalogPath, f.catalog)
	set("db", &cfg.DBURL, f.db)
	set("log-level", &cfg.LogLevel, f.logLevel)
	set("log-format", &cfg.LogFormat, f.logFormat)
	if cmd.Flags().Changed("artifacts") {
		cfg.Artifacts = f.artifacts
	}
	if cmd.Flags().Changed("apply") {
		cfg.ApplyDDL = f.apply
	}
	return cfg, cfg.Validate()
}

func newEngine(cfg config.Config) (*render.Engine, error) {
	catalog := reference.Default()
	if cfg.CatalogPath != "" {
		c, err := reference.LoadTypeCatalog(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		catalog = c
	}
	artifacts, err := render.SelectArtifacts(cfg.Artifacts)
	if err != nil {
		return nil, err
	}
	return render.New(catalog, cfg.PackageBase,
		render.WithTemplateDir(cfg.TemplateDir),
		render.WithArtifacts(artifacts))
}

// ddlApplier открывает соединение только при первом применении.
func ddlApplier(url string, log *zap.Logger) (session.DDLApplier, func()) {
	var db *sql.DB
	apply := func(ctx context.Context, ddl map[string]string) error {
		if db == nil {
			conn, err := pg.Open(ctx, url)
			if err != nil {
				return err
			}
			db = conn
		}
		return pg.ApplyDDL(ctx, db, ddl, log)
	}
	closeDB := func() {
		if db != nil {
			_ = db.Close()
		}
	}
	return apply, closeDB
}
