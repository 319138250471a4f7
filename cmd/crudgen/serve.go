package main

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crudgen/internal/api"
	"crudgen/internal/config"
	"crudgen/internal/logging"
	"crudgen/internal/render"
)

func newServeCmd(f *rootFlags, errOut io.Writer) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP preview API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			log := logging.New(cfg.LogLevel, cfg.LogFormat, errOut)
			defer func() { _ = log.Sync() }()

			engine, err := newEngine(cfg)
			if err != nil {
				return err
			}
			ln, err := net.Listen("tcp", ":"+cfg.Port)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), ln, cfg, engine, log)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP port (default 8080)")
	return cmd
}

// serve обслуживает ln до отмены ctx, затем гасит сервер за 5 секунд.
func serve(ctx context.Context, ln net.Listener, cfg config.Config, engine *render.Engine, log *zap.Logger) error {
	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(engine, api.NewStorage(api.DefaultPreviewLimit), log, cfg.CORSOrigins)
	srv := api.NewServer(ln.Addr().String(), router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("preview API listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down preview API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
