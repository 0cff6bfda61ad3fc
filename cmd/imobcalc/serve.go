package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pharosnegocios/imobcalc/internal/api"
	"github.com/spf13/cobra"
)

func (a *app) serveCmd() *cobra.Command {
	var (
		addr         string
		maxBodyBytes int64
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.HTTPAddr
			}
			if !a.debug {
				gin.SetMode(gin.ReleaseMode)
			}

			router := api.NewRouter(api.Options{
				Rates:        a.rateProvider(),
				WeightPolicy: a.cfg.Policy(),
				Logger:       a.logger,
				CORSOrigins:  a.cfg.CORSOrigins,
				MaxBodyBytes: maxBodyBytes,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return api.Serve(ctx, addr, router, a.logger, 10*time.Second)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: IMOBCALC_HTTP_ADDR)")
	cmd.Flags().Int64Var(&maxBodyBytes, "max-body-bytes", api.DefaultMaxBodyBytes, "Largest accepted request body")
	return cmd
}
