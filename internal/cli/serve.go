package cli

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"

	"github.com/ManuelReschke/foxcms/internal/pkg/env"
	"github.com/ManuelReschke/foxcms/internal/pkg/router"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable()
			if err != nil {
				return fmt.Errorf("load routes: %w", err)
			}

			if addr == "" {
				addr = fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000"))
			}

			app := router.NewApplication(table)
			log.Infof("[Server] Listening on %s", addr)
			return app.Listen(addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "listen", "l", "", "Listen address, overrides APP_HOST and APP_PORT")
	return cmd
}
