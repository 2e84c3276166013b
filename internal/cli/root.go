package cli

import (
	"github.com/spf13/cobra"

	"github.com/ManuelReschke/foxcms/internal/pkg/env"
	"github.com/ManuelReschke/foxcms/internal/pkg/routes"
)

var (
	routesFile string
	envFiles   []string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "foxcms",
		Short: "FoxCMS upload and routing server",
		Long:  "Serves file uploads through a declarative, priority ordered route table",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Flags win over the env file.
			env.SetupEnvFile(envFiles...)
			if !cmd.Flags().Changed("routes") {
				routesFile = env.GetEnv("ROUTES_FILE", routesFile)
			}
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&routesFile, "routes", "r", "",
		"Path to a YAML route table (defaults to the built-in table)")
	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil,
		"Env files to load, first existing one wins")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newRoutesCmd())
	return cmd
}

func Execute() error {
	return newRootCmd().Execute()
}

// loadTable reads the configured route table. Any descriptor error aborts
// the command.
func loadTable() (*routes.Table, error) {
	if routesFile == "" {
		return routes.Default()
	}
	return routes.LoadFile(routesFile)
}
