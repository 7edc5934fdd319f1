package main

import (
	"os"

	"github.com/spf13/cobra"
)

// @title Customer Directory API
// @version 1.0
// @description Stores and lists customers in a single JSON document.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Only enforced when server.auth.enabled is set.
func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configDir string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "customer-directory",
		Short:         "Customer directory API server",
		Long:          "Customer directory keeps a list of customers in a JSON file and serves it over HTTP.",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", ".", "directory containing config.yml")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newSeedCommand(opts))
	rootCmd.AddCommand(newCheckCommand(opts))
	return rootCmd
}
