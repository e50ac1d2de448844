package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/partsdex/internal/config"
)

// env selects config/<env>.yaml; --env overrides the ENV variable.
var env string

var rootCmd = &cobra.Command{
	Use:           "partsdex",
	Short:         "Vehicle parts catalog query service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", config.GetEnv(), "configuration environment (local, dev, docker, prod)")
	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
