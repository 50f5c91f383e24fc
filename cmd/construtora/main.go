package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"construtora/internal/config"
	"construtora/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "construtora",
	Short:         "Task, comment and file API for the construtora admin area",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	rootCmd.AddCommand(serveCmd, migrateCmd, createAdminCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logging.Init(cfg.Log)
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
