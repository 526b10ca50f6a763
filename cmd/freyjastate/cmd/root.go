/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ssargent/freyjastate/pkg/config"
	"github.com/ssargent/freyjastate/pkg/di"
)

var (
	container *di.Container
	cfg       *config.Config
	logger    *slog.Logger
)

// SetContainer sets the dependency injection container
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "freyjastate",
	Short: "freyjastate - persisted session state snapshots",
	Long: `freyjastate saves, inspects and moves binary snapshots of client
session state. Snapshots are kept in a local store and can be exported to
and imported from plain files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")

		loaded := config.DefaultConfig()
		if config.ConfigExists(configPath) {
			var err error
			if loaded, err = config.LoadConfig(configPath); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("data-dir") {
			loaded.DataDir, _ = cmd.Flags().GetString("data-dir")
		}

		level, err := config.ParseLevel(loaded.Logging.Level)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		if container == nil {
			container = di.NewContainer()
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		metricsFile, _ := cmd.Flags().GetString("metrics-file")
		if metricsFile == "" {
			return nil
		}
		if err := prometheus.WriteToTextfile(metricsFile, container.GetRegistry()); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", config.GetDefaultConfigPath(), "Path to the configuration file")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for the snapshot store (overrides config)")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write engine metrics in text format to this file on exit")
}
