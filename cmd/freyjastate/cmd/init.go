/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/freyjastate/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration and create the snapshot store",
	Long: `Write a default configuration file and create an empty snapshot store
in the configured data directory.

Examples:
  freyjastate init
  freyjastate init --config ./freyjastate.yaml --data-dir ./state --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		force, _ := cmd.Flags().GetBool("force")

		if err := initialize(configPath, cfg.DataDir, force); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration: %s\n", configPath)
		fmt.Fprintf(cmd.OutOrStdout(), "Data directory: %s\n", cfg.DataDir)
		return nil
	},
}

// initialize bootstraps the config at configPath and creates the store.
func initialize(configPath, dataDir string, force bool) error {
	if config.ConfigExists(configPath) && !force {
		return fmt.Errorf("config already exists at %s, use --force to overwrite", configPath)
	}

	bootstrapped, err := config.BootstrapConfig(configPath, dataDir)
	if err != nil {
		return err
	}
	cfg = bootstrapped

	store, err := openStore()
	if err != nil {
		return err
	}
	return store.Close()
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}
