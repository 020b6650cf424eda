package main

import (
	"github.com/spf13/cobra"
)

const defaultConfigPath = "./configs/configs.yml"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "proxylogs",
		Short: "Query proxy access logs stored in object storage buckets",
		Long: `proxylogs reads squid access logs of many proxy servers from GCS, S3 or a local
directory, keeps the lines of a time window that match a filter, and returns them
merged newest first together with per-dimension request counts.`,
		SilenceUsage: true,
	}

	var configPath string
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to the YAML configuration file")

	rootCmd.AddCommand(newServeCmd(&configPath))
	rootCmd.AddCommand(newQueryCmd(&configPath))
	return rootCmd
}
