package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xmrtdao/daod/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the home directory and write the default configuration file",
	Args:  cobra.ExactArgs(0),
	RunE:  initRun,
}

func init() {
	initCmd.Flags().StringVarP(&homeDir, "homedir", "d", "", "home directory")
}

func initRun(cmd *cobra.Command, args []string) error {
	cfg := config.NewConfig(homeDir)
	config.WriteConfigFile(cfg.ConfigFile(), cfg)
	fmt.Printf("wrote %s\n", cfg.ConfigFile())
	return nil
}
