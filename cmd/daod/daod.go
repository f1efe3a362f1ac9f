package main

import (
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xmrtdao/daod/chain"
	"github.com/xmrtdao/daod/config"
	"github.com/xmrtdao/daod/eliza"
	"github.com/xmrtdao/daod/server"
	"github.com/xmrtdao/daod/store"
	"github.com/xmrtdao/daod/zk"
)

var homeDir string

var rootCmd = &cobra.Command{
	Use:   "daod",
	Short: "daod is the XMRT DAO backend",
	Long: `HTTP backend for the XMRT DAO demo: proposals, voting, treasury,
mocked chain and proof services, and the Eliza agents.`,
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&homeDir, "homedir", "d", "", "home directory")
}

func run(cmd *cobra.Command, args []string) {
	if homeDir == "" {
		homeDir = os.ExpandEnv("$HOME/.xmrtd")
	}

	cfg := config.DefaultConfig(homeDir)
	viper.SetConfigFile(fmt.Sprintf("%s/%s", homeDir, "config/config.toml"))

	if err := viper.ReadInConfig(); err != nil {
		stdlog.Fatalf("Reading config: %v", err)
	}
	if err := viper.Unmarshal(cfg); err != nil {
		stdlog.Fatalf("Decoding config: %v", err)
	}
	if err := cfg.ValidateBasic(); err != nil {
		stdlog.Fatalf("Invalid configuration data: %v", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("failed to parse log level: %v", err)
	}
	logger := log.NewLogger(os.Stdout, log.LevelOption(level))

	st, err := store.New(logger, cfg.DBPath)
	if err != nil {
		stdlog.Fatalf("open store: %v", err)
	}
	defer st.Close()
	if err := st.SeedAgents(); err != nil {
		stdlog.Fatalf("seed agents: %v", err)
	}

	agents := eliza.NewRegistry(logger)
	ledger := chain.NewLedger(logger)
	prover := zk.NewProver(logger)

	svc := server.New(cfg.ListenAddr, logger, st, ledger, prover, agents)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := svc.Run(ctx); err != nil {
		stdlog.Fatalf("server exited: %v", err)
	}
}
