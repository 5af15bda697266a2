// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/wooyang2018/casper-deploy/config"
	"github.com/wooyang2018/casper-deploy/logger"
	"github.com/wooyang2018/casper-deploy/registry"
)

var (
	cfg   = config.FromEnv()
	debug bool
	quiet bool
)

var rootCmd = &cobra.Command{
	Use:   "deployer",
	Short: "Deploy orchestration client for casper contracts",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			logger.SetupDebug()
		}
		if cfg.SchemaPath != "" {
			check(registry.Load(cfg.SchemaPath))
		}
	},
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfg.NodeURL,
		"node", cfg.NodeURL, "node rpc endpoint url")

	rootCmd.PersistentFlags().StringVar(&cfg.AccountKey,
		"account", cfg.AccountKey, "account hash key owning the contract named key")

	rootCmd.PersistentFlags().StringVar(&cfg.NamedKey,
		"named-key", cfg.NamedKey, "named key holding the contract package hash")

	rootCmd.PersistentFlags().StringVar(&cfg.ChainName,
		"chain", cfg.ChainName, "chain name the deploy is bound to")

	rootCmd.PersistentFlags().StringVarP(&cfg.SecretKeyPath,
		"key", "k", cfg.SecretKeyPath, "path to the secret key file")

	rootCmd.PersistentFlags().StringVar(&cfg.PaymentAmount,
		"payment", cfg.PaymentAmount, "payment amount in motes")

	rootCmd.PersistentFlags().StringVar(&cfg.ClientBin,
		"client-bin", cfg.ClientBin, "external signing client binary")

	rootCmd.PersistentFlags().StringVar(&cfg.SchemaPath,
		"schema", cfg.SchemaPath, "json file with extra entry-point schemas")

	rootCmd.PersistentFlags().StringVarP(&cfg.DataDir,
		"datadir", "d", cfg.DataDir, "local data directory")

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "print bare results only")
}
