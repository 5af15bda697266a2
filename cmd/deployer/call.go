// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package main

import (
	"fmt"
	"path"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wooyang2018/casper-deploy/client"
	"github.com/wooyang2018/casper-deploy/deploy"
	"github.com/wooyang2018/casper-deploy/logger"
	"github.com/wooyang2018/casper-deploy/rpc"
	"github.com/wooyang2018/casper-deploy/storage"
)

var (
	argOverrides []string
	ttl          string
)

var callCmd = &cobra.Command{
	Use:   "call <entry-point>",
	Short: "Submit a signed deploy invoking a contract entry point",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		check(cfg.Validate())
		overrides, err := parseOverrides(argOverrides)
		check(err)
		if ttl != "" {
			cfg.TTL = ttl
		}

		c := newClient()
		history, err := storage.OpenHistory(path.Join(cfg.DataDir, "history"))
		if err != nil {
			logger.I().Warnw("cannot open history ledger", "error", err)
		} else {
			defer history.Close()
			c.SetHistory(history)
		}

		res, err := c.Run(args[0], overrides)
		check(err)
		if quiet {
			fmt.Println(res.DeployHash)
		} else {
			fmt.Print("deploy hash ")
			color.New(color.Bold, color.FgGreen).Println(res.DeployHash)
		}
	},
}

func newClient() *client.Client {
	node := rpc.NewClient(cfg.NodeURL, cfg.RequestTimeout)
	return client.New(cfg, node, deploy.ExecRunner{})
}

func parseOverrides(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("bad argument override %q, want name=value", pair)
		}
		overrides[name] = value
	}
	return overrides, nil
}

func init() {
	rootCmd.AddCommand(callCmd)

	callCmd.Flags().StringArrayVarP(&argOverrides, "arg", "a", nil,
		"override an argument default, name=value, repeatable")

	callCmd.Flags().StringVar(&ttl, "ttl", "",
		"deploy time to live, e.g. 30min")
}
