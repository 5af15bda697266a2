// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package main

import (
	"fmt"
	"path"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wooyang2018/casper-deploy/storage"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List locally recorded deploy submissions, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		history, err := storage.OpenHistory(path.Join(cfg.DataDir, "history"))
		check(err)
		defer history.Close()

		recs, err := history.List(historyLimit)
		check(err)
		count, err := history.Count()
		check(err)

		bold := color.New(color.Bold)
		for _, rec := range recs {
			bold.Println(rec.DeployHash)
			fmt.Printf("  entry point  %s\n", rec.EntryPoint)
			fmt.Printf("  package      %s\n", rec.PackageHash)
			fmt.Printf("  state root   %s\n", rec.StateRootHash)
			fmt.Printf("  chain        %s\n", rec.ChainName)
			fmt.Printf("  submitted    %s\n", rec.SubmittedAt.Format("2006-01-02 15:04:05"))
		}
		if !quiet {
			fmt.Printf("%d of %d deploys\n", len(recs), count)
		}
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10,
		"maximum records to list, 0 for all")
}
