// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wooyang2018/casper-deploy/registry"
)

var rootHashCmd = &cobra.Command{
	Use:   "root-hash",
	Short: "Fetch the current state root hash from the node",
	Run: func(cmd *cobra.Command, args []string) {
		rootHash, err := newClient().StateRootHash()
		check(err)
		fmt.Println(rootHash)
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the contract package hash from the account named keys",
	Run: func(cmd *cobra.Command, args []string) {
		pkgHash, rootHash, err := newClient().ResolvePackageHash()
		check(err)
		if quiet {
			fmt.Println(pkgHash)
			return
		}
		fmt.Println("state root hash", rootHash)
		fmt.Print("package hash    ")
		color.New(color.Bold).Println(pkgHash)
	},
}

var entryPointsCmd = &cobra.Command{
	Use:   "entrypoints",
	Short: "List the entry points with argument schemas",
	Run: func(cmd *cobra.Command, args []string) {
		bold := color.New(color.Bold)
		for _, name := range registry.EntryPoints() {
			schema, err := registry.Describe(name)
			check(err)
			bold.Println(name)
			for _, spec := range schema {
				fmt.Printf("  %s %s = %q\n", spec.Name, spec.Type, spec.Default)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(rootHashCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(entryPointsCmd)
}
