// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/wooyang2018/casper-deploy/rpc"
)

var (
	listenAddr  string
	rootHash    string
	accountKey  string
	namedKey    string
	packageHash string
)

var rootCmd = &cobra.Command{
	Use:   "devnode",
	Short: "Local stub of a casper node rpc surface",
	Run: func(cmd *cobra.Command, args []string) {
		gin.SetMode(gin.ReleaseMode)
		if err := newEngine().Run(listenAddr); err != nil {
			log.Fatal(err)
		}
	},
}

func newEngine() *gin.Engine {
	r := gin.Default()
	r.POST("/rpc", rpcHandler)
	return r
}

type rpcRequest struct {
	ID     json.RawMessage        `json:"id"`
	Method string                 `json:"method"`
	Params map[string]interface{} `json:"params"`
}

func rpcHandler(c *gin.Context) {
	var req rpcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	switch req.Method {
	case "chain_get_state_root_hash":
		respond(c, req.ID, gin.H{"state_root_hash": rootHash})
	case "query_global_state":
		key, _ := req.Params["key"].(string)
		if key != accountKey {
			respondError(c, req.ID, rpc.CodeQueryFailed, "query failed: unknown key "+key)
			return
		}
		respond(c, req.ID, gin.H{
			"stored_value": gin.H{
				"Account": gin.H{
					"account_hash": accountKey,
					"named_keys": []gin.H{
						{"name": namedKey, "key": "contract-package-wasm" + packageHash},
					},
				},
			},
		})
	case "account_put_deploy":
		respond(c, req.ID, gin.H{"deploy_hash": randomHash()})
	default:
		respondError(c, req.ID, -32601, "method not found: "+req.Method)
	}
}

func respond(c *gin.Context, id json.RawMessage, result gin.H) {
	c.JSON(http.StatusOK, gin.H{"jsonrpc": "2.0", "id": id, "result": result})
}

func respondError(c *gin.Context, id json.RawMessage, code int, msg string) {
	c.JSON(http.StatusOK, gin.H{
		"jsonrpc": "2.0",
		"id":      id,
		"error":   gin.H{"code": code, "message": msg},
	})
}

// every submission yields a distinct deploy hash
func randomHash() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}

func init() {
	rootCmd.Flags().StringVar(&listenAddr, "listen", ":7777", "listen address")
	rootCmd.Flags().StringVar(&rootHash, "root-hash",
		"abc123", "state root hash to serve")
	rootCmd.Flags().StringVar(&accountKey, "account",
		"account-hash-0101010101010101010101010101010101010101010101010101010101010101",
		"account key holding the named key")
	rootCmd.Flags().StringVar(&namedKey, "named-key",
		"contract_package", "named key to serve")
	rootCmd.Flags().StringVar(&packageHash, "package-hash",
		"deadbeef", "package hash stored under the named key")
}
