// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package main

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/wooyang2018/casper-deploy/resolver"
	"github.com/wooyang2018/casper-deploy/rpc"
)

func newTestNode(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rootHash = "abc123"
	accountKey = "account-hash-0102"
	namedKey = "contract_package"
	packageHash = "deadbeef"
	srv := httptest.NewServer(newEngine())
	t.Cleanup(srv.Close)
	return srv
}

func TestDevnodeStateRootHash(t *testing.T) {
	asrt := assert.New(t)
	srv := newTestNode(t)

	client := rpc.NewClient(srv.URL, time.Second)
	root, err := client.GetStateRootHash()

	asrt.NoError(err)
	asrt.Equal("abc123", root)
}

func TestDevnodeQueryAndResolve(t *testing.T) {
	asrt := assert.New(t)
	srv := newTestNode(t)

	client := rpc.NewClient(srv.URL, time.Second)
	sv, err := client.QueryGlobalState("abc123", "account-hash-0102", nil)
	asrt.NoError(err)

	hash, err := resolver.PackageHash(sv, "contract_package")
	asrt.NoError(err)
	asrt.Equal("deadbeef", hash)

	_, err = client.QueryGlobalState("abc123", "account-hash-9999", nil)
	asrt.ErrorIs(err, rpc.ErrNotFound)
}
