// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package client

import (
	"github.com/wooyang2018/casper-deploy/config"
	"github.com/wooyang2018/casper-deploy/deploy"
	"github.com/wooyang2018/casper-deploy/logger"
	"github.com/wooyang2018/casper-deploy/registry"
	"github.com/wooyang2018/casper-deploy/resolver"
	"github.com/wooyang2018/casper-deploy/rpc"
	"github.com/wooyang2018/casper-deploy/storage"
)

// NodeAPI is the node read surface the orchestration needs.
type NodeAPI interface {
	GetStateRootHash() (string, error)
	QueryGlobalState(rootHash, key string, path []string) (*rpc.StoredValue, error)
}

// Client runs the deploy orchestration flow: fetch the state root
// hash, resolve the contract package hash under it, submit a signed
// deploy through the external client.
type Client struct {
	config   config.Config
	node     NodeAPI
	runner   deploy.Runner
	resolver resolver.Config
	history  *storage.History
}

func New(config config.Config, node NodeAPI, runner deploy.Runner) *Client {
	return &Client{
		config:   config,
		node:     node,
		runner:   runner,
		resolver: resolver.DefaultConfig,
	}
}

// SetHistory attaches a local ledger that records every submission.
func (client *Client) SetHistory(history *storage.History) {
	client.history = history
}

func (client *Client) SetResolverConfig(config resolver.Config) {
	client.resolver = config
}

// StateRootHash fetches the current state root hash from the node.
func (client *Client) StateRootHash() (string, error) {
	return client.node.GetStateRootHash()
}

// ResolvePackageHash fetches a fresh state root hash and resolves the
// configured named key under it.
func (client *Client) ResolvePackageHash() (string, string, error) {
	rootHash, err := client.node.GetStateRootHash()
	if err != nil {
		return "", "", err
	}
	pkgHash, err := resolver.Resolve(client.node, client.resolver,
		rootHash, client.config.AccountKey, client.config.NamedKey)
	if err != nil {
		return "", "", err
	}
	return pkgHash, rootHash, nil
}

// Run executes the full flow for one entry point. The package hash is
// resolved under the same state root fetched at the start; every
// failure aborts the remaining steps.
func (client *Client) Run(entryPoint string, overrides map[string]string) (*deploy.Result, error) {
	rootHash, err := client.node.GetStateRootHash()
	if err != nil {
		return nil, err
	}
	logger.I().Infow("fetched state root hash", "root", rootHash)

	pkgHash, err := resolver.Resolve(client.node, client.resolver,
		rootHash, client.config.AccountKey, client.config.NamedKey)
	if err != nil {
		return nil, err
	}
	logger.I().Infow("resolved package hash", "package", pkgHash)

	args, err := registry.Build(entryPoint, overrides)
	if err != nil {
		return nil, err
	}
	res, err := deploy.Submit(client.runner, deploy.Params{
		ClientBin:     client.config.ClientBin,
		NodeURL:       client.config.NodeURL,
		ChainName:     client.config.ChainName,
		SecretKeyPath: client.config.SecretKeyPath,
		PaymentAmount: client.config.PaymentAmount,
		PackageHash:   pkgHash,
		EntryPoint:    entryPoint,
		Args:          args,
		TTL:           client.config.TTL,
	})
	if err != nil {
		return nil, err
	}
	logger.I().Infow("submitted deploy", "deploy", res.DeployHash, "entry", entryPoint)

	if client.history != nil {
		rec := &storage.DeployRecord{
			DeployHash:    res.DeployHash,
			EntryPoint:    entryPoint,
			PackageHash:   pkgHash,
			StateRootHash: rootHash,
			ChainName:     client.config.ChainName,
		}
		if err := client.history.Put(rec); err != nil {
			logger.I().Warnw("failed to record deploy", "error", err)
		}
	}
	return res, nil
}
