// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config carries one invocation's settings. It is built from the
// environment and command-line flags; nothing here falls back to an
// in-source secret or key path.
type Config struct {
	NodeURL        string
	AccountKey     string
	NamedKey       string
	ChainName      string
	SecretKeyPath  string
	PaymentAmount  string
	TTL            string
	ClientBin      string
	SchemaPath     string
	DataDir        string
	RequestTimeout time.Duration
}

var DefaultConfig = Config{
	NodeURL:        "http://127.0.0.1:7777",
	NamedKey:       "contract_package",
	ChainName:      "casper-test",
	PaymentAmount:  "5000000000",
	ClientBin:      "casper-client",
	DataDir:        "./",
	RequestTimeout: 10 * time.Second,
}

// FromEnv reads CASPER_* environment variables over DefaultConfig.
func FromEnv() Config {
	v := viper.New()
	v.SetEnvPrefix("casper")
	v.AutomaticEnv()

	v.SetDefault("node_url", DefaultConfig.NodeURL)
	v.SetDefault("account_key", DefaultConfig.AccountKey)
	v.SetDefault("named_key", DefaultConfig.NamedKey)
	v.SetDefault("chain_name", DefaultConfig.ChainName)
	v.SetDefault("secret_key_path", DefaultConfig.SecretKeyPath)
	v.SetDefault("payment_amount", DefaultConfig.PaymentAmount)
	v.SetDefault("ttl", DefaultConfig.TTL)
	v.SetDefault("client_bin", DefaultConfig.ClientBin)
	v.SetDefault("schema_path", DefaultConfig.SchemaPath)
	v.SetDefault("data_dir", DefaultConfig.DataDir)
	v.SetDefault("request_timeout", DefaultConfig.RequestTimeout)

	return Config{
		NodeURL:        v.GetString("node_url"),
		AccountKey:     v.GetString("account_key"),
		NamedKey:       v.GetString("named_key"),
		ChainName:      v.GetString("chain_name"),
		SecretKeyPath:  v.GetString("secret_key_path"),
		PaymentAmount:  v.GetString("payment_amount"),
		TTL:            v.GetString("ttl"),
		ClientBin:      v.GetString("client_bin"),
		SchemaPath:     v.GetString("schema_path"),
		DataDir:        v.GetString("data_dir"),
		RequestTimeout: v.GetDuration("request_timeout"),
	}
}

// Validate checks the settings a deploy submission cannot run without.
func (config Config) Validate() error {
	if config.AccountKey == "" {
		return errors.New("account key is required")
	}
	if config.SecretKeyPath == "" {
		return errors.New("secret key path is required")
	}
	return nil
}
