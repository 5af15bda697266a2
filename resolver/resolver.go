// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package resolver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wooyang2018/casper-deploy/logger"
	"github.com/wooyang2018/casper-deploy/rpc"
)

var ErrMissingNamedKey = errors.New("missing named key")

// key prefixes a package identifier may carry, longest first
var packagePrefixes = []string{
	"contract-package-wasm",
	"contract-package-",
	"package-",
	"hash-",
}

// Client is the read surface of rpc.Client needed for resolution.
type Client interface {
	QueryGlobalState(rootHash, key string, path []string) (*rpc.StoredValue, error)
}

type Config struct {
	Interval    time.Duration
	MaxAttempts int
}

// DefaultConfig retries resolution for roughly 15 seconds overall,
// doubling the interval each attempt.
var DefaultConfig = Config{
	Interval:    500 * time.Millisecond,
	MaxAttempts: 6,
}

// PackageHash extracts the package identifier stored under namedKey in
// an addressable-entity value, stripped of its key prefix.
func PackageHash(sv *rpc.StoredValue, namedKey string) (string, error) {
	keys, err := namedKeys(sv)
	if err != nil {
		return "", err
	}
	for _, nk := range keys {
		if nk.Name == namedKey {
			return StripPrefix(nk.Key), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrMissingNamedKey, namedKey)
}

// StripPrefix removes the key-kind marker from a raw package
// identifier, returning the bare hex digest.
func StripPrefix(key string) string {
	for _, prefix := range packagePrefixes {
		if strings.HasPrefix(key, prefix) {
			return strings.TrimPrefix(key, prefix)
		}
	}
	return key
}

// Resolve polls the account entity under rootHash until namedKey shows
// up, with exponentially backed-off attempts bounded by config. A
// freshly deployed contract may not be indexed yet when the account is
// first queried, so absence is retried; every other failure aborts.
// All attempts query the same state root.
func Resolve(client Client, config Config, rootHash, accountKey, namedKey string) (string, error) {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	interval := config.Interval
	var lastErr error
	for i := 0; i < config.MaxAttempts; i++ {
		if i > 0 {
			logger.I().Debugw("retrying resolution", "attempt", i, "interval", interval)
			time.Sleep(interval)
			interval *= 2
		}
		sv, err := client.QueryGlobalState(rootHash, accountKey, nil)
		if err != nil {
			if !errors.Is(err, rpc.ErrNotFound) {
				return "", err
			}
			lastErr = err
			continue
		}
		hash, err := PackageHash(sv, namedKey)
		if err != nil {
			if !errors.Is(err, ErrMissingNamedKey) {
				return "", err
			}
			lastErr = err
			continue
		}
		return hash, nil
	}
	return "", lastErr
}

func namedKeys(sv *rpc.StoredValue) ([]rpc.NamedKey, error) {
	switch {
	case sv == nil:
		return nil, fmt.Errorf("%w: no stored value", rpc.ErrMalformedResponse)
	case sv.Account != nil:
		return sv.Account.NamedKeys, nil
	case sv.AddressableEntity != nil:
		return sv.AddressableEntity.NamedKeys, nil
	case sv.Contract != nil:
		return sv.Contract.NamedKeys, nil
	}
	return nil, fmt.Errorf("%w: no entity with named keys in stored value", rpc.ErrMalformedResponse)
}
