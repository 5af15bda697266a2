// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package rpc

// NamedKey maps an account-scoped label to a stored key string.
type NamedKey struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// Account is the stored value of an account under pre-condor nodes.
type Account struct {
	AccountHash string     `json:"account_hash"`
	NamedKeys   []NamedKey `json:"named_keys"`
}

// AddressableEntity is the stored value of an account or contract
// under condor nodes.
type AddressableEntity struct {
	PackageHash string     `json:"package_hash"`
	NamedKeys   []NamedKey `json:"named_keys"`
}

// Contract is the stored value of a deployed contract version.
type Contract struct {
	ContractPackageHash string     `json:"contract_package_hash"`
	NamedKeys           []NamedKey `json:"named_keys"`
}

// StoredValue is the union of entity kinds a global state query can
// yield. Exactly one field is set in a well-formed response.
type StoredValue struct {
	Account           *Account           `json:"Account,omitempty"`
	AddressableEntity *AddressableEntity `json:"AddressableEntity,omitempty"`
	Contract          *Contract          `json:"Contract,omitempty"`
}
