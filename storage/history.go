// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"time"

	badger "github.com/dgraph-io/badger/v3"
)

var ErrNotFound = errors.New("not found")

// data collection prefixes for different data collections
const (
	colDeployByTime byte = iota + 1 // deploy record by submission time
	colDeployCount                  // total submitted deploy count
)

// DeployRecord is one submitted deploy as remembered locally.
type DeployRecord struct {
	DeployHash    string    `json:"deploy_hash"`
	EntryPoint    string    `json:"entry_point"`
	PackageHash   string    `json:"package_hash"`
	StateRootHash string    `json:"state_root_hash"`
	ChainName     string    `json:"chain_name"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// History is an append-only local ledger of submitted deploys.
type History struct {
	db *badger.DB
}

func OpenHistory(dir string) (*History, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &History{db: db}, nil
}

func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) Put(rec *DeployRecord) error {
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = time.Now()
	}
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	key := make([]byte, 9)
	key[0] = colDeployByTime
	binary.BigEndian.PutUint64(key[1:], uint64(rec.SubmittedAt.UnixNano()))
	return h.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, value); err != nil {
			return err
		}
		count, err := getCount(txn)
		if err != nil {
			return err
		}
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, count+1)
		return txn.Set([]byte{colDeployCount}, b)
	})
}

// List returns up to limit records, newest first. limit <= 0 means all.
func (h *History) List(limit int) ([]*DeployRecord, error) {
	var recs []*DeployRecord
	err := h.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := []byte{colDeployByTime}
		seek := make([]byte, 9)
		seek[0] = colDeployByTime
		for i := 1; i < len(seek); i++ {
			seek[i] = 0xff
		}
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(recs) >= limit {
				break
			}
			err := it.Item().Value(func(val []byte) error {
				rec := new(DeployRecord)
				if err := json.Unmarshal(val, rec); err != nil {
					return err
				}
				recs = append(recs, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return recs, err
}

func (h *History) Count() (uint64, error) {
	var count uint64
	err := h.db.View(func(txn *badger.Txn) error {
		var err error
		count, err = getCount(txn)
		return err
	})
	return count, err
}

func getCount(txn *badger.Txn) (uint64, error) {
	item, err := txn.Get([]byte{colDeployCount})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var count uint64
	err = item.Value(func(val []byte) error {
		count = binary.BigEndian.Uint64(val)
		return nil
	})
	return count, err
}
