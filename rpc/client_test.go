// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package rpc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T, handler func(method string, params json.RawMessage) (interface{}, *RPCError)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rpc", r.URL.Path)
		var req struct {
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		result, rpcErr := handler(req.Method, req.Params)
		env := map[string]interface{}{"jsonrpc": "2.0", "id": 1}
		if rpcErr != nil {
			env["error"] = rpcErr
		} else {
			env["result"] = result
		}
		json.NewEncoder(w).Encode(env)
	}))
}

func TestGetStateRootHash(t *testing.T) {
	asrt := assert.New(t)

	srv := newTestServer(t, func(method string, params json.RawMessage) (interface{}, *RPCError) {
		asrt.Equal("chain_get_state_root_hash", method)
		return map[string]string{"state_root_hash": "abc123"}, nil
	})
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	rootHash, err := client.GetStateRootHash()

	asrt.NoError(err)
	asrt.Equal("abc123", rootHash)
}

func TestGetStateRootHashEmptyResult(t *testing.T) {
	asrt := assert.New(t)

	srv := newTestServer(t, func(method string, params json.RawMessage) (interface{}, *RPCError) {
		return map[string]string{}, nil
	})
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.GetStateRootHash()

	asrt.ErrorIs(err, ErrEmptyResult)
}

func TestGetStateRootHashUnreachable(t *testing.T) {
	asrt := assert.New(t)

	srv := newTestServer(t, func(method string, params json.RawMessage) (interface{}, *RPCError) {
		return nil, nil
	})
	srv.Close() // nothing listens anymore

	client := NewClient(srv.URL, time.Second)
	_, err := client.GetStateRootHash()

	asrt.ErrorIs(err, ErrConnectivity)
}

func TestGetStateRootHashBadStatus(t *testing.T) {
	asrt := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.GetStateRootHash()

	asrt.ErrorIs(err, ErrConnectivity)
}

func TestQueryGlobalState(t *testing.T) {
	asrt := assert.New(t)

	srv := newTestServer(t, func(method string, params json.RawMessage) (interface{}, *RPCError) {
		asrt.Equal("query_global_state", method)
		var p struct {
			StateIdentifier struct {
				StateRootHash string `json:"StateRootHash"`
			} `json:"state_identifier"`
			Key  string   `json:"key"`
			Path []string `json:"path"`
		}
		asrt.NoError(json.Unmarshal(params, &p))
		asrt.Equal("abc123", p.StateIdentifier.StateRootHash)
		asrt.Equal("account-hash-0102", p.Key)
		asrt.NotNil(p.Path)
		return map[string]interface{}{
			"stored_value": map[string]interface{}{
				"Account": map[string]interface{}{
					"account_hash": "account-hash-0102",
					"named_keys": []map[string]string{
						{"name": "my_package", "key": "contract-package-wasmdeadbeef"},
					},
				},
			},
		}, nil
	})
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	sv, err := client.QueryGlobalState("abc123", "account-hash-0102", nil)

	asrt.NoError(err)
	asrt.NotNil(sv.Account)
	asrt.Len(sv.Account.NamedKeys, 1)
	asrt.Equal("my_package", sv.Account.NamedKeys[0].Name)
	asrt.Equal("contract-package-wasmdeadbeef", sv.Account.NamedKeys[0].Key)
}

func TestQueryGlobalStateNotFound(t *testing.T) {
	asrt := assert.New(t)

	srv := newTestServer(t, func(method string, params json.RawMessage) (interface{}, *RPCError) {
		return nil, &RPCError{Code: CodeQueryFailed, Message: "query failed"}
	})
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.QueryGlobalState("abc123", "account-hash-0102", nil)

	asrt.ErrorIs(err, ErrNotFound)
}

func TestQueryGlobalStateMissingStoredValue(t *testing.T) {
	asrt := assert.New(t)

	// a result without stored_value must fail loudly,
	// never pass as an empty success
	srv := newTestServer(t, func(method string, params json.RawMessage) (interface{}, *RPCError) {
		return map[string]string{"api_version": "2.0.0"}, nil
	})
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	sv, err := client.QueryGlobalState("abc123", "account-hash-0102", nil)

	asrt.ErrorIs(err, ErrMalformedResponse)
	asrt.Nil(sv)
}

func TestQueryGlobalStateBadJSON(t *testing.T) {
	asrt := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.QueryGlobalState("abc123", "account-hash-0102", nil)

	asrt.ErrorIs(err, ErrMalformedResponse)
}
