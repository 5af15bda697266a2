// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wooyang2018/casper-deploy/logger"
)

var (
	ErrConnectivity      = errors.New("node unreachable")
	ErrEmptyResult       = errors.New("empty result")
	ErrMalformedResponse = errors.New("malformed response")
	ErrNotFound          = errors.New("not found")
)

// CodeQueryFailed is returned by the node when a global state
// query does not resolve under the given key and path.
const CodeQueryFailed = -32003

// RPCError is an error object from a json-rpc response envelope.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d, %s", e.Code, e.Message)
}

// Client issues read requests against the json-rpc surface of a node.
type Client struct {
	endpoint string
	client   *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// GetStateRootHash fetches the hash identifying the current global
// state snapshot. It is fetched fresh per invocation, never cached.
func (c *Client) GetStateRootHash() (string, error) {
	var res struct {
		StateRootHash string `json:"state_root_hash"`
	}
	if err := c.call("chain_get_state_root_hash", nil, &res); err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			return "", fmt.Errorf("%w: %v", ErrEmptyResult, rpcErr)
		}
		return "", err
	}
	if res.StateRootHash == "" {
		return "", fmt.Errorf("%w: no state_root_hash in response", ErrEmptyResult)
	}
	return res.StateRootHash, nil
}

// QueryGlobalState queries the stored value under key and path at the
// given state root. A missing stored_value field is reported as a
// malformed response, never as an empty success.
func (c *Client) QueryGlobalState(rootHash, key string, path []string) (*StoredValue, error) {
	if path == nil {
		path = []string{}
	}
	params := &queryParams{
		StateIdentifier: stateIdentifier{StateRootHash: rootHash},
		Key:             key,
		Path:            path,
	}
	var res struct {
		StoredValue *StoredValue `json:"stored_value"`
	}
	if err := c.call("query_global_state", params, &res); err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) && rpcErr.Code == CodeQueryFailed {
			return nil, fmt.Errorf("%w: %s under %s", ErrNotFound, key, rootHash)
		}
		return nil, err
	}
	if res.StoredValue == nil {
		return nil, fmt.Errorf("%w: no stored_value in response", ErrMalformedResponse)
	}
	return res.StoredValue, nil
}

type request struct {
	JsonRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

type stateIdentifier struct {
	StateRootHash string `json:"StateRootHash"`
}

type queryParams struct {
	StateIdentifier stateIdentifier `json:"state_identifier"`
	Key             string          `json:"key"`
	Path            []string        `json:"path"`
}

func (c *Client) call(method string, params, out interface{}) error {
	b, err := json.Marshal(&request{
		JsonRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}
	logger.I().Debugw("rpc request", "method", method, "endpoint", c.endpoint)
	resp, err := c.client.Post(c.endpoint+"/rpc", "application/json", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status code %d, %s", ErrConnectivity, resp.StatusCode, string(msg))
	}
	var env response
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if env.Error != nil {
		return env.Error
	}
	if env.Result == nil {
		return fmt.Errorf("%w: no result in response", ErrEmptyResult)
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
