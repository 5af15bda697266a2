// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package deploy

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/wooyang2018/casper-deploy/logger"
	"github.com/wooyang2018/casper-deploy/registry"
)

var ErrSubmission = errors.New("deploy submission failed")

const DefaultClientBin = "casper-client"

// Runner abstracts the external signing client invocation.
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
}

// ExecRunner invokes the client binary, returning its stdout.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) ([]byte, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return out, fmt.Errorf("%v, %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return out, err
	}
	return out, nil
}

// Params carries everything a signed deploy submission needs. Signing
// and serialization stay inside the external client.
type Params struct {
	ClientBin     string
	NodeURL       string
	ChainName     string
	SecretKeyPath string
	PaymentAmount string
	PackageHash   string
	EntryPoint    string
	Args          []registry.Arg
	TTL           string
	Timestamp     string
}

type Result struct {
	DeployHash string
}

// Submit invokes the external client's put-deploy and parses the
// submitted deploy hash out of its json output. Re-invocation with
// identical params yields a distinct deploy every time.
func Submit(runner Runner, params Params) (*Result, error) {
	args := params.Args
	if args == nil {
		args = []registry.Arg{}
	}
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmission, err)
	}
	bin := params.ClientBin
	if bin == "" {
		bin = DefaultClientBin
	}
	cliArgs := []string{
		"put-deploy",
		"--node-address", params.NodeURL,
		"--chain-name", params.ChainName,
		"--secret-key", params.SecretKeyPath,
		"--payment-amount", params.PaymentAmount,
		"--session-package-hash", params.PackageHash,
		"--session-entry-point", params.EntryPoint,
		"--session-args-json", string(argsJSON),
	}
	if params.TTL != "" {
		cliArgs = append(cliArgs, "--ttl", params.TTL)
	}
	if params.Timestamp != "" {
		cliArgs = append(cliArgs, "--timestamp", params.Timestamp)
	}

	logger.I().Debugw("invoking signing client", "bin", bin,
		"entry", params.EntryPoint, "package", params.PackageHash)
	out, err := runner.Run(bin, cliArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmission, err)
	}
	var env struct {
		Result struct {
			DeployHash string `json:"deploy_hash"`
		} `json:"result"`
	}
	if err := json.Unmarshal(out, &env); err != nil {
		return nil, fmt.Errorf("%w: bad client output, %v", ErrSubmission, err)
	}
	if env.Result.DeployHash == "" {
		return nil, fmt.Errorf("%w: no deploy hash in client output", ErrSubmission)
	}
	return &Result{DeployHash: env.Result.DeployHash}, nil
}
