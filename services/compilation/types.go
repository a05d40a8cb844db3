package compilation

import (
	"encoding/json"
	"errors"

	"github.com/NilFoundation/solforge/internal/contractabi"
	"github.com/NilFoundation/solforge/internal/solc"
)

// Request describes a single-entry compilation.
type Request struct {
	Source          string         `json:"source" yaml:"source"`
	FileName        string         `json:"fileName" yaml:"fileName"`
	CompilerVersion string         `json:"compilerVersion" yaml:"compilerVersion"`
	Optimizer       solc.Optimizer `json:"optimizer" yaml:"optimizer"`
	EvmVersion      string         `json:"evmVersion,omitempty" yaml:"evmVersion,omitempty"`
	// ContractName picks a contract of the entry file. Empty selects the first one the compiler emitted.
	ContractName string `json:"contractName,omitempty" yaml:"contractName,omitempty"`
	// Sources are workspace files keyed by source-unit name. They take precedence over fetched ones.
	Sources map[string]string `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// Result is the outcome of Compile. Failures carry only Message and, for compiler errors, Diagnostics.
type Result struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty"`

	ContractName      string                  `json:"contractName,omitempty"`
	Abi               json.RawMessage         `json:"abi,omitempty"`
	Bytecode          string                  `json:"bytecode,omitempty"`
	ConstructorInputs []contractabi.Parameter `json:"constructorInputs,omitempty"`
	Flattened         string                  `json:"flattened,omitempty"`

	CompilerVersion string          `json:"compilerVersion,omitempty"`
	Optimizer       *solc.Optimizer `json:"optimizer,omitempty"`
	EvmVersion      string          `json:"evmVersion,omitempty"`
}

func failure(err error) *Result {
	res := &Result{Success: false, Message: err.Error()}
	var ce *CompilationError
	if errors.As(err, &ce) {
		res.Diagnostics = ce.Diagnostics
	}
	return res
}
