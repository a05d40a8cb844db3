package solc

import (
	"encoding/json"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// CompilerJsonInput represents the input structure for the solidity compiler.
type CompilerJsonInput struct {
	Language string             `json:"language"`
	Sources  map[string]*Source `json:"sources"`
	Settings CompilerSettings   `json:"settings"`
}

type Source struct {
	Keccak256 string   `json:"keccak256,omitempty"`
	Urls      []string `json:"urls,omitempty"`
	Content   string   `json:"content,omitempty"`
}

type CompilerSettings struct {
	Remappings      []string       `json:"remappings,omitempty"`
	Optimizer       Optimizer      `json:"optimizer"`
	EvmVersion      string         `json:"evmVersion,omitempty"`
	ViaIR           bool           `json:"viaIR,omitempty"` //nolint:tagliatelle
	OutputSelection map[string]any `json:"outputSelection,omitempty"`
}

type Optimizer struct {
	Enabled bool `json:"enabled"`
	Runs    int  `json:"runs"`
}

// CompilerJsonOutput represents the output structure of the solidity compiler.
// Contracts are kept raw per file so that their emission order can be recovered, see FileContracts.
type CompilerJsonOutput struct {
	Errors    []CompilerOutputError           `json:"errors"`
	Sources   map[string]CompilerOutputSource `json:"sources"`
	Contracts map[string]json.RawMessage      `json:"contracts"`
}

type CompilerOutputError struct {
	SourceLocation   *SourceLocation `json:"sourceLocation,omitempty"`
	Type             string          `json:"type"`
	Component        string          `json:"component"`
	Severity         string          `json:"severity"`
	ErrorCode        string          `json:"errorCode,omitempty"`
	Message          string          `json:"message"`
	FormattedMessage string          `json:"formattedMessage,omitempty"`
}

// String returns the formatted compiler message if present.
func (e CompilerOutputError) String() string {
	if e.FormattedMessage != "" {
		return e.FormattedMessage
	}
	if e.SourceLocation != nil {
		return fmt.Sprintf("%s:%d: %s: %s", e.SourceLocation.File, e.SourceLocation.Start, e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

type SourceLocation struct {
	File  string `json:"file"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type CompilerOutputSource struct {
	Id int `json:"id"`
}

type CompilerOutputContract struct {
	Abi      json.RawMessage `json:"abi"`
	Metadata string          `json:"metadata,omitempty"`
	Evm      EvmOutput       `json:"evm"`
}

type EvmOutput struct {
	Bytecode          CompilerOutputEvm `json:"bytecode"`
	DeployedBytecode  CompilerOutputEvm `json:"deployedBytecode"`
	MethodIdentifiers map[string]string `json:"methodIdentifiers,omitempty"`
}

type CompilerOutputEvm struct {
	Object string `json:"object,omitempty"`
}

// NamedContract is a contract artifact together with its name inside a source file.
type NamedContract struct {
	Name string
	CompilerOutputContract
}

// ErrorsBySeverity returns the diagnostics with the given severity.
func (o *CompilerJsonOutput) ErrorsBySeverity(severity string) []CompilerOutputError {
	var res []CompilerOutputError
	for _, e := range o.Errors {
		if e.Severity == severity {
			res = append(res, e)
		}
	}
	return res
}

// FileContracts returns the contracts produced for the given source file in the order
// the compiler emitted them.
func (o *CompilerJsonOutput) FileContracts(fileName string) ([]NamedContract, error) {
	raw, ok := o.Contracts[fileName]
	if !ok || len(raw) == 0 {
		return nil, nil
	}

	var res []NamedContract
	iter := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowIterator(raw)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnIterator(iter)

	iter.ReadObjectCB(func(it *jsoniter.Iterator, name string) bool {
		var c CompilerOutputContract
		it.ReadVal(&c)
		if it.Error != nil {
			return false
		}
		res = append(res, NamedContract{Name: name, CompilerOutputContract: c})
		return true
	})
	if iter.Error != nil {
		return nil, fmt.Errorf("failed to decode contracts of %s: %w", fileName, iter.Error)
	}
	return res, nil
}
