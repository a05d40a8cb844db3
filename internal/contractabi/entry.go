package contractabi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	TypeFunction    = "function"
	TypeEvent       = "event"
	TypeError       = "error"
	TypeConstructor = "constructor"
	TypeFallback    = "fallback"
	TypeReceive     = "receive"
)

const (
	MutabilityPure       = "pure"
	MutabilityView       = "view"
	MutabilityNonPayable = "nonpayable"
	MutabilityPayable    = "payable"
)

type Parameter struct {
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	InternalType string      `json:"internalType,omitempty"`
	Components   []Parameter `json:"components,omitempty"`
	Indexed      bool        `json:"indexed,omitempty"`
}

// CanonicalType returns the type with tuples expanded into their component types,
// e.g. "(uint256,address)[]".
func (p Parameter) CanonicalType() string {
	if !strings.HasPrefix(p.Type, "tuple") {
		return p.Type
	}
	types := make([]string, len(p.Components))
	for i, c := range p.Components {
		types[i] = c.CanonicalType()
	}
	return "(" + strings.Join(types, ",") + ")" + strings.TrimPrefix(p.Type, "tuple")
}

// Entry is a single element of a contract ABI.
type Entry struct {
	Type            string      `json:"type"`
	Name            string      `json:"name,omitempty"`
	Inputs          []Parameter `json:"inputs,omitempty"`
	Outputs         []Parameter `json:"outputs,omitempty"`
	StateMutability string      `json:"stateMutability,omitempty"`
	Anonymous       bool        `json:"anonymous,omitempty"`

	// Pre-0.5 compilers describe mutability with these flags.
	Constant *bool `json:"constant,omitempty"`
	Payable  *bool `json:"payable,omitempty"`
}

// Mutability returns the state mutability, derived from the legacy flags when absent.
func (e *Entry) Mutability() string {
	if e.StateMutability != "" {
		return e.StateMutability
	}
	switch {
	case e.Constant != nil && *e.Constant:
		return MutabilityView
	case e.Payable != nil && *e.Payable:
		return MutabilityPayable
	}
	return MutabilityNonPayable
}

// IsRead reports whether calling the function does not modify state.
func (e *Entry) IsRead() bool {
	m := e.Mutability()
	return m == MutabilityView || m == MutabilityPure
}

// Signature returns the canonical signature, e.g. "transfer(address,uint256)".
// Only functions, events and errors have one.
func (e *Entry) Signature() string {
	switch e.Type {
	case TypeFunction, TypeEvent, TypeError:
	default:
		return ""
	}
	types := make([]string, len(e.Inputs))
	for i, p := range e.Inputs {
		types[i] = p.CanonicalType()
	}
	return e.Name + "(" + strings.Join(types, ",") + ")"
}

// Selector returns the 4-byte selector of a function or error as hex.
func (e *Entry) Selector() string {
	if e.Type != TypeFunction && e.Type != TypeError {
		return ""
	}
	return hexutil.Encode(crypto.Keccak256([]byte(e.Signature()))[:4])
}

// Topic returns the topic of a non-anonymous event as hex.
func (e *Entry) Topic() string {
	if e.Type != TypeEvent || e.Anonymous {
		return ""
	}
	return crypto.Keccak256Hash([]byte(e.Signature())).Hex()
}

// ParseJSON decodes an ABI array. Entries without a type are functions, and
// mutability is filled in from the legacy flags.
func ParseJSON(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse abi: %w", err)
	}
	for i := range entries {
		e := &entries[i]
		if e.Type == "" {
			e.Type = TypeFunction
		}
		switch e.Type {
		case TypeFunction, TypeConstructor, TypeFallback, TypeReceive:
			e.StateMutability = e.Mutability()
		}
	}
	return entries, nil
}
