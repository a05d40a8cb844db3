package contractabi

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const erc20Abi = `[
  {"type": "constructor", "inputs": [{"name": "name_", "type": "string"}, {"name": "supply", "type": "uint256"}], "stateMutability": "nonpayable"},
  {"type": "function", "name": "transfer", "inputs": [{"name": "to", "type": "address"}, {"name": "value", "type": "uint256"}], "outputs": [{"name": "", "type": "bool"}], "stateMutability": "nonpayable"},
  {"type": "function", "name": "balanceOf", "inputs": [{"name": "account", "type": "address"}], "outputs": [{"name": "", "type": "uint256"}], "stateMutability": "view"},
  {"type": "function", "name": "approve", "inputs": [{"name": "spender", "type": "address"}, {"name": "value", "type": "uint256"}], "outputs": [{"name": "", "type": "bool"}], "stateMutability": "nonpayable"},
  {"type": "function", "name": "decimals", "inputs": [], "outputs": [{"name": "", "type": "uint8"}], "stateMutability": "pure"},
  {"type": "function", "name": "deposit", "inputs": [], "outputs": [], "stateMutability": "payable"},
  {"type": "function", "name": "submit", "inputs": [{"name": "orders", "type": "tuple[]", "components": [{"name": "maker", "type": "address"}, {"name": "amounts", "type": "uint256[2]"}]}], "outputs": [], "stateMutability": "nonpayable"},
  {"type": "event", "name": "Transfer", "anonymous": false, "inputs": [{"name": "from", "type": "address", "indexed": true}, {"name": "to", "type": "address", "indexed": true}, {"name": "value", "type": "uint256", "indexed": false}]},
  {"type": "event", "name": "Approval", "anonymous": false, "inputs": [{"name": "owner", "type": "address", "indexed": true}, {"name": "spender", "type": "address", "indexed": true}, {"name": "value", "type": "uint256", "indexed": false}]},
  {"type": "error", "name": "InsufficientBalance", "inputs": [{"name": "needed", "type": "uint256"}]},
  {"type": "fallback", "stateMutability": "nonpayable"},
  {"type": "receive", "stateMutability": "payable"}
]`

func names(entries []Entry) []string {
	res := make([]string, len(entries))
	for i, e := range entries {
		res[i] = e.Name
	}
	return res
}

func TestCategorize(t *testing.T) {
	t.Parallel()

	entries, err := ParseJSON([]byte(erc20Abi))
	require.NoError(t, err)

	c := Categorize(entries)
	require.Equal(t, []string{"balanceOf", "decimals"}, names(c.ReadFunctions))
	require.Equal(t, []string{"approve", "deposit", "submit", "transfer"}, names(c.WriteFunctions))
	require.Equal(t, []string{"Approval", "Transfer"}, names(c.Events))
	require.Equal(t, []string{"InsufficientBalance"}, names(c.Errors))

	require.NotNil(t, c.Constructor)
	require.Len(t, c.Constructor.Inputs, 2)
	require.NotNil(t, c.Fallback)
	require.NotNil(t, c.Receive)
	require.Equal(t, MutabilityPayable, c.Receive.StateMutability)

	inputs := ConstructorInputs(entries)
	require.Equal(t, "name_", inputs[0].Name)
	require.Empty(t, ConstructorInputs(nil))
}

func TestCategorizeLegacyAbi(t *testing.T) {
	t.Parallel()

	entries, err := ParseJSON([]byte(`[
		{"name": "get", "constant": true, "inputs": [], "outputs": [{"name": "", "type": "uint256"}], "payable": false},
		{"name": "set", "constant": false, "inputs": [{"name": "x", "type": "uint256"}], "outputs": [], "payable": false},
		{"name": "buy", "constant": false, "inputs": [], "outputs": [], "payable": true},
		{"type": "fallback", "payable": true}
	]`))
	require.NoError(t, err)
	require.Equal(t, TypeFunction, entries[0].Type)
	require.Equal(t, MutabilityView, entries[0].StateMutability)
	require.Equal(t, MutabilityPayable, entries[3].StateMutability)

	c := Categorize(entries)
	require.Equal(t, []string{"get"}, names(c.ReadFunctions))
	require.Equal(t, []string{"buy", "set"}, names(c.WriteFunctions))
	require.Nil(t, c.Constructor)
	require.Equal(t, MutabilityPayable, c.Fallback.Mutability())
}

func TestCategorizeSingularLastWins(t *testing.T) {
	t.Parallel()

	c := Categorize([]Entry{
		{Type: TypeConstructor, Inputs: []Parameter{{Name: "a", Type: "uint256"}}},
		{Type: TypeConstructor, Inputs: []Parameter{{Name: "b", Type: "address"}}},
	})
	require.Equal(t, "b", c.Constructor.Inputs[0].Name)
}

func TestCategorizeStableOverloads(t *testing.T) {
	t.Parallel()

	c := Categorize([]Entry{
		{Type: TypeFunction, Name: "mint", Inputs: []Parameter{{Type: "address"}}},
		{Type: TypeFunction, Name: "burn"},
		{Type: TypeFunction, Name: "mint", Inputs: []Parameter{{Type: "address"}, {Type: "uint256"}}},
	})
	require.Equal(t, []string{"burn", "mint", "mint"}, names(c.WriteFunctions))
	require.Equal(t, "mint(address)", c.WriteFunctions[1].Signature())
	require.Equal(t, "mint(address,uint256)", c.WriteFunctions[2].Signature())
}

func TestSelectorsMatchGoEthereum(t *testing.T) {
	t.Parallel()

	entries, err := ParseJSON([]byte(erc20Abi))
	require.NoError(t, err)
	c := Categorize(entries)

	parsed, err := abi.JSON(strings.NewReader(erc20Abi))
	require.NoError(t, err)

	selectors := c.Selectors()
	for _, m := range parsed.Methods {
		require.Equal(t, hexutil.Encode(m.ID), selectors[m.Sig], m.Sig)
	}
	require.Equal(t, "0xa9059cbb", selectors["transfer(address,uint256)"])
	require.Contains(t, selectors, "submit((address,uint256[2])[])")
	errId := parsed.Errors["InsufficientBalance"].ID
	require.Equal(t, hexutil.Encode(errId[:4]), selectors["InsufficientBalance(uint256)"])

	topics := c.Topics()
	for _, e := range parsed.Events {
		require.Equal(t, e.ID.Hex(), topics[e.Sig], e.Sig)
	}
	require.Equal(t,
		"0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
		topics["Transfer(address,address,uint256)"])
}

func TestCategorizePartition(t *testing.T) {
	t.Parallel()

	kinds := []string{TypeFunction, TypeEvent, TypeError, TypeConstructor, TypeFallback, TypeReceive}
	mutabilities := []string{MutabilityPure, MutabilityView, MutabilityNonPayable, MutabilityPayable, ""}

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(t, "n")
		entries := make([]Entry, n)
		functions := 0
		for i := range entries {
			kind := rapid.SampledFrom(kinds).Draw(t, "kind")
			entries[i] = Entry{
				Type:            kind,
				Name:            rapid.StringMatching(`[a-c]{0,3}`).Draw(t, "name"),
				StateMutability: rapid.SampledFrom(mutabilities).Draw(t, "mutability"),
			}
			if kind == TypeFunction {
				functions++
			}
		}

		c := Categorize(entries)
		require.Equal(t, functions, len(c.ReadFunctions)+len(c.WriteFunctions))
		for _, list := range [][]Entry{c.ReadFunctions, c.WriteFunctions, c.Events, c.Errors} {
			require.True(t, slices.IsSortedFunc(list, byName), fmt.Sprint(names(list)))
		}
		for _, e := range c.ReadFunctions {
			require.True(t, e.IsRead())
		}
		for _, e := range c.WriteFunctions {
			require.False(t, e.IsRead())
		}
	})
}
