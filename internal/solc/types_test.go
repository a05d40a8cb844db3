package solc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const compilerOutput = `{
  "errors": [
    {"severity": "warning", "type": "Warning", "component": "general", "message": "unused variable",
     "formattedMessage": "Warning: unused variable"},
    {"severity": "error", "type": "TypeError", "component": "general", "message": "bad type",
     "sourceLocation": {"file": "Main.sol", "start": 10, "end": 20}}
  ],
  "sources": {"Main.sol": {"id": 0}},
  "contracts": {
    "Main.sol": {
      "Zeta": {"abi": [], "evm": {"bytecode": {"object": "60"}}},
      "Alpha": {"abi": [{"type": "constructor", "inputs": []}], "evm": {"bytecode": {"object": "6080"}}},
      "Mid": {"abi": [], "evm": {"bytecode": {"object": ""}}}
    }
  }
}`

func TestFileContractsKeepsEmissionOrder(t *testing.T) {
	t.Parallel()

	var out CompilerJsonOutput
	require.NoError(t, json.Unmarshal([]byte(compilerOutput), &out))

	contracts, err := out.FileContracts("Main.sol")
	require.NoError(t, err)
	require.Len(t, contracts, 3)
	require.Equal(t, "Zeta", contracts[0].Name)
	require.Equal(t, "Alpha", contracts[1].Name)
	require.Equal(t, "Mid", contracts[2].Name)
	require.Equal(t, "6080", contracts[1].Evm.Bytecode.Object)
	require.JSONEq(t, `[{"type": "constructor", "inputs": []}]`, string(contracts[1].Abi))

	contracts, err = out.FileContracts("Other.sol")
	require.NoError(t, err)
	require.Empty(t, contracts)
}

func TestFileContractsMalformed(t *testing.T) {
	t.Parallel()

	out := CompilerJsonOutput{
		Contracts: map[string]json.RawMessage{"Main.sol": json.RawMessage(`{"A": {"abi": `)},
	}
	_, err := out.FileContracts("Main.sol")
	require.Error(t, err)
}

func TestErrorsBySeverity(t *testing.T) {
	t.Parallel()

	var out CompilerJsonOutput
	require.NoError(t, json.Unmarshal([]byte(compilerOutput), &out))

	errs := out.ErrorsBySeverity(SeverityError)
	require.Len(t, errs, 1)
	require.Equal(t, "Main.sol:10: TypeError: bad type", errs[0].String())

	warnings := out.ErrorsBySeverity(SeverityWarning)
	require.Len(t, warnings, 1)
	require.Equal(t, "Warning: unused variable", warnings[0].String())

	require.Empty(t, out.ErrorsBySeverity(SeverityInfo))
}
