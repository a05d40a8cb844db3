package callargs

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

var owner = common.HexToAddress("0x000000000000000000000000000000000000dEaD")

func TestFormatScalars(t *testing.T) {
	t.Parallel()

	wide, ok := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	require.True(t, ok)

	require.Equal(t, "115792089237316195423570985008687907853269984665640564039457584007913129639935", Format(wide))
	require.Equal(t, "-5", Format(big.NewInt(-5)))
	require.Equal(t, "12345", Format(uint256.NewInt(12345)))
	require.Equal(t, "7", Format(json.Number("7")))
	require.Equal(t, "0x0102", Format([]byte{1, 2}))
	require.Equal(t, "0x0a0b", Format([2]byte{10, 11}))
	require.Equal(t, owner, Format(owner))
	require.Equal(t, true, Format(true))
	require.Equal(t, uint8(3), Format(uint8(3)))
	require.Equal(t, "text", Format("text"))
	require.Nil(t, Format(nil))
	require.Nil(t, Format((*big.Int)(nil)))
}

func TestFormatCollections(t *testing.T) {
	t.Parallel()

	require.Equal(t, []any{"1", "2"}, Format([]*big.Int{big.NewInt(1), big.NewInt(2)}))
	require.Equal(t, []any{}, Format([]*big.Int(nil)))
	require.Equal(t, []any{[]any{"1"}, []any{}}, Format([][]*big.Int{{big.NewInt(1)}, {}}))

	// Named keys win over positional duplicates.
	require.Equal(t,
		map[string]any{"amount": "5", "to": owner},
		Format(map[string]any{"0": big.NewInt(5), "1": owner, "amount": big.NewInt(5), "to": owner}))

	// Positional keys only fall back to an array.
	require.Equal(t, []any{"a", "b", "c"}, Format(map[string]any{"2": "c", "0": "a", "1": "b"}))

	require.Equal(t, map[string]any{"7": "8"}, Format(map[uint64]*big.Int{7: big.NewInt(8)}))
	require.Equal(t, map[string]any{"0": []any{"x"}}, Format(map[int][]string{0: {"x"}}))
	require.Equal(t, map[string]any{}, Format(map[string]any{}))
}

func TestFormatUnpackedTuple(t *testing.T) {
	t.Parallel()

	tupleType, err := abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "amount", Type: "uint256"},
		{Name: "owner", Type: "address"},
		{Name: "tags", Type: "bytes32[]"},
	})
	require.NoError(t, err)
	arrayType, err := abi.NewType("uint256[]", "", nil)
	require.NoError(t, err)
	args := abi.Arguments{{Name: "position", Type: tupleType}, {Name: "ids", Type: arrayType}}

	type position struct {
		Amount *big.Int
		Owner  common.Address
		Tags   [][32]byte
	}
	packed, err := args.Pack(
		position{Amount: big.NewInt(1000), Owner: owner, Tags: [][32]byte{{1}}},
		[]*big.Int{big.NewInt(1), big.NewInt(2)},
	)
	require.NoError(t, err)

	values, err := args.Unpack(packed)
	require.NoError(t, err)
	require.Len(t, values, 2)

	require.Equal(t, map[string]any{
		"amount": "1000",
		"owner":  owner,
		"tags":   []any{"0x0100000000000000000000000000000000000000000000000000000000000000"},
	}, Format(values[0]))
	require.Equal(t, []any{"1", "2"}, Format(values[1]))

	literal, err := FormatLiteral(values[0], "tuple")
	require.NoError(t, err)
	require.JSONEq(t,
		`["1000", "0x000000000000000000000000000000000000dead",
		  ["0x0100000000000000000000000000000000000000000000000000000000000000"]]`,
		literal)

	parsed, err := Parse(literal, "tuple")
	require.NoError(t, err)
	require.Len(t, parsed, 3)
}

func TestFormatLiteralRoundTrip(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		value any
		typ   string
		text  string
	}{
		{big.NewInt(42), "uint256", "42"},
		{true, "bool", "true"},
		{false, "bool", "false"},
		{owner, "address", "0x000000000000000000000000000000000000dEaD"},
		{"hello", "string", "hello"},
		{[]*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}, "uint256[]", "1,2,3"},
		{[2]bool{true, false}, "bool[2]", "true,false"},
		{[][]*big.Int{{big.NewInt(1)}, {big.NewInt(2), big.NewInt(3)}}, "uint256[][]", `[["1"],["2","3"]]`},
		{Absent, "uint256", ""},
	} {
		text, err := FormatLiteral(tc.value, tc.typ)
		require.NoError(t, err, tc.typ)
		require.Equal(t, tc.text, text, tc.typ)

		parsed, err := Parse(text, tc.typ)
		require.NoError(t, err, tc.typ)
		reformatted, err := FormatLiteral(parsed, tc.typ)
		require.NoError(t, err, tc.typ)
		require.Equal(t, text, reformatted, tc.typ)
	}

	_, err := FormatLiteral("scalar", "uint256[]")
	require.ErrorIs(t, err, ErrArgumentFormat)
}
