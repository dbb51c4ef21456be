package txbuild

import (
	"testing"

	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScriptOutput(t *testing.T) {
	// OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG
	scriptHex := "76a914" + "0000000000000000000000000000000000000000" + "88ac"

	out, err := NewScriptOutput(scriptHex, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), out.Satoshis)
	assert.Len(t, []byte(*out.LockingScript), 25)
	assert.False(t, out.IsData())
}

func TestNewScriptOutput_Invalid(t *testing.T) {
	_, err := NewScriptOutput("not hex", 1000)
	assert.ErrorIs(t, err, ErrConstruction)

	_, err = NewScriptOutput("", 1000)
	assert.ErrorIs(t, err, ErrConstruction)
}

func TestNewAddressOutput(t *testing.T) {
	privKey := generateTestKey(t)
	addr, lockHex := testDestination(t, privKey)

	out, err := NewAddressOutput(addr, 50000)
	require.NoError(t, err)
	assert.False(t, out.IsData())

	// Same script as locking directly to the key.
	fromHex, err := NewScriptOutput(lockHex, 50000)
	require.NoError(t, err)
	assert.Equal(t, []byte(*fromHex.LockingScript), []byte(*out.LockingScript))
}

func TestNewAddressOutput_Invalid(t *testing.T) {
	_, err := NewAddressOutput("definitely-not-an-address", 1000)
	assert.ErrorIs(t, err, ErrConstruction)
}

// --- data outputs ---

func TestNewDataOutput_Shape(t *testing.T) {
	item, err := DataHex("0xAABB")
	require.NoError(t, err)

	out, err := NewDataOutput([]DataItem{item, DataOp(script.Op0)}, 0)
	require.NoError(t, err)

	// OP_FALSE OP_RETURN, a 2-byte push, and a single zero opcode.
	assert.Equal(t,
		[]byte{script.Op0, script.OpRETURN, 0x02, 0xaa, 0xbb, script.Op0},
		[]byte(*out.LockingScript))
	assert.True(t, out.IsData())
}

func TestNewDataOutput_Empty(t *testing.T) {
	out, err := NewDataOutput(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{script.Op0, script.OpRETURN}, []byte(*out.LockingScript))
	assert.True(t, out.IsData())
}

func TestDataHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []byte
	}{
		{"0x prefix", "0xAABB", []byte{0xaa, 0xbb}},
		{"bare hex", "aabb", []byte{0xaa, 0xbb}},
		{"empty", "", []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := DataHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, item.data)
		})
	}
}

func TestDataHex_Invalid(t *testing.T) {
	_, err := DataHex("0xZZ")
	assert.ErrorIs(t, err, ErrConstruction)
}

func TestDataString(t *testing.T) {
	out, err := NewDataOutput([]DataItem{DataString("hello")}, 0)
	require.NoError(t, err)
	assert.Equal(t,
		[]byte{script.Op0, script.OpRETURN, 0x05, 'h', 'e', 'l', 'l', 'o'},
		[]byte(*out.LockingScript))
}

func TestOutput_IsData(t *testing.T) {
	tests := []struct {
		name   string
		script []byte
		want   bool
	}{
		{"false return", []byte{script.Op0, script.OpRETURN}, true},
		{"bare return", []byte{script.OpRETURN}, true},
		{"return with payload", []byte{script.OpRETURN, 0x01, 0xff}, true},
		{"p2pkh", append(append([]byte{0x76, 0xa9, 0x14}, make([]byte, 20)...), 0x88, 0xac), false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &Output{LockingScript: script.NewFromBytes(tt.script)}
			assert.Equal(t, tt.want, out.IsData())
		})
	}
}
