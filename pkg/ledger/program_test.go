package ledger

import (
	"crypto/ed25519"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/ledger-program/pkg/runtime"
)

func TestGetCommand(t *testing.T) {
	_, err := GetCommand(nil)
	assert.ErrorIs(t, err, runtime.ErrInvalidInstructionData)

	cmd, err := GetCommand([]byte{byte(CommandTransfer)})
	require.NoError(t, err)
	assert.Equal(t, CommandTransfer, cmd)

	// unrecognized discriminant
	cmd, err = GetCommand([]byte{0x09, 1, 2, 3})
	assert.ErrorIs(t, err, runtime.ErrInvalidInstructionData)
	assert.Equal(t, CommandUnknown, cmd)
}

func TestInitialize(t *testing.T) {
	keys := generateKeys(t, 2)

	instruction := Initialize(keys[0], keys[1], 100)

	assert.Equal(t, ProgramID, instruction.Program)

	// 1-byte discriminant followed by the amount as a little-endian u64
	expected := make([]byte, 9)
	expected[0] = byte(CommandInitialize)
	binary.LittleEndian.PutUint64(expected[1:], 100)
	assert.Equal(t, expected, instruction.Data)

	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[0].IsSigner)
	assert.False(t, instruction.Accounts[1].IsWritable)
	assert.True(t, instruction.Accounts[1].IsSigner)

	args, err := DecodeInitialize(instruction.Data)
	require.NoError(t, err)
	assert.EqualValues(t, 100, args.Amount)

	// truncated
	_, err = DecodeInitialize(instruction.Data[:5])
	assert.ErrorIs(t, err, runtime.ErrInvalidInstructionData)

	// oversized
	_, err = DecodeInitialize(append(instruction.Data, 0))
	assert.ErrorIs(t, err, runtime.ErrInvalidInstructionData)

	// wrong discriminant
	_, err = DecodeInitialize([]byte{byte(CommandTransfer), 0, 0, 0, 0, 0, 0, 0, 0})
	assert.Equal(t, runtime.ErrIncorrectInstruction, err)

	_, err = DecodeInitialize(nil)
	assert.Equal(t, runtime.ErrIncorrectInstruction, err)
}

func TestTransfer(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction := Transfer(keys[0], keys[1], keys[2], 42)

	assert.Equal(t, ProgramID, instruction.Program)
	assert.Len(t, instruction.Data, 1+transferArgsSize)
	assert.Equal(t, byte(CommandTransfer), instruction.Data[0])

	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.True(t, instruction.Accounts[1].IsWritable)
	assert.True(t, instruction.Accounts[2].IsSigner)
	assert.False(t, instruction.Accounts[2].IsWritable)

	args, err := DecodeTransfer(instruction.Data)
	require.NoError(t, err)
	assert.Equal(t, []byte(keys[0]), args.Source[:])
	assert.Equal(t, []byte(keys[1]), args.Destination[:])
	assert.EqualValues(t, 42, args.Amount)

	// truncated trailing bytes must fail decode, not zero-fill
	for _, size := range []int{1, 32, 64, len(instruction.Data) - 1} {
		_, err = DecodeTransfer(instruction.Data[:size])
		assert.ErrorIs(t, err, runtime.ErrInvalidInstructionData)
	}

	_, err = DecodeTransfer([]byte{byte(CommandInitialize)})
	assert.Equal(t, runtime.ErrIncorrectInstruction, err)
}

func TestCloseAccount(t *testing.T) {
	keys := generateKeys(t, 2)

	instruction := CloseAccount(keys[0], keys[1])

	assert.Equal(t, ProgramID, instruction.Program)
	assert.Equal(t, []byte{byte(CommandCloseAccount)}, instruction.Data)

	require.NoError(t, DecodeCloseAccount(instruction.Data))

	err := DecodeCloseAccount([]byte{byte(CommandCloseAccount), 0})
	assert.ErrorIs(t, err, runtime.ErrInvalidInstructionData)

	err = DecodeCloseAccount([]byte{byte(CommandInitialize)})
	assert.Equal(t, runtime.ErrIncorrectInstruction, err)
}

func TestDeriveBalanceAddress(t *testing.T) {
	keys := generateKeys(t, 2)

	a, err := DeriveBalanceAddress(keys[0])
	require.NoError(t, err)
	b, err := DeriveBalanceAddress(keys[1])
	require.NoError(t, err)

	assert.Len(t, []byte(a), ed25519.PublicKeySize)
	assert.NotEqual(t, a, b)

	// derivation is deterministic
	again, err := DeriveBalanceAddress(keys[0])
	require.NoError(t, err)
	assert.Equal(t, a, again)
}

func generateKeys(t *testing.T, amount int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, amount)

	for i := 0; i < amount; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)

		keys[i] = pub
	}

	return keys
}
