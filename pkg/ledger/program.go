package ledger

import (
	"crypto/ed25519"
	"math"

	"github.com/mr-tron/base58"
	"github.com/near/borsh-go"
	"github.com/pkg/errors"

	"github.com/code-payments/ledger-program/pkg/runtime"
)

// ProgramID is the address of the ledger program.
var (
	ProgramAddress = mustBase58Decode("Bq6E5xNrchz4dqCKezmo5TwyLsGSW297KUTAKN2o3FvW")
	ProgramID      = ed25519.PublicKey(ProgramAddress)
)

// Balance accounts are program addresses derived from the holder's key.
var balanceAddressSeed = []byte("balance")

type Command byte

const (
	CommandInitialize Command = iota
	CommandTransfer
	CommandCloseAccount

	CommandUnknown = Command(math.MaxUint8)
)

const (
	initializeArgsSize = 8
	transferArgsSize   = 2*ed25519.PublicKeySize + 8
)

// InitializeArgs are the Borsh-encoded arguments of CommandInitialize.
type InitializeArgs struct {
	Amount uint64
}

// TransferArgs are the Borsh-encoded arguments of CommandTransfer. The
// source and destination identities travel in the payload and must match
// the balance accounts referenced by the instruction.
type TransferArgs struct {
	Source      [32]uint8
	Destination [32]uint8
	Amount      uint64
}

// GetCommand returns the command selected by the payload's leading
// discriminant. Payloads with an unrecognized discriminant are rejected.
func GetCommand(data []byte) (Command, error) {
	if len(data) == 0 {
		return CommandUnknown, errors.Wrap(runtime.ErrInvalidInstructionData, "instruction missing data")
	}
	if data[0] > byte(CommandCloseAccount) {
		return CommandUnknown, errors.Wrapf(runtime.ErrInvalidInstructionData, "unknown command: %d", data[0])
	}

	return Command(data[0]), nil
}

// DeriveBalanceAddress derives the address of holder's balance account.
func DeriveBalanceAddress(holder ed25519.PublicKey) (ed25519.PublicKey, error) {
	return runtime.FindProgramAddress(ProgramID, balanceAddressSeed, holder)
}

// Initialize creates an instruction that initializes a balance account
// with an opening amount.
//
// Accounts expected by this instruction:
//
//	0. `[writable]` The balance account to initialize.
//	1. `[signer]` The holder of the balance account.
func Initialize(account, holder ed25519.PublicKey, amount uint64) runtime.Instruction {
	data := make([]byte, 1+initializeArgsSize)
	data[0] = byte(CommandInitialize)

	args, _ := borsh.Serialize(InitializeArgs{Amount: amount})
	copy(data[1:], args)

	return runtime.NewInstruction(
		ProgramID,
		data,
		runtime.NewAccountMeta(account, false),
		runtime.NewReadonlyAccountMeta(holder, true),
	)
}

// DecodeInitialize decodes the arguments of a CommandInitialize payload.
func DecodeInitialize(data []byte) (*InitializeArgs, error) {
	if len(data) == 0 || Command(data[0]) != CommandInitialize {
		return nil, runtime.ErrIncorrectInstruction
	}
	if len(data) != 1+initializeArgsSize {
		return nil, errors.Wrapf(runtime.ErrInvalidInstructionData, "invalid instruction data size: %d", len(data))
	}

	var args InitializeArgs
	if err := borsh.Deserialize(&args, data[1:]); err != nil {
		return nil, errors.Wrap(runtime.ErrInvalidInstructionData, err.Error())
	}

	return &args, nil
}

// Transfer creates an instruction that moves amount from the source
// balance account to the destination balance account.
//
// Accounts expected by this instruction:
//
//	0. `[writable]` The source balance account.
//	1. `[writable]` The destination balance account.
//	2. `[signer]` The holder of the source balance account.
func Transfer(source, destination, holder ed25519.PublicKey, amount uint64) runtime.Instruction {
	var args TransferArgs
	copy(args.Source[:], source)
	copy(args.Destination[:], destination)
	args.Amount = amount

	data := make([]byte, 1+transferArgsSize)
	data[0] = byte(CommandTransfer)

	serialized, _ := borsh.Serialize(args)
	copy(data[1:], serialized)

	return runtime.NewInstruction(
		ProgramID,
		data,
		runtime.NewAccountMeta(source, false),
		runtime.NewAccountMeta(destination, false),
		runtime.NewReadonlyAccountMeta(holder, true),
	)
}

// DecodeTransfer decodes the arguments of a CommandTransfer payload.
// Truncated or oversized payloads fail decode rather than zero-fill.
func DecodeTransfer(data []byte) (*TransferArgs, error) {
	if len(data) == 0 || Command(data[0]) != CommandTransfer {
		return nil, runtime.ErrIncorrectInstruction
	}
	if len(data) != 1+transferArgsSize {
		return nil, errors.Wrapf(runtime.ErrInvalidInstructionData, "invalid instruction data size: %d", len(data))
	}

	var args TransferArgs
	if err := borsh.Deserialize(&args, data[1:]); err != nil {
		return nil, errors.Wrap(runtime.ErrInvalidInstructionData, err.Error())
	}

	return &args, nil
}

// CloseAccount creates an instruction that closes an empty balance
// account.
//
// Accounts expected by this instruction:
//
//	0. `[writable]` The balance account to close.
//	1. `[signer]` The holder of the balance account.
func CloseAccount(account, holder ed25519.PublicKey) runtime.Instruction {
	return runtime.NewInstruction(
		ProgramID,
		[]byte{byte(CommandCloseAccount)},
		runtime.NewAccountMeta(account, false),
		runtime.NewReadonlyAccountMeta(holder, true),
	)
}

// DecodeCloseAccount validates a CommandCloseAccount payload, which
// carries no arguments.
func DecodeCloseAccount(data []byte) error {
	if len(data) == 0 || Command(data[0]) != CommandCloseAccount {
		return runtime.ErrIncorrectInstruction
	}
	if len(data) != 1 {
		return errors.Wrapf(runtime.ErrInvalidInstructionData, "invalid instruction data size: %d", len(data))
	}

	return nil
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
