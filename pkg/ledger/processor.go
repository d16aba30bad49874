package ledger

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/code-payments/ledger-program/pkg/runtime"
)

// Entrypoint is the ledger program's instruction dispatch. It decodes
// the payload's command and routes to the matching handler. Errors are
// terminal for the invocation; bytes written before a failure remain
// written.
func Entrypoint(ctx *runtime.Context) error {
	if !bytes.Equal(ctx.ProgramID, ProgramID) {
		return runtime.ErrIncorrectProgram
	}

	cmd, err := GetCommand(ctx.Data)
	if err != nil {
		return err
	}

	switch cmd {
	case CommandInitialize:
		return initialize(ctx)
	case CommandTransfer:
		return transfer(ctx)
	case CommandCloseAccount:
		return closeAccount(ctx)
	default:
		return runtime.ErrInvalidInstructionData
	}
}

// Register binds the ledger program to a processor.
func Register(p *runtime.Processor) {
	p.Register(ProgramID, Entrypoint)
}

func initialize(ctx *runtime.Context) error {
	args, err := DecodeInitialize(ctx.Data)
	if err != nil {
		return err
	}

	balance, err := ctx.Writable(0)
	if err != nil {
		return err
	}
	holder, err := ctx.Signer(1)
	if err != nil {
		return err
	}

	derived, err := DeriveBalanceAddress(holder.Key)
	if err != nil {
		return errors.Wrap(err, "failed to derive balance address")
	}
	if !bytes.Equal(balance.Key, derived) {
		return errors.Wrap(runtime.ErrInvalidAccountData, "balance account does not match derived address")
	}

	var record Account
	if !record.Unmarshal(balance.Data()) {
		return errors.Wrap(runtime.ErrInvalidAccountData, "invalid balance account data")
	}
	if record.State != AccountStateUninitialized {
		return ErrorAlreadyInitialized
	}

	record.Holder = holder.Key
	record.Balance = args.Amount
	record.State = AccountStateInitialized

	if err := balance.SetData(record.Marshal()); err != nil {
		return err
	}

	ctx.Log("initialized balance account")

	return nil
}

func transfer(ctx *runtime.Context) error {
	args, err := DecodeTransfer(ctx.Data)
	if err != nil {
		return err
	}

	source, err := ctx.Writable(0)
	if err != nil {
		return err
	}
	destination, err := ctx.Writable(1)
	if err != nil {
		return err
	}
	holder, err := ctx.Signer(2)
	if err != nil {
		return err
	}

	if bytes.Equal(source.Key, destination.Key) {
		return errors.Wrap(runtime.ErrInvalidAccountData, "source and destination are the same account")
	}
	if !bytes.Equal(source.Key, args.Source[:]) {
		return errors.Wrap(runtime.ErrInvalidAccountData, "source account does not match instruction identity")
	}
	if !bytes.Equal(destination.Key, args.Destination[:]) {
		return errors.Wrap(runtime.ErrInvalidAccountData, "destination account does not match instruction identity")
	}

	var from Account
	if !from.Unmarshal(source.Data()) {
		return errors.Wrap(runtime.ErrInvalidAccountData, "invalid source account data")
	}
	var to Account
	if !to.Unmarshal(destination.Data()) {
		return errors.Wrap(runtime.ErrInvalidAccountData, "invalid destination account data")
	}

	if from.State != AccountStateInitialized || to.State != AccountStateInitialized {
		return ErrorUninitializedAccount
	}
	if !bytes.Equal(from.Holder, holder.Key) {
		return ErrorHolderMismatch
	}

	if from.Balance < args.Amount {
		return ErrorInsufficientFunds
	}
	if to.Balance+args.Amount < to.Balance {
		return ErrorAmountOverflow
	}

	from.Balance -= args.Amount
	to.Balance += args.Amount

	if err := source.SetData(from.Marshal()); err != nil {
		return err
	}
	if err := destination.SetData(to.Marshal()); err != nil {
		return err
	}

	ctx.Log("transferred between balance accounts")

	return nil
}

func closeAccount(ctx *runtime.Context) error {
	if err := DecodeCloseAccount(ctx.Data); err != nil {
		return err
	}

	balance, err := ctx.Writable(0)
	if err != nil {
		return err
	}
	holder, err := ctx.Signer(1)
	if err != nil {
		return err
	}

	var record Account
	if !record.Unmarshal(balance.Data()) {
		return errors.Wrap(runtime.ErrInvalidAccountData, "invalid balance account data")
	}
	if record.State != AccountStateInitialized {
		return ErrorUninitializedAccount
	}
	if !bytes.Equal(record.Holder, holder.Key) {
		return ErrorHolderMismatch
	}
	if record.Balance != 0 {
		return ErrorNonZeroBalance
	}

	closed := Account{State: AccountStateClosed}
	if err := balance.SetData(closed.Marshal()); err != nil {
		return err
	}

	ctx.Log("closed balance account")

	return nil
}
