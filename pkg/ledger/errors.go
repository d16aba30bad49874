package ledger

import (
	"github.com/code-payments/ledger-program/pkg/runtime"
)

const (
	ErrorAlreadyInitialized runtime.CustomError = iota
	ErrorUninitializedAccount
	ErrorHolderMismatch
	ErrorInsufficientFunds
	ErrorAmountOverflow
	ErrorNonZeroBalance
)
