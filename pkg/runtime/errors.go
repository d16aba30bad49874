package runtime

import (
	"errors"
	"fmt"
)

var (
	ErrIncorrectProgram     = errors.New("incorrect program")
	ErrIncorrectInstruction = errors.New("incorrect instruction")

	ErrUnknownProgram           = errors.New("unknown program")
	ErrInvalidInstructionData   = errors.New("invalid instruction data")
	ErrInvalidAccountData       = errors.New("invalid account data")
	ErrNotEnoughAccountKeys     = errors.New("not enough account keys")
	ErrMissingRequiredSignature = errors.New("missing required signature")
)

// CustomError is the numerical error returned by a program handler.
type CustomError uint32

func (c CustomError) Error() string {
	return fmt.Sprintf("custom program error: %x", uint32(c))
}
