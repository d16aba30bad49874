package runtime

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Entrypoint is the single entry function of a program. It receives the
// invocation context, decodes the instruction payload, and routes to the
// matching handler.
type Entrypoint func(ctx *Context) error

// Context is the per-invocation view handed to an Entrypoint. It must
// not be retained beyond the invocation.
type Context struct {
	ProgramID ed25519.PublicKey
	Data      []byte

	accounts []*AccountInfo
	log      *logrus.Entry
}

// NumAccounts returns the number of accounts referenced by the invocation.
func (c *Context) NumAccounts() int {
	return len(c.accounts)
}

// Account returns the account at index.
func (c *Context) Account(index int) (*AccountInfo, error) {
	if index < 0 || index >= len(c.accounts) {
		return nil, ErrNotEnoughAccountKeys
	}

	return c.accounts[index], nil
}

// Writable returns the account at index, rejecting accounts that are
// not writable or not owned by the executing program.
func (c *Context) Writable(index int) (*AccountInfo, error) {
	account, err := c.Account(index)
	if err != nil {
		return nil, err
	}

	if !account.IsWritable {
		return nil, errors.Wrapf(ErrInvalidAccountData, "account %d is not writable", index)
	}
	if !bytes.Equal(account.Owner, c.ProgramID) {
		return nil, errors.Wrapf(ErrInvalidAccountData, "account %d is not owned by the program", index)
	}

	return account, nil
}

// Signer returns the account at index, rejecting accounts that did not
// sign the invocation.
func (c *Context) Signer(index int) (*AccountInfo, error) {
	account, err := c.Account(index)
	if err != nil {
		return nil, err
	}

	if !account.IsSigner {
		return nil, errors.Wrapf(ErrMissingRequiredSignature, "account %d did not sign", index)
	}

	return account, nil
}

// Log emits a program log line tagged with the executing program.
func (c *Context) Log(msg string) {
	c.log.Info(msg)
}

// Processor routes invocations to registered program entrypoints.
type Processor struct {
	programs map[string]Entrypoint
	log      *logrus.Entry
}

// NewProcessor creates an empty Processor.
func NewProcessor() *Processor {
	return &Processor{
		programs: make(map[string]Entrypoint),
		log:      logrus.StandardLogger().WithField("type", "runtime/processor"),
	}
}

// Register binds a program ID to its entrypoint, replacing any previous
// registration.
func (p *Processor) Register(program ed25519.PublicKey, entrypoint Entrypoint) {
	p.programs[string(program)] = entrypoint
}

// Invoke dispatches a single instruction payload against the provided
// accounts. Exactly one entrypoint runs, synchronously, with a single
// attempt; any error is the invocation's terminal result. Bytes written
// before a failure remain written.
func (p *Processor) Invoke(program ed25519.PublicKey, accounts []*AccountInfo, data []byte) error {
	if len(accounts) > MaxAccounts {
		return errors.Wrapf(ErrInvalidAccountData, "too many accounts: %d", len(accounts))
	}
	if len(data) > MaxInstructionDataSize {
		return errors.Wrapf(ErrInvalidInstructionData, "instruction data too large: %d", len(data))
	}

	entrypoint, ok := p.programs[string(program)]
	if !ok {
		return ErrUnknownProgram
	}

	log := p.log.WithField("program", base58.Encode(program))

	ctx := &Context{
		ProgramID: program,
		Data:      data,
		accounts:  accounts,
		log:       log,
	}

	if err := entrypoint(ctx); err != nil {
		log.WithError(err).Warn("instruction failed")
		return err
	}

	return nil
}

// InvokeInstruction dispatches a built Instruction. The accounts must be
// provided in the same order as the instruction's account metas.
func (p *Processor) InvokeInstruction(instruction Instruction, accounts []*AccountInfo) error {
	if len(accounts) != len(instruction.Accounts) {
		return errors.Wrapf(ErrInvalidAccountData, "invalid number of accounts: %d != %d", len(accounts), len(instruction.Accounts))
	}

	for i, meta := range instruction.Accounts {
		if !bytes.Equal(meta.PublicKey, accounts[i].Key) {
			return errors.Wrapf(ErrInvalidAccountData, "account %d does not match instruction meta", i)
		}
	}

	return p.Invoke(instruction.Program, accounts, instruction.Data)
}
