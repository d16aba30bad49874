package ledger

import (
	"crypto/ed25519"

	"github.com/code-payments/ledger-program/pkg/runtime/binary"
)

type AccountState byte

const (
	AccountStateUninitialized AccountState = iota
	AccountStateInitialized
	AccountStateClosed
)

// AccountSize is the serialized size of a balance account record. The
// byte region backing a balance account must be exactly this size.
const AccountSize = ed25519.PublicKeySize + 8 + 1

// Account is the record stored in a balance account's byte region.
type Account struct {
	// The holder authorized to debit this account.
	Holder ed25519.PublicKey
	// The amount of tokens this account holds.
	Balance uint64
	// The account's state.
	State AccountState
}

func (a *Account) Marshal() []byte {
	b := make([]byte, AccountSize)

	var offset int
	binary.PutKey32(b, a.Holder, &offset)
	binary.PutUint64(b[offset:], a.Balance, &offset)
	binary.PutUint8(b[offset:], uint8(a.State), &offset)

	return b
}

func (a *Account) Unmarshal(b []byte) bool {
	if len(b) != AccountSize {
		return false
	}

	var offset int
	binary.GetKey32(b, &a.Holder, &offset)
	binary.GetUint64(b[offset:], &a.Balance, &offset)

	var state uint8
	binary.GetUint8(b[offset:], &state, &offset)
	if state > uint8(AccountStateClosed) {
		return false
	}
	a.State = AccountState(state)

	return true
}
