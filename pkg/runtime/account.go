package runtime

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
)

// AccountInfo is the view of an account handed to a program invocation.
//
// The underlying byte region is managed externally and persists beyond
// the call; the view itself must not outlive it. All writes go through
// SetData so that readonly accounts are never altered.
type AccountInfo struct {
	Key        ed25519.PublicKey
	Owner      ed25519.PublicKey
	IsSigner   bool
	IsWritable bool

	data []byte
}

// NewAccountInfo wraps an externally managed byte region as a writable
// account.
func NewAccountInfo(key, owner ed25519.PublicKey, data []byte, isSigner bool) *AccountInfo {
	return &AccountInfo{
		Key:        key,
		Owner:      owner,
		IsSigner:   isSigner,
		IsWritable: true,
		data:       data,
	}
}

// NewReadonlyAccountInfo wraps an externally managed byte region as a
// readonly account.
func NewReadonlyAccountInfo(key, owner ed25519.PublicKey, data []byte, isSigner bool) *AccountInfo {
	return &AccountInfo{
		Key:        key,
		Owner:      owner,
		IsSigner:   isSigner,
		IsWritable: false,
		data:       data,
	}
}

// DataLen returns the size of the account's byte region.
func (a *AccountInfo) DataLen() int {
	return len(a.data)
}

// Data returns a copy of the account's byte region.
func (a *AccountInfo) Data() []byte {
	b := make([]byte, len(a.data))
	copy(b, a.data)
	return b
}

// SetData replaces the contents of the account's byte region.
//
// The region's size is fixed externally, so b must match it exactly.
// Readonly accounts are rejected with ErrInvalidAccountData before any
// byte is touched.
func (a *AccountInfo) SetData(b []byte) error {
	if !a.IsWritable {
		return errors.Wrap(ErrInvalidAccountData, "account is not writable")
	}
	if len(b) != len(a.data) {
		return errors.Wrapf(ErrInvalidAccountData, "account data size changed: %d != %d", len(b), len(a.data))
	}

	copy(a.data, b)
	return nil
}
