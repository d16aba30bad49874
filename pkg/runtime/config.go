package runtime

const (
	// MaxAccounts is the maximum number of accounts a single invocation
	// may reference.
	MaxAccounts = 64

	// MaxInstructionDataSize is the maximum size of a raw instruction
	// payload.
	MaxInstructionDataSize = 1232
)
