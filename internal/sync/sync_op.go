package sync

// Operation identifies a mutating filesystem action performed on the replica.
type Operation uint8

var operationNames = []string{
	"CreatedDirectory",
	"Copied",
	"Deleted",
	"DeletedDirectory",
}

const (
	OpCreatedDirectory Operation = iota
	OpCopied
	OpDeleted
	OpDeletedDirectory
)

func (op Operation) String() string {
	return operationNames[op]
}

// CopyReason explains why the change detector decided a file pair needs (or
// does not need) a copy.
type CopyReason uint8

var copyReasonNames = []string{
	"NewFile",
	"SizeDifference",
	"HashDifference",
	"Identical",
}

const (
	ReasonNewFile CopyReason = iota
	ReasonSizeDifference
	ReasonHashDifference
	ReasonIdentical
)

func (r CopyReason) String() string {
	return copyReasonNames[r]
}

// Decision is the change detector's verdict for a single file pair. It is
// computed fresh every cycle and never cached.
type Decision struct {
	ShouldCopy bool
	Reason     CopyReason
}
