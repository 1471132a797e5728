package wire

// Operation represents a protocol operation.
type Operation uint8

const (
	// OpRead gets the current value of one attribute.
	OpRead Operation = 1

	// OpWrite sets the value of one attribute.
	OpWrite Operation = 2

	// OpBrowse resolves a child of an entity by qualified name.
	OpBrowse Operation = 3

	// OpDescribe returns the declared type and identity attributes of an
	// entity.
	OpDescribe Operation = 4
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OpRead:
		return "Read"
	case OpWrite:
		return "Write"
	case OpBrowse:
		return "Browse"
	case OpDescribe:
		return "Describe"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the operation is a known operation.
func (o Operation) IsValid() bool {
	return o >= OpRead && o <= OpDescribe
}
