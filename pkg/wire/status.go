package wire

import "fmt"

// Status represents a 32-bit response status code.
type Status uint32

const (
	// StatusGood indicates the operation completed successfully.
	StatusGood Status = 0x00000000

	// StatusBadUnexpectedError indicates a fault with no protocol cause.
	StatusBadUnexpectedError Status = 0x80010000

	// StatusBadInternalError indicates an internal server fault.
	StatusBadInternalError Status = 0x80020000

	// StatusBadCommunicationError indicates a low level communication failure.
	StatusBadCommunicationError Status = 0x80050000

	// StatusBadEncodingError indicates a message could not be encoded.
	StatusBadEncodingError Status = 0x80060000

	// StatusBadDecodingError indicates a message could not be decoded.
	StatusBadDecodingError Status = 0x80070000

	// StatusBadTimeout indicates the operation timed out.
	StatusBadTimeout Status = 0x800A0000

	// StatusBadServiceUnsupported indicates the operation is not supported.
	StatusBadServiceUnsupported Status = 0x800B0000

	// StatusBadShutdown indicates the server is shutting down.
	StatusBadShutdown Status = 0x800C0000

	// StatusBadTooManyOperations indicates the server is busy.
	StatusBadTooManyOperations Status = 0x80100000

	// StatusBadUserAccessDenied indicates the caller lacks permission.
	StatusBadUserAccessDenied Status = 0x801F0000

	// StatusBadRequestCancelledByClient indicates the client cancelled the request.
	StatusBadRequestCancelledByClient Status = 0x802C0000

	// StatusBadNodeIDUnknown indicates the target entity does not exist.
	StatusBadNodeIDUnknown Status = 0x80340000

	// StatusBadAttributeIDInvalid indicates the entity has no such attribute.
	StatusBadAttributeIDInvalid Status = 0x80350000

	// StatusBadIndexRangeInvalid indicates an invalid array index range.
	StatusBadIndexRangeInvalid Status = 0x80360000

	// StatusBadNotReadable indicates the attribute cannot be read.
	StatusBadNotReadable Status = 0x803A0000

	// StatusBadNotWritable indicates the attribute cannot be written.
	StatusBadNotWritable Status = 0x803B0000

	// StatusBadOutOfRange indicates a value is outside the allowed range.
	StatusBadOutOfRange Status = 0x803C0000

	// StatusBadBrowseNameInvalid indicates a malformed browse name.
	StatusBadBrowseNameInvalid Status = 0x80600000

	// StatusBadNoMatch indicates that a browse found no matching child.
	StatusBadNoMatch Status = 0x806F0000

	// StatusBadWriteNotSupported indicates the write form is not supported.
	StatusBadWriteNotSupported Status = 0x80730000

	// StatusBadTypeMismatch indicates the value does not match the declared type.
	StatusBadTypeMismatch Status = 0x80740000

	// StatusBadConnectionClosed indicates the connection was closed.
	StatusBadConnectionClosed Status = 0x80AE0000
)

var statusNames = map[Status]string{
	StatusGood:                        "Good",
	StatusBadUnexpectedError:          "Bad_UnexpectedError",
	StatusBadInternalError:            "Bad_InternalError",
	StatusBadCommunicationError:       "Bad_CommunicationError",
	StatusBadEncodingError:            "Bad_EncodingError",
	StatusBadDecodingError:            "Bad_DecodingError",
	StatusBadTimeout:                  "Bad_Timeout",
	StatusBadServiceUnsupported:       "Bad_ServiceUnsupported",
	StatusBadShutdown:                 "Bad_Shutdown",
	StatusBadTooManyOperations:        "Bad_TooManyOperations",
	StatusBadUserAccessDenied:         "Bad_UserAccessDenied",
	StatusBadRequestCancelledByClient: "Bad_RequestCancelledByClient",
	StatusBadNodeIDUnknown:            "Bad_NodeIdUnknown",
	StatusBadAttributeIDInvalid:       "Bad_AttributeIdInvalid",
	StatusBadIndexRangeInvalid:        "Bad_IndexRangeInvalid",
	StatusBadNotReadable:              "Bad_NotReadable",
	StatusBadNotWritable:              "Bad_NotWritable",
	StatusBadOutOfRange:               "Bad_OutOfRange",
	StatusBadBrowseNameInvalid:        "Bad_BrowseNameInvalid",
	StatusBadNoMatch:                  "Bad_NoMatch",
	StatusBadWriteNotSupported:        "Bad_WriteNotSupported",
	StatusBadTypeMismatch:             "Bad_TypeMismatch",
	StatusBadConnectionClosed:         "Bad_ConnectionClosed",
}

const severityMask Status = 0xC0000000

// String returns the status name, or its hex value if unnamed.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("0x%08X", uint32(s))
}

// IsGood returns true if the severity is good.
func (s Status) IsGood() bool {
	return s&severityMask == 0
}

// IsUncertain returns true if the severity is uncertain.
func (s Status) IsUncertain() bool {
	return s&severityMask == 0x40000000
}

// IsBad returns true if the severity is bad.
func (s Status) IsBad() bool {
	return s&0x80000000 != 0
}

// IsSuccess returns true if the status does not indicate a failure.
// Uncertain results count as success.
func (s Status) IsSuccess() bool {
	return !s.IsBad()
}
