package txscript

import "github.com/pkg/errors"

// ErrorCode identifies the kind of error a script execution failed with.
// Every execution failure reduces to one of these; the VM never returns a
// bare error that doesn't carry one.
type ErrorCode int

const (
	ErrMalformedPush ErrorCode = iota
	ErrVerifyFailed
	ErrOpcodeReserved
	ErrOpcodeDisabled
	ErrInvalidOpcode
	ErrEmptyStack
	ErrCleanStack
	ErrInvalidState
	ErrEvalFalse
	ErrUnbalancedConditional
	ErrPubKeyFormat
	ErrInvalidStackOperation
	ErrNumberTooBig
	ErrEarlyReturn
	ErrInvalidInputIndex
	ErrInvalidOutputIndex
	ErrInvalidSigHashType
	ErrInvalidSigLength
	ErrInvalidPubKeyCount
	ErrInvalidSigCount
	ErrStackSizeExceeded
	ErrTooManyOperations
	ErrScriptSizeExceeded
	ErrSignatureScriptNotPushOnly
	ErrUnsatisfiedLockTime
	ErrMismatchedLockTimeTypes
)

var errorCodeNames = map[ErrorCode]string{
	ErrMalformedPush:              "ErrMalformedPush",
	ErrVerifyFailed:               "ErrVerifyFailed",
	ErrOpcodeReserved:             "ErrOpcodeReserved",
	ErrOpcodeDisabled:             "ErrOpcodeDisabled",
	ErrInvalidOpcode:              "ErrInvalidOpcode",
	ErrEmptyStack:                 "ErrEmptyStack",
	ErrCleanStack:                 "ErrCleanStack",
	ErrInvalidState:               "ErrInvalidState",
	ErrEvalFalse:                  "ErrEvalFalse",
	ErrUnbalancedConditional:      "ErrUnbalancedConditional",
	ErrPubKeyFormat:               "ErrPubKeyFormat",
	ErrInvalidStackOperation:      "ErrInvalidStackOperation",
	ErrNumberTooBig:               "ErrNumberTooBig",
	ErrEarlyReturn:                "ErrEarlyReturn",
	ErrInvalidInputIndex:          "ErrInvalidInputIndex",
	ErrInvalidOutputIndex:         "ErrInvalidOutputIndex",
	ErrInvalidSigHashType:         "ErrInvalidSigHashType",
	ErrInvalidSigLength:           "ErrInvalidSigLength",
	ErrInvalidPubKeyCount:         "ErrInvalidPubKeyCount",
	ErrInvalidSigCount:            "ErrInvalidSigCount",
	ErrStackSizeExceeded:          "ErrStackSizeExceeded",
	ErrTooManyOperations:          "ErrTooManyOperations",
	ErrScriptSizeExceeded:         "ErrScriptSizeExceeded",
	ErrSignatureScriptNotPushOnly: "ErrSignatureScriptNotPushOnly",
	ErrUnsatisfiedLockTime:        "ErrUnsatisfiedLockTime",
	ErrMismatchedLockTimeTypes:    "ErrMismatchedLockTimeTypes",
}

func (e ErrorCode) String() string {
	if name, ok := errorCodeNames[e]; ok {
		return name
	}
	return "ErrUnknown"
}

// Error is the error type every script-execution failure is reported as. It
// pairs a classified ErrorCode with a human-readable description, mirroring
// the way the rest of the module distinguishes sentinel error kinds from
// their wrapped detail.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

func (e Error) Error() string {
	return e.Description
}

// scriptError creates an Error given a set of arguments.
func scriptError(code ErrorCode, desc string) Error {
	return Error{ErrorCode: code, Description: desc}
}

// IsErrorCode reports whether err is a script Error carrying the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	var scriptErr Error
	if errors.As(err, &scriptErr) {
		return scriptErr.ErrorCode == code
	}
	return false
}
