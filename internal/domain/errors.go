package domain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ErrReentrancy is returned when a guarded entry point is entered while a
// previous guarded call is still in progress.
var ErrReentrancy = errors.New("agent call already in progress")

// InvalidParamsError reports a request argument that fails validation, most
// commonly a zero identifier where one is forbidden.
type InvalidParamsError struct {
	Param  string
	Reason string
}

func (e *InvalidParamsError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// NewZeroIdentifierError builds the InvalidParamsError used for null
// identifier checks.
func NewZeroIdentifierError(param string) *InvalidParamsError {
	return &InvalidParamsError{Param: param, Reason: "zero identifier"}
}

// AlreadyWhitelistedError reports an add of a tuple whose exact key is
// already present.
type AlreadyWhitelistedError struct {
	ParentIPID      common.Address
	ChildIPID       common.Address
	LicenseTemplate common.Address
	LicenseTermsID  uint64
	Licensee        common.Address
}

func (e *AlreadyWhitelistedError) Error() string {
	return fmt.Sprintf("derivative terms already whitelisted: parent=%s child=%s template=%s termsId=%d licensee=%s",
		e.ParentIPID.Hex(), e.ChildIPID.Hex(), e.LicenseTemplate.Hex(), e.LicenseTermsID, e.Licensee.Hex())
}

// NotWhitelistedError reports a removal of an absent exact key, or a
// registration attempt by a caller with neither an exact nor a wildcard
// entry.
type NotWhitelistedError struct {
	ParentIPID      common.Address
	ChildIPID       common.Address
	LicenseTemplate common.Address
	LicenseTermsID  uint64
	Licensee        common.Address
}

func (e *NotWhitelistedError) Error() string {
	return fmt.Sprintf("derivative terms not whitelisted: parent=%s child=%s template=%s termsId=%d licensee=%s",
		e.ParentIPID.Hex(), e.ChildIPID.Hex(), e.LicenseTemplate.Hex(), e.LicenseTermsID, e.Licensee.Hex())
}

// BatchLengthMismatchError reports batch inputs whose five sequences do not
// share one length.
type BatchLengthMismatchError struct {
	Parents   int
	Children  int
	Templates int
	TermsIDs  int
	Licensees int
}

func (e *BatchLengthMismatchError) Error() string {
	return fmt.Sprintf("batch length mismatch: parents=%d children=%d templates=%d termsIds=%d licensees=%d",
		e.Parents, e.Children, e.Templates, e.TermsIDs, e.Licensees)
}

// FeeTooHighError reports a quoted minting fee above the caller's declared cap.
type FeeTooHighError struct {
	Quoted *big.Int
	Cap    *big.Int
}

func (e *FeeTooHighError) Error() string {
	return fmt.Sprintf("quoted minting fee %s exceeds declared cap %s", e.Quoted, e.Cap)
}

// UnauthorizedError reports a non-owner attempting an owner-only operation.
type UnauthorizedError struct {
	Caller common.Address
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("caller %s is not the agent owner", e.Caller.Hex())
}

// InvalidPauseStateError reports an operation attempted in the wrong
// Active/Paused state.
type InvalidPauseStateError struct {
	Current  string
	Required string
}

func (e *InvalidPauseStateError) Error() string {
	return fmt.Sprintf("agent is %s, operation requires %s", e.Current, e.Required)
}

// EmergencyWithdrawFailedError reports a native sweep rejected by the
// destination.
type EmergencyWithdrawFailedError struct {
	Destination common.Address
	Amount      *big.Int
	Err         error
}

func (e *EmergencyWithdrawFailedError) Error() string {
	return fmt.Sprintf("emergency withdraw of %s to %s failed", e.Amount, e.Destination.Hex())
}

func (e *EmergencyWithdrawFailedError) Unwrap() error {
	return e.Err
}
