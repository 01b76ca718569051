package types

import (
	"errors"
	"strconv"
)

// ErrorDomain categorizes a Status.
type ErrorDomain uint8

const (
	// DomainSystem covers generic, invalid-argument and internal failures.
	DomainSystem ErrorDomain = iota
	// DomainMemory covers allocation failures.
	DomainMemory
	// DomainRadiation covers detected radiation events and calibration issues.
	DomainRadiation
	// DomainRedundancy covers voting results that could not be trusted.
	DomainRedundancy
	// DomainValidation covers precondition failures.
	DomainValidation
	// DomainComputation covers numeric overflow, underflow and faults.
	DomainComputation
)

var domainNames = [...]string{"system", "memory", "radiation", "redundancy", "validation", "computation"}

// String returns the lower-case domain name.
func (d ErrorDomain) String() string {
	if int(d) < len(domainNames) {
		return domainNames[d]
	}
	return "domain(" + strconv.Itoa(int(d)) + ")"
}

// Status is the exception-free outcome of a radguard operation.
//
// Status implements error. Two statuses are equal when Domain and Code match;
// Message is descriptive only. Status values are comparable, so errors.Is
// works against the predefined statuses below.
type Status struct {
	// Domain is the error category.
	Domain ErrorDomain

	// Code is the numeric code within Domain. {DomainSystem, 0} is success.
	Code uint16

	// Message is a human-readable description.
	Message string
}

// Predefined statuses.
var (
	StatusSuccess                 = Status{DomainSystem, 0, "success"}
	StatusInvalidArgument         = Status{DomainSystem, 1, "invalid argument"}
	StatusSystemError             = Status{DomainSystem, 2, "system error"}
	StatusMemoryAllocationFailure = Status{DomainMemory, 1, "memory allocation failure"}
	StatusRadiationDetection      = Status{DomainRadiation, 1, "radiation event detected"}
	StatusCalibrationError        = Status{DomainRadiation, 2, "calibration error"}
	StatusRedundancyFailure       = Status{DomainRedundancy, 1, "redundancy mechanism failure"}
	StatusValidationFailure       = Status{DomainValidation, 1, "validation failure"}
	StatusComputationError        = Status{DomainComputation, 1, "computation error"}
	StatusOverflowError           = Status{DomainComputation, 2, "overflow error"}
	StatusUnderflowError          = Status{DomainComputation, 3, "underflow error"}
)

// Error implements the error interface.
func (s Status) Error() string {
	return "radguard: " + s.Domain.String() + "/" + strconv.Itoa(int(s.Code)) + ": " + s.Message
}

// Is matches on Domain and Code only, so a Status carrying a custom message
// still satisfies errors.Is against the predefined value.
func (s Status) Is(target error) bool {
	t, ok := target.(Status)
	if !ok {
		return false
	}
	return s.Domain == t.Domain && s.Code == t.Code
}

// IsSuccess reports whether s is the success status.
func (s Status) IsSuccess() bool {
	return s.Domain == DomainSystem && s.Code == 0
}

// IsError reports whether s is anything other than success.
func (s Status) IsError() bool {
	return !s.IsSuccess()
}

// WithMessage returns a copy of s carrying a more specific message.
func (s Status) WithMessage(msg string) Status {
	s.Message = msg
	return s
}

// Err converts s to an error: nil for success, s otherwise.
func (s Status) Err() error {
	if s.IsSuccess() {
		return nil
	}
	return s
}

// StatusOf extracts the Status carried by err.
//
// Parameters:
//   - err: Any error, possibly wrapping a Status
//
// Returns:
//   - Status: StatusSuccess for nil, the wrapped Status if present,
//     StatusSystemError (with err's message) otherwise
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}

	var s Status
	if errors.As(err, &s) {
		return s
	}

	return StatusSystemError.WithMessage(err.Error())
}
