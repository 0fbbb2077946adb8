// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package webauth

import (
	"errors"
	"fmt"
)

var (
	// ErrNotValidated is returned when signing is attempted on a challenge
	// that has not passed validation
	ErrNotValidated = errors.New("challenge has not been validated")
	// ErrNotSigned is returned when submission is attempted on a challenge
	// that carries no client signatures
	ErrNotSigned = errors.New("challenge has not been signed")
)

// Reason identifies which validation check a challenge failed
type Reason int

const (
	ReasonSignatureCount Reason = iota + 1
	ReasonBadServerSignature
	ReasonWrongSource
	ReasonNonzeroSequence
	ReasonMalformedOperation
	ReasonNoTimeBounds
	ReasonNotYetValid
	ReasonExpired
	ReasonWrongWebAuthDomain
)

func (r Reason) String() string {
	switch r {
	case ReasonSignatureCount:
		return "unexpected signature count"
	case ReasonBadServerSignature:
		return "invalid server signature"
	case ReasonWrongSource:
		return "source account is not the server account"
	case ReasonNonzeroSequence:
		return "sequence number is not zero"
	case ReasonMalformedOperation:
		return "malformed challenge operation"
	case ReasonNoTimeBounds:
		return "missing time bounds"
	case ReasonNotYetValid:
		return "challenge is not yet valid"
	case ReasonExpired:
		return "challenge has expired"
	case ReasonWrongWebAuthDomain:
		return "web auth domain mismatch"
	}
	return "unknown"
}

// ChallengeError is returned when a challenge fails one of the ordered
// validation checks. Callers can switch on Reason to distinguish a wrong
// signer from an expired challenge from a malformed operation
type ChallengeError struct {
	Reason Reason
	Detail string
}

func (e ChallengeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("challenge rejected: %s", e.Reason)
	}
	return fmt.Sprintf("challenge rejected: %s: %s", e.Reason, e.Detail)
}

// TransportError wraps a failure from the HTTP exchange with the server.
// It is reported to the caller as-is and never retried
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s", e.Op, e.Err)
	}
	return fmt.Sprintf(
		"%s failed: unexpected status %d",
		e.Op,
		e.StatusCode,
	)
}

func (e TransportError) Unwrap() error {
	return e.Err
}
