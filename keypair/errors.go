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

package keypair

import (
	"errors"
	"fmt"
)

// ErrCrypto is the sentinel matched by key material errors. These indicate
// malformed inputs to the API, distinct from a signature merely failing
// verification.
var ErrCrypto = errors.New("invalid key material")

// ErrInvalidPublicKey indicates public key bytes that do not decode to a
// canonical curve point
var ErrInvalidPublicKey = fmt.Errorf(
	"%w: not a canonical ed25519 public key",
	ErrCrypto,
)

// ErrKeyWiped indicates an operation requiring private key material on a
// pair whose material has been zeroized
var ErrKeyWiped = fmt.Errorf("%w: key pair has been wiped", ErrCrypto)

// WrongKeyLengthError indicates a public key of the wrong size
type WrongKeyLengthError struct {
	Length int
}

func (e WrongKeyLengthError) Error() string {
	return fmt.Sprintf(
		"invalid key material: public key must be %d bytes, got %d",
		PublicKeySize,
		e.Length,
	)
}

func (WrongKeyLengthError) Is(target error) bool { return target == ErrCrypto }
