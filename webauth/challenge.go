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
	"bytes"
	"time"

	gostellar "github.com/blinklabs-io/gostellar"
	"github.com/blinklabs-io/gostellar/keypair"
	"github.com/blinklabs-io/gostellar/strkey"
	"github.com/blinklabs-io/gostellar/txnbuild"
)

// State tracks a challenge through the authentication handshake
type State int

const (
	StateReceived State = iota
	StateValidated
	StateSigned
	StateSubmitted
	StateAuthenticated
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateReceived:
		return "received"
	case StateValidated:
		return "validated"
	case StateSigned:
		return "signed"
	case StateSubmitted:
		return "submitted"
	case StateAuthenticated:
		return "authenticated"
	case StateRejected:
		return "rejected"
	}
	return "unknown"
}

const nonceSize = 64

// Challenge is a server-issued challenge transaction moving through the
// handshake state machine. It is created by ReadChallenge and is not safe
// for concurrent mutation
type Challenge struct {
	Envelope *txnbuild.Envelope
	Nonce    []byte
	network  gostellar.Network
	state    State
}

// State returns the challenge's current state
func (c *Challenge) State() State {
	return c.state
}

// ReadChallenge decodes a base64 challenge envelope and validates it against
// the given server account, network, and home domain. The server signature is
// checked before any structural checks, since the client must never sign an
// unverified challenge. webAuthDomain is optional; when non-empty, a
// web_auth_domain entry in the challenge must match it. A challenge that
// fails any check is returned in the rejected state alongside a
// ChallengeError
func ReadChallenge(
	envelopeB64 string,
	serverAccount string,
	network gostellar.Network,
	homeDomain string,
	webAuthDomain string,
	now time.Time,
) (*Challenge, error) {
	server, err := keypair.ParseAddress(serverAccount)
	if err != nil {
		return nil, err
	}
	env, err := txnbuild.ParseEnvelope(envelopeB64)
	if err != nil {
		return nil, err
	}
	ch := &Challenge{
		Envelope: env,
		network:  network,
		state:    StateReceived,
	}
	reject := func(reason Reason, detail string) (*Challenge, error) {
		ch.state = StateRejected
		return ch, ChallengeError{Reason: reason, Detail: detail}
	}
	// Server signature first
	if len(env.Signatures) != 1 {
		return reject(
			ReasonSignatureCount,
			"challenge must carry exactly one signature",
		)
	}
	hash, err := env.Hash(network.ID())
	if err != nil {
		return nil, err
	}
	if !server.Verify(hash[:], env.Signatures[0].Signature) {
		return reject(
			ReasonBadServerSignature,
			"signature does not verify under the server key",
		)
	}
	if !sourceMatchesServer(env.Transaction.SourceAccount, server) {
		return reject(ReasonWrongSource, env.Transaction.SourceAccount)
	}
	if env.Transaction.SequenceNumber != 0 {
		return reject(ReasonNonzeroSequence, "")
	}
	if len(env.Transaction.Operations) == 0 {
		return reject(ReasonMalformedOperation, "no operations")
	}
	authOp, ok := env.Transaction.Operations[0].Body.(*txnbuild.ManageData)
	if !ok {
		return reject(
			ReasonMalformedOperation,
			"first operation is not manage-data",
		)
	}
	if authOp.Name != homeDomain+" auth" {
		return reject(ReasonMalformedOperation, "unexpected data name: "+authOp.Name)
	}
	if len(authOp.Value) != nonceSize {
		return reject(ReasonMalformedOperation, "nonce is not 64 bytes")
	}
	bounds := env.Transaction.TimeBounds
	if bounds == nil {
		return reject(ReasonNoTimeBounds, "")
	}
	// MaxTime of zero means no upper bound, which a challenge must not have
	if bounds.MaxTime == 0 {
		return reject(ReasonNoTimeBounds, "missing upper time bound")
	}
	nowSecs := uint64(now.Unix()) // #nosec G115
	if nowSecs < bounds.MinTime {
		return reject(ReasonNotYetValid, "")
	}
	if nowSecs > bounds.MaxTime {
		return reject(ReasonExpired, "")
	}
	if webAuthDomain != "" {
		for _, op := range env.Transaction.Operations[1:] {
			dataOp, ok := op.Body.(*txnbuild.ManageData)
			if !ok || dataOp.Name != "web_auth_domain" {
				continue
			}
			if string(dataOp.Value) != webAuthDomain {
				return reject(
					ReasonWrongWebAuthDomain,
					string(dataOp.Value),
				)
			}
		}
	}
	ch.Nonce = authOp.Value
	ch.state = StateValidated
	return ch, nil
}

// sourceMatchesServer compares the challenge source account to the server
// key. A muxed source matches on its ed25519 component.
func sourceMatchesServer(source string, server *keypair.Verifier) bool {
	if source == server.Address() {
		return true
	}
	version, payload, err := strkey.DecodeAny(source)
	if err != nil || version != strkey.VersionByteMuxedAccount {
		return false
	}
	return bytes.Equal(payload[:keypair.PublicKeySize], server.PublicKeyBytes())
}

// SignChallenge appends decorated signatures from the supplied signers, in
// the order they are supplied, on top of the existing server signature. It
// refuses to sign a challenge that has not been validated
func SignChallenge(ch *Challenge, signers ...keypair.Signer) error {
	if ch.state != StateValidated && ch.state != StateSigned {
		return ErrNotValidated
	}
	if err := ch.Envelope.Sign(ch.network.ID(), signers...); err != nil {
		return err
	}
	ch.state = StateSigned
	return nil
}

// SignerWeight declares a candidate signer and its weight for threshold
// verification
type SignerWeight struct {
	Address string
	Weight  int32
}

// VerifySignatures matches an envelope's decorated signatures against the
// declared signers and returns the combined weight of those that verify.
// Matching is hint-first and order-independent. Duplicate signatures by the
// same signer count once
func VerifySignatures(
	env *txnbuild.Envelope,
	networkID [32]byte,
	signers []SignerWeight,
) (int32, error) {
	hash, err := env.Hash(networkID)
	if err != nil {
		return 0, err
	}
	var total int32
	for _, signer := range signers {
		verifier, err := keypair.ParseAddress(signer.Address)
		if err != nil {
			return 0, err
		}
		hint := verifier.Hint()
		for _, sig := range env.Signatures {
			if sig.Hint != hint {
				continue
			}
			if verifier.Verify(hash[:], sig.Signature) {
				total += signer.Weight
				break
			}
		}
	}
	return total, nil
}
