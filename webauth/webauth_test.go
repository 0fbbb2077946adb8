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

package webauth_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gostellar "github.com/blinklabs-io/gostellar"
	"github.com/blinklabs-io/gostellar/internal/test"
	"github.com/blinklabs-io/gostellar/keypair"
	"github.com/blinklabs-io/gostellar/strkey"
	"github.com/blinklabs-io/gostellar/txnbuild"
	"github.com/blinklabs-io/gostellar/webauth"

	"go.uber.org/goleak"
)

const (
	testServerAccount = "GCAUMZAPAJETV5H3YVH6GM4I45O4FSJXVYFXOJ6MFMVPWG3VDGND52PM"
	testServerSeed    = "SBPF4XS6LZPF4XS6LZPF4XS6LZPF4XS6LZPF4XS6LZPF4XS6LZPF5AAE"
	testClientSeedHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	testHomeDomain    = "example.com"
	testWebAuthDomain = "auth.example.com"

	// Challenge for testHomeDomain signed by testServerAccount's key on
	// testnet, time bounds [1700000000, 1700000900]
	testChallengeB64 = "AAAAAgAAAACBRmQPAkk69PvFT+MziOddwsk3rgt3J8wrKvsbdRmaPgAAAMgAAAAAAAAAAAAAAAEAAAAAZVPxAAAAAABlU/SEAAAAAAAAAAIAAAABAAAAAAOhB7/zzhC+HXDdGOdLwJln5NYwm6UNXx3chmQSVTG4AAAACgAAABBleGFtcGxlLmNvbSBhdXRoAAAAAQAAAEAAAQIDBAUGBwgJCgsMDQ4PEBESExQVFhcYGRobHB0eHyAhIiMkJSYnKCkqKywtLi8wMTIzNDU2Nzg5Ojs8PT4/AAAAAQAAAACBRmQPAkk69PvFT+MziOddwsk3rgt3J8wrKvsbdRmaPgAAAAoAAAAPd2ViX2F1dGhfZG9tYWluAAAAAAEAAAAQYXV0aC5leGFtcGxlLmNvbQAAAAAAAAABdRmaPgAAAEDvoluv+rbZiK/8PgN4DFf3K1waN4clLkZCoaMpwStx2c/XC2OQNhDS1GOaBFKhwH8C97k6ENsWY/tsqehSjjgK"
	// Same transaction, but signed by a key other than the server's
	testChallengeBadSigB64 = "AAAAAgAAAACBRmQPAkk69PvFT+MziOddwsk3rgt3J8wrKvsbdRmaPgAAAMgAAAAAAAAAAAAAAAEAAAAAZVPxAAAAAABlU/SEAAAAAAAAAAIAAAABAAAAAAOhB7/zzhC+HXDdGOdLwJln5NYwm6UNXx3chmQSVTG4AAAACgAAABBleGFtcGxlLmNvbSBhdXRoAAAAAQAAAEAAAQIDBAUGBwgJCgsMDQ4PEBESExQVFhcYGRobHB0eHyAhIiMkJSYnKCkqKywtLi8wMTIzNDU2Nzg5Ojs8PT4/AAAAAQAAAACBRmQPAkk69PvFT+MziOddwsk3rgt3J8wrKvsbdRmaPgAAAAoAAAAPd2ViX2F1dGhfZG9tYWluAAAAAAEAAAAQYXV0aC5leGFtcGxlLmNvbQAAAAAAAAABtWNrWAAAAEDtqfiGlfmswdVl29e/sJy+rt4Yq+BSn+uEj3B4zVJlEG+xumXc40ft73jq6ogZCTtHYQLy14XgyIuI6AQEVYQI"
)

// Clock reading inside the challenge's validity window
var testClock = time.Unix(1700000300, 0)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testClientKeyPair(t *testing.T) *keypair.KeyPair {
	t.Helper()
	var seed [32]byte
	copy(seed[:], test.DecodeHexString(testClientSeedHex))
	kp, err := keypair.FromRawSeed(seed)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return kp
}

func readTestChallenge(t *testing.T) *webauth.Challenge {
	t.Helper()
	ch, err := webauth.ReadChallenge(
		testChallengeB64,
		testServerAccount,
		gostellar.NetworkTestnet,
		testHomeDomain,
		testWebAuthDomain,
		testClock,
	)
	if err != nil {
		t.Fatalf("unexpected validation error: %s", err)
	}
	return ch
}

func TestReadChallengeValid(t *testing.T) {
	ch := readTestChallenge(t)
	if ch.State() != webauth.StateValidated {
		t.Fatalf("unexpected state: %s", ch.State())
	}
	if len(ch.Nonce) != 64 {
		t.Fatalf("unexpected nonce length: %d", len(ch.Nonce))
	}
	if len(ch.Envelope.Signatures) != 1 {
		t.Fatalf(
			"unexpected signature count: %d",
			len(ch.Envelope.Signatures),
		)
	}
	if ch.Envelope.Transaction.SourceAccount != testServerAccount {
		t.Fatalf(
			"unexpected source account: %s",
			ch.Envelope.Transaction.SourceAccount,
		)
	}
	if ch.Envelope.Transaction.SequenceNumber != 0 {
		t.Fatalf(
			"unexpected sequence number: %d",
			ch.Envelope.Transaction.SequenceNumber,
		)
	}
	if ch.Envelope.Transaction.TimeBounds == nil {
		t.Fatal("expected time bounds")
	}
}

func TestReadChallengeRejections(t *testing.T) {
	testDefs := []struct {
		name           string
		envelopeB64    string
		serverAccount  string
		homeDomain     string
		webAuthDomain  string
		clock          time.Time
		expectedReason webauth.Reason
	}{
		{
			name:           "signature by non-server key",
			envelopeB64:    testChallengeBadSigB64,
			expectedReason: webauth.ReasonBadServerSignature,
		},
		{
			name:           "wrong home domain in auth entry",
			homeDomain:     "evil.example",
			expectedReason: webauth.ReasonMalformedOperation,
		},
		{
			name:           "web auth domain mismatch",
			webAuthDomain:  "other.example.com",
			expectedReason: webauth.ReasonWrongWebAuthDomain,
		},
		{
			name:           "not yet valid",
			clock:          time.Unix(1699999000, 0),
			expectedReason: webauth.ReasonNotYetValid,
		},
		{
			name:           "expired",
			clock:          time.Unix(1700001000, 0),
			expectedReason: webauth.ReasonExpired,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			envelopeB64 := testDef.envelopeB64
			if envelopeB64 == "" {
				envelopeB64 = testChallengeB64
			}
			serverAccount := testDef.serverAccount
			if serverAccount == "" {
				serverAccount = testServerAccount
			}
			homeDomain := testDef.homeDomain
			if homeDomain == "" {
				homeDomain = testHomeDomain
			}
			webAuthDomain := testDef.webAuthDomain
			if webAuthDomain == "" {
				webAuthDomain = testWebAuthDomain
			}
			clock := testDef.clock
			if clock.IsZero() {
				clock = testClock
			}
			ch, err := webauth.ReadChallenge(
				envelopeB64,
				serverAccount,
				gostellar.NetworkTestnet,
				homeDomain,
				webAuthDomain,
				clock,
			)
			var chErr webauth.ChallengeError
			if !errors.As(err, &chErr) {
				t.Fatalf("expected ChallengeError, got %v", err)
			}
			if chErr.Reason != testDef.expectedReason {
				t.Fatalf(
					"did not get expected rejection reason\n  got:    %s\n  wanted: %s",
					chErr.Reason,
					testDef.expectedReason,
				)
			}
			if ch.State() != webauth.StateRejected {
				t.Fatalf("unexpected state: %s", ch.State())
			}
			// A rejected challenge must never reach signing
			kp := testClientKeyPair(t)
			if err := webauth.SignChallenge(ch, kp); !errors.Is(err, webauth.ErrNotValidated) {
				t.Fatalf("expected ErrNotValidated, got %v", err)
			}
		})
	}
}

// reissueChallenge re-signs the reference challenge under the server key
// after replacing its source account
func reissueChallenge(t *testing.T, source string) string {
	t.Helper()
	serverKP, err := keypair.ParseSeed(testServerSeed)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	env, err := txnbuild.ParseEnvelope(testChallengeB64)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	env.Transaction.SourceAccount = source
	env.Signatures = nil
	if err := env.Sign(gostellar.NetworkTestnet.ID(), serverKP); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	encoded, err := env.Base64()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return encoded
}

func TestReadChallengeMuxedSource(t *testing.T) {
	serverKP, err := keypair.ParseSeed(testServerSeed)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	// Muxed form of the server account matches on its ed25519 component
	payload := append(
		serverKP.PublicKeyBytes(),
		0, 0, 0, 0, 0, 0, 0, 1,
	)
	muxedServer := strkey.MustEncode(strkey.VersionByteMuxedAccount, payload)
	ch, err := webauth.ReadChallenge(
		reissueChallenge(t, muxedServer),
		testServerAccount,
		gostellar.NetworkTestnet,
		testHomeDomain,
		testWebAuthDomain,
		testClock,
	)
	if err != nil {
		t.Fatalf("unexpected validation error: %s", err)
	}
	if ch.State() != webauth.StateValidated {
		t.Fatalf("unexpected state: %s", ch.State())
	}
	// A muxed source over a different key is still the wrong source
	otherKP, err := keypair.Random()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	otherPayload := append(
		otherKP.PublicKeyBytes(),
		0, 0, 0, 0, 0, 0, 0, 1,
	)
	muxedOther := strkey.MustEncode(
		strkey.VersionByteMuxedAccount,
		otherPayload,
	)
	_, err = webauth.ReadChallenge(
		reissueChallenge(t, muxedOther),
		testServerAccount,
		gostellar.NetworkTestnet,
		testHomeDomain,
		testWebAuthDomain,
		testClock,
	)
	var chErr webauth.ChallengeError
	if !errors.As(err, &chErr) {
		t.Fatalf("expected ChallengeError, got %v", err)
	}
	if chErr.Reason != webauth.ReasonWrongSource {
		t.Fatalf("unexpected rejection reason: %s", chErr.Reason)
	}
}

func TestSignChallenge(t *testing.T) {
	ch := readTestChallenge(t)
	kp := testClientKeyPair(t)
	if err := webauth.SignChallenge(ch, kp); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if ch.State() != webauth.StateSigned {
		t.Fatalf("unexpected state: %s", ch.State())
	}
	// Client signature appended after the server's
	if len(ch.Envelope.Signatures) != 2 {
		t.Fatalf(
			"unexpected signature count: %d",
			len(ch.Envelope.Signatures),
		)
	}
	if ch.Envelope.Signatures[1].Hint != kp.Hint() {
		t.Fatalf("unexpected hint: %x", ch.Envelope.Signatures[1].Hint)
	}
	hash, err := ch.Envelope.Hash(gostellar.NetworkTestnet.ID())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !kp.Verify(hash[:], ch.Envelope.Signatures[1].Signature) {
		t.Fatal("expected client signature to verify")
	}
}

func TestVerifySignatures(t *testing.T) {
	ch := readTestChallenge(t)
	kp1 := testClientKeyPair(t)
	kp2, err := keypair.Random()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := webauth.SignChallenge(ch, kp1, kp2); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	kp3, err := keypair.Random()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	networkID := gostellar.NetworkTestnet.ID()
	// Declared order differs from signing order, and one declared signer
	// never signed
	weight, err := webauth.VerifySignatures(
		ch.Envelope,
		networkID,
		[]webauth.SignerWeight{
			{Address: kp3.Address(), Weight: 10},
			{Address: kp2.Address(), Weight: 2},
			{Address: kp1.Address(), Weight: 1},
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if weight != 3 {
		t.Fatalf("unexpected combined weight: %d", weight)
	}
}

func TestAuthenticate(t *testing.T) {
	defer goleak.VerifyNone(t)
	kp := testClientKeyPair(t)
	mux := http.NewServeMux()
	mux.HandleFunc(
		"GET /auth",
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("account") != kp.Address() {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if r.URL.Query().Get("home_domain") != testHomeDomain {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_ = json.NewEncoder(w).Encode(
				map[string]string{"transaction": testChallengeB64},
			)
		},
	)
	mux.HandleFunc(
		"POST /auth",
		func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			var submitted struct {
				Transaction string `json:"transaction"`
			}
			if err := json.Unmarshal(body, &submitted); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			env, err := txnbuild.ParseEnvelope(submitted.Transaction)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			// Server and client signatures expected
			if len(env.Signatures) != 2 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			hash, err := env.Hash(gostellar.NetworkTestnet.ID())
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if !kp.Verify(hash[:], env.Signatures[1].Signature) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(
				map[string]string{"token": "test-token"},
			)
		},
	)
	server := httptest.NewServer(mux)
	defer server.Close()
	httpClient := server.Client()
	defer httpClient.CloseIdleConnections()
	client := webauth.NewClient(
		server.URL+"/auth",
		testServerAccount,
		testHomeDomain,
		gostellar.NetworkTestnet,
		webauth.WithHTTPClient(httpClient),
		webauth.WithLogger(
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		),
		webauth.WithClock(func() time.Time { return testClock }),
		webauth.WithWebAuthDomain(testWebAuthDomain),
		webauth.WithTimeout(5*time.Second),
	)
	token, err := client.Authenticate(context.Background(), kp.Address(), kp)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if token != "test-token" {
		t.Fatalf("unexpected token: %s", token)
	}
}

func TestSubmitChallengeFailureStatus(t *testing.T) {
	defer goleak.VerifyNone(t)
	var requests int
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			if requests == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(
				map[string]string{"token": "retry-token"},
			)
		}),
	)
	defer server.Close()
	httpClient := server.Client()
	defer httpClient.CloseIdleConnections()
	client := webauth.NewClient(
		server.URL,
		testServerAccount,
		testHomeDomain,
		gostellar.NetworkTestnet,
		webauth.WithHTTPClient(httpClient),
		webauth.WithLogger(
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		),
		webauth.WithClock(func() time.Time { return testClock }),
	)
	ch := readTestChallenge(t)
	kp := testClientKeyPair(t)
	if err := webauth.SignChallenge(ch, kp); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	_, err := client.SubmitChallenge(context.Background(), ch)
	var transportErr webauth.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transportErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status code: %d", transportErr.StatusCode)
	}
	// A failed submission is not terminal; the caller may retry
	token, err := client.SubmitChallenge(context.Background(), ch)
	if err != nil {
		t.Fatalf("unexpected error on resubmission: %s", err)
	}
	if token != "retry-token" {
		t.Fatalf("unexpected token: %s", token)
	}
}

func TestSubmitUnsignedChallenge(t *testing.T) {
	client := webauth.NewClient(
		"http://localhost:1",
		testServerAccount,
		testHomeDomain,
		gostellar.NetworkTestnet,
	)
	ch := readTestChallenge(t)
	_, err := client.SubmitChallenge(context.Background(), ch)
	if !errors.Is(err, webauth.ErrNotSigned) {
		t.Fatalf("expected ErrNotSigned, got %v", err)
	}
}
