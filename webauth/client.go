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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gostellar "github.com/blinklabs-io/gostellar"
	"github.com/blinklabs-io/gostellar/keypair"
)

const defaultTimeout = 30 * time.Second

// Client performs the challenge/response authentication handshake against a
// server endpoint. The security-critical validate/sign phase is pure
// (ReadChallenge, SignChallenge); only FetchChallenge and SubmitChallenge
// touch the network
type Client struct {
	endpoint      string
	serverAccount string
	homeDomain    string
	webAuthDomain string
	network       gostellar.Network
	httpClient    *http.Client
	logger        *slog.Logger
	now           func() time.Time
	timeout       time.Duration
}

// ClientOptionFunc is a type that represents functions that modify the Client config
type ClientOptionFunc func(*Client)

// WithHTTPClient specifies the HTTP client to use. If none is provided, a
// default client is used
func WithHTTPClient(httpClient *http.Client) ClientOptionFunc {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger specifies the logger to use. If none is provided, the default
// slog logger is used
func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithClock specifies the time source used for time-bound checks. Intended
// for testing
func WithClock(now func() time.Time) ClientOptionFunc {
	return func(c *Client) {
		c.now = now
	}
}

// WithWebAuthDomain specifies the expected web_auth_domain value in fetched
// challenges. If none is provided, the entry is not checked
func WithWebAuthDomain(webAuthDomain string) ClientOptionFunc {
	return func(c *Client) {
		c.webAuthDomain = webAuthDomain
	}
}

// WithTimeout specifies the per-request timeout for challenge fetch and
// submission
func WithTimeout(timeout time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient returns a Client for the given endpoint. serverAccount is the
// account address the server signs challenges with, and homeDomain names the
// service being authenticated against
func NewClient(
	endpoint string,
	serverAccount string,
	homeDomain string,
	network gostellar.Network,
	options ...ClientOptionFunc,
) *Client {
	c := &Client{
		endpoint:      endpoint,
		serverAccount: serverAccount,
		homeDomain:    homeDomain,
		network:       network,
		httpClient:    http.DefaultClient,
		logger:        slog.Default(),
		now:           time.Now,
		timeout:       defaultTimeout,
	}
	for _, option := range options {
		option(c)
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

type challengeResponse struct {
	Transaction string `json:"transaction"`
}

type submitRequest struct {
	Transaction string `json:"transaction"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// FetchChallenge requests a challenge for the given account and validates it.
// Transport failures are reported as TransportError and never retried
func (c *Client) FetchChallenge(
	ctx context.Context,
	account string,
) (*Challenge, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	reqURL := fmt.Sprintf(
		"%s?account=%s&home_domain=%s",
		c.endpoint,
		url.QueryEscape(account),
		url.QueryEscape(c.homeDomain),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, TransportError{Op: "challenge fetch", Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, TransportError{Op: "challenge fetch", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, TransportError{
			Op:         "challenge fetch",
			StatusCode: resp.StatusCode,
		}
	}
	var challengeResp challengeResponse
	if err := json.NewDecoder(resp.Body).Decode(&challengeResp); err != nil {
		return nil, TransportError{Op: "challenge fetch", Err: err}
	}
	c.logger.Debug(
		"received auth challenge",
		"component", "webauth",
		"account", account,
		"home_domain", c.homeDomain,
	)
	ch, err := ReadChallenge(
		challengeResp.Transaction,
		c.serverAccount,
		c.network,
		c.homeDomain,
		c.webAuthDomain,
		c.now(),
	)
	if err != nil {
		c.logger.Debug(
			"challenge validation failed",
			"component", "webauth",
			"error", err,
		)
		return ch, err
	}
	return ch, nil
}

// SubmitChallenge exchanges a signed challenge for a bearer token
func (c *Client) SubmitChallenge(
	ctx context.Context,
	ch *Challenge,
) (string, error) {
	// A previously submitted challenge may be submitted again; retry
	// policy belongs to the caller
	if ch.State() != StateSigned && ch.State() != StateSubmitted {
		return "", ErrNotSigned
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	envelopeB64, err := ch.Envelope.Base64()
	if err != nil {
		return "", err
	}
	reqBody, err := json.Marshal(submitRequest{Transaction: envelopeB64})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint,
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return "", TransportError{Op: "challenge submission", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", TransportError{Op: "challenge submission", Err: err}
	}
	ch.state = StateSubmitted
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", TransportError{
			Op:         "challenge submission",
			StatusCode: resp.StatusCode,
		}
	}
	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", TransportError{Op: "challenge submission", Err: err}
	}
	ch.state = StateAuthenticated
	c.logger.Debug(
		"authentication complete",
		"component", "webauth",
	)
	return tokenResp.Token, nil
}

// Authenticate runs the full handshake for the given account: fetch and
// validate a challenge, sign it with the supplied signers in order, and
// submit it for a bearer token
func (c *Client) Authenticate(
	ctx context.Context,
	account string,
	signers ...keypair.Signer,
) (string, error) {
	ch, err := c.FetchChallenge(ctx, account)
	if err != nil {
		return "", err
	}
	if err := SignChallenge(ch, signers...); err != nil {
		return "", err
	}
	return c.SubmitChallenge(ctx, ch)
}
