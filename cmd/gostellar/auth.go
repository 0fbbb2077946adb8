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

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/blinklabs-io/gostellar/keypair"
	"github.com/blinklabs-io/gostellar/webauth"
)

type authFlags struct {
	flagset       *flag.FlagSet
	endpoint      string
	serverAccount string
	homeDomain    string
	webAuthDomain string
	seed          string
	timeout       time.Duration
	debug         bool
}

func newAuthFlags() *authFlags {
	f := &authFlags{
		flagset: flag.NewFlagSet("auth", flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.endpoint,
		"endpoint",
		"",
		"challenge endpoint URL",
	)
	f.flagset.StringVar(
		&f.serverAccount,
		"server-account",
		"",
		"account the server signs challenges with",
	)
	f.flagset.StringVar(
		&f.homeDomain,
		"home-domain",
		"",
		"home domain of the service",
	)
	f.flagset.StringVar(
		&f.webAuthDomain,
		"web-auth-domain",
		"",
		"expected web_auth_domain entry (not checked when empty)",
	)
	f.flagset.StringVar(
		&f.seed,
		"seed",
		"",
		"seed identifier of the signing key",
	)
	f.flagset.DurationVar(
		&f.timeout,
		"timeout",
		30*time.Second,
		"per-request timeout",
	)
	f.flagset.BoolVar(&f.debug, "debug", false, "enable debug logging")
	return f
}

func runAuth(f *globalFlags) {
	authFlags := newAuthFlags()
	err := authFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if authFlags.endpoint == "" || authFlags.serverAccount == "" ||
		authFlags.homeDomain == "" || authFlags.seed == "" {
		fmt.Printf(
			"You must specify -endpoint, -server-account, -home-domain, and -seed\n",
		)
		os.Exit(1)
	}
	kp, err := keypair.ParseSeed(authFlags.seed)
	if err != nil {
		fmt.Printf("failed to parse seed: %s\n", err)
		os.Exit(1)
	}
	logLevel := slog.LevelInfo
	if authFlags.debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(
		slog.NewTextHandler(
			os.Stderr,
			&slog.HandlerOptions{Level: logLevel},
		),
	)
	client := webauth.NewClient(
		authFlags.endpoint,
		authFlags.serverAccount,
		authFlags.homeDomain,
		f.lookupNetwork(),
		webauth.WithLogger(logger),
		webauth.WithWebAuthDomain(authFlags.webAuthDomain),
		webauth.WithTimeout(authFlags.timeout),
	)
	token, err := client.Authenticate(
		context.Background(),
		kp.Address(),
		kp,
	)
	if err != nil {
		fmt.Printf("authentication failed: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Token: %s\n", token)
}
