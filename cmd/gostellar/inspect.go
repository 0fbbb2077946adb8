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
	"flag"
	"fmt"
	"os"

	"github.com/blinklabs-io/gostellar/strkey"
	"github.com/blinklabs-io/gostellar/txnbuild"
)

type inspectFlags struct {
	flagset  *flag.FlagSet
	envelope string
}

func newInspectFlags() *inspectFlags {
	f := &inspectFlags{
		flagset: flag.NewFlagSet("inspect", flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.envelope,
		"envelope",
		"",
		"base64 transaction envelope to decode instead of an identifier",
	)
	return f
}

func runInspect(f *globalFlags) {
	inspectFlags := newInspectFlags()
	err := inspectFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if inspectFlags.envelope != "" {
		inspectEnvelope(f, inspectFlags.envelope)
		return
	}
	if len(inspectFlags.flagset.Args()) == 0 {
		fmt.Printf("You must specify an identifier or -envelope\n")
		os.Exit(1)
	}
	inspectIdentifier(inspectFlags.flagset.Arg(0))
}

func inspectIdentifier(identifier string) {
	version, payload, err := strkey.DecodeAny(identifier)
	if err != nil {
		fmt.Printf("failed to decode identifier: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Kind:    %s\n", version)
	fmt.Printf("Payload: %x\n", payload)
}

func inspectEnvelope(f *globalFlags, envelopeB64 string) {
	env, err := txnbuild.ParseEnvelope(envelopeB64)
	if err != nil {
		fmt.Printf("failed to decode envelope: %s\n", err)
		os.Exit(1)
	}
	network := f.lookupNetwork()
	hash, err := env.Hash(network.ID())
	if err != nil {
		fmt.Printf("failed to hash transaction: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Hash (%s): %x\n", network, hash)
	fmt.Printf("Source:     %s\n", env.Transaction.SourceAccount)
	fmt.Printf("Sequence:   %d\n", env.Transaction.SequenceNumber)
	fmt.Printf("Fee:        %d\n", env.Transaction.Fee)
	if env.Transaction.TimeBounds != nil {
		fmt.Printf(
			"Valid:      [%d, %d]\n",
			env.Transaction.TimeBounds.MinTime,
			env.Transaction.TimeBounds.MaxTime,
		)
	}
	for idx, op := range env.Transaction.Operations {
		fmt.Printf(
			"Operation %d: %s\n",
			idx,
			op.Body.OperationType(),
		)
		if op.SourceAccount != "" {
			fmt.Printf("  Source: %s\n", op.SourceAccount)
		}
	}
	for idx, sig := range env.Signatures {
		fmt.Printf("Signature %d: hint=%x\n", idx, sig.Hint)
	}
}
