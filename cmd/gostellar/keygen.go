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

	"github.com/blinklabs-io/gostellar/keypair"
)

type keygenFlags struct {
	flagset    *flag.FlagSet
	mnemonic   string
	passphrase string
	index      uint
	words      bool
}

func newKeygenFlags() *keygenFlags {
	f := &keygenFlags{
		flagset: flag.NewFlagSet("keygen", flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.mnemonic,
		"mnemonic",
		"",
		"derive the key pair from a BIP-39 mnemonic instead of random entropy",
	)
	f.flagset.StringVar(
		&f.passphrase,
		"passphrase",
		"",
		"optional BIP-39 passphrase used with -mnemonic",
	)
	f.flagset.UintVar(
		&f.index,
		"index",
		0,
		"account index for mnemonic derivation",
	)
	f.flagset.BoolVar(
		&f.words,
		"words",
		false,
		"generate and print a new 24-word mnemonic along with its first key",
	)
	return f
}

func runKeygen(f *globalFlags) {
	keygenFlags := newKeygenFlags()
	err := keygenFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	var kp *keypair.KeyPair
	if keygenFlags.words {
		mnemonic, err := keypair.NewMnemonic()
		if err != nil {
			fmt.Printf("failed to generate mnemonic: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("Mnemonic: %s\n", mnemonic)
		kp, err = keypair.FromMnemonic(
			mnemonic,
			keygenFlags.passphrase,
			uint32(keygenFlags.index), // #nosec G115
		)
		if err != nil {
			fmt.Printf("failed to derive key pair: %s\n", err)
			os.Exit(1)
		}
	} else if keygenFlags.mnemonic != "" {
		kp, err = keypair.FromMnemonic(
			keygenFlags.mnemonic,
			keygenFlags.passphrase,
			uint32(keygenFlags.index), // #nosec G115
		)
		if err != nil {
			fmt.Printf("failed to derive key pair: %s\n", err)
			os.Exit(1)
		}
	} else {
		kp, err = keypair.Random()
		if err != nil {
			fmt.Printf("failed to generate key pair: %s\n", err)
			os.Exit(1)
		}
	}
	seed, err := kp.Seed()
	if err != nil {
		fmt.Printf("failed to export seed: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Address: %s\n", kp.Address())
	fmt.Printf("Seed:    %s\n", seed)
}
