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
	"github.com/blinklabs-io/gostellar/keystore"
)

type storeFlags struct {
	flagset    *flag.FlagSet
	seed       string
	file       string
	passphrase string
}

func newStoreFlags(name string) *storeFlags {
	f := &storeFlags{
		flagset: flag.NewFlagSet(name, flag.ExitOnError),
	}
	if name == "store" {
		f.flagset.StringVar(
			&f.seed,
			"seed",
			"",
			"seed identifier of the key to store",
		)
	}
	f.flagset.StringVar(
		&f.file,
		"file",
		"",
		"path of the encrypted key file",
	)
	f.flagset.StringVar(
		&f.passphrase,
		"passphrase",
		"",
		"passphrase protecting the key file",
	)
	return f
}

func runStore(f *globalFlags) {
	storeFlags := newStoreFlags("store")
	err := storeFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if storeFlags.seed == "" || storeFlags.file == "" ||
		storeFlags.passphrase == "" {
		fmt.Printf("You must specify -seed, -file, and -passphrase\n")
		os.Exit(1)
	}
	kp, err := keypair.ParseSeed(storeFlags.seed)
	if err != nil {
		fmt.Printf("failed to parse seed: %s\n", err)
		os.Exit(1)
	}
	if err := keystore.Save(storeFlags.file, storeFlags.passphrase, kp); err != nil {
		fmt.Printf("failed to store key: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Stored key for %s in %s\n", kp.Address(), storeFlags.file)
}

func runUnlock(f *globalFlags) {
	unlockFlags := newStoreFlags("unlock")
	err := unlockFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if unlockFlags.file == "" || unlockFlags.passphrase == "" {
		fmt.Printf("You must specify -file and -passphrase\n")
		os.Exit(1)
	}
	kp, err := keystore.Load(unlockFlags.file, unlockFlags.passphrase)
	if err != nil {
		fmt.Printf("failed to unlock key: %s\n", err)
		os.Exit(1)
	}
	seed, err := kp.Seed()
	if err != nil {
		fmt.Printf("failed to export seed: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Address: %s\n", kp.Address())
	fmt.Printf("Seed:    %s\n", seed)
}
