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

	gostellar "github.com/blinklabs-io/gostellar"
)

type globalFlags struct {
	flagset *flag.FlagSet
	network string
}

func newGlobalFlags() *globalFlags {
	f := &globalFlags{
		flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.network,
		"network",
		"testnet",
		"specifies the network to scope transaction hashes to",
	)
	return f
}

func (f *globalFlags) lookupNetwork() gostellar.Network {
	network := gostellar.NetworkByName(f.network)
	if network == gostellar.NetworkInvalid {
		fmt.Printf("Invalid network specified: %s\n", f.network)
		os.Exit(1)
	}
	return network
}

func main() {
	f := newGlobalFlags()
	err := f.flagset.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}

	if len(f.flagset.Args()) > 0 {
		switch f.flagset.Arg(0) {
		case "keygen":
			runKeygen(f)
		case "inspect":
			runInspect(f)
		case "store":
			runStore(f)
		case "unlock":
			runUnlock(f)
		case "auth":
			runAuth(f)
		default:
			fmt.Printf("Unknown subcommand: %s\n", f.flagset.Arg(0))
			os.Exit(1)
		}
	} else {
		fmt.Printf(
			"You must specify a subcommand (keygen, inspect, store, unlock, or auth)\n",
		)
		os.Exit(1)
	}
}
