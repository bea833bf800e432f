package main

import (
	"encoding/hex"
	"flag"
	"os"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/fair-dice/domain/fairness"
	"github.com/luca-patrignani/fair-dice/ledger"
)

// runVerify checks a revealed commitment, or a sealed transcript file, and
// returns the process exit code.
func runVerify(name string, args []string) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	value := fs.Int("value", -1, "revealed value")
	key := fs.String("key", "", "revealed key, hex encoded")
	digest := fs.String("hmac", "", "published commitment, hex encoded")
	transcript := fs.String("transcript", "", "sealed transcript file to verify")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *transcript != "" {
		data, err := os.ReadFile(*transcript)
		if err != nil {
			pterm.Error.Println(err)
			return 1
		}
		if err := ledger.VerifySealed(data); err != nil {
			pterm.Error.Printfln("Transcript is not valid: %v", err)
			return 1
		}
		pterm.Success.Println("Transcript and seal are valid")
		return 0
	}

	if *value < 0 || *key == "" || *digest == "" {
		pterm.Error.Println("-value, -key and -hmac are required")
		fs.Usage()
		return 1
	}
	rawKey, err := hex.DecodeString(*key)
	if err != nil {
		pterm.Error.Printfln("Invalid key: %v", err)
		return 1
	}
	if !fairness.Verify(*value, rawKey, *digest) {
		pterm.Error.Printfln("Commitment %s does not match value %d", *digest, *value)
		return 1
	}
	pterm.Success.Printfln("Commitment matches value %d", *value)
	return 0
}
