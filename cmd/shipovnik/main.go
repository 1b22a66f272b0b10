// Command shipovnik generates Shipovnik key pairs, signs and verifies
// messages, and reports signing statistics.
package main

import (
	"os"
)

func main() {
	// On failure cobra prints the usage and the error string; only the
	// exit status is left to set.
	if newRootCmd().Execute() != nil {
		os.Exit(1)
	}
}
