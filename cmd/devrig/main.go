package main

import (
	"fmt"
	"os"

	"github.com/devrig/devrig/pkg/errors"
)

func main() {
	if err := Execute(); err != nil {
		// A fatal step already printed its diagnostic block; anything
		// else still needs to be surfaced.
		if !errors.IsErrorCode(err, errors.ErrStepFatal) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
