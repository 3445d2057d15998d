// Package main provides the pm CLI.
package main

import (
	"errors"
	"fmt"
	"os"
)

// usageError marks errors caused by bad invocation rather than a failed
// run; they map to exit code 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var usage *usageError
		switch {
		case errors.As(err, &usage):
			os.Exit(2)
		default:
			os.Exit(1)
		}
	}
}
