package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/wardenhq/warden/cmd/warden/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		var exitErr *commands.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
