package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ulahello/libsw/cmd/swatch/cmd"
	"github.com/ulahello/libsw/internal/logger"
)

func main() {
	err := cmd.Execute()
	_ = logger.Close()
	if err == nil {
		return
	}

	var exitErr *cmd.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
		os.Exit(exitErr.Code)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
