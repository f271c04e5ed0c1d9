package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/oakwood-commons/jvx/cmd"
	"github.com/oakwood-commons/jvx/pkg/logger"
)

func main() {
	exitCode := 0
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitCode = 1
		var inputErr *cmd.InputError
		if errors.As(err, &inputErr) {
			exitCode = 2
		}
	}

	logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
