// Command pfadmin is the terminal console for PFA data management.
package main

import (
	"errors"
	"os"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/cli"
	"github.com/eutimioliusbel/PFA2.2-sub004/pkg/version"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	// exitUnsupportedServer signals a version handshake failure so wrapper
	// scripts can tell an incompatible server from an ordinary failure.
	exitUnsupportedServer = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	root := cli.NewRootCmd(version.GetVersion())

	// Cobra prints the error itself.
	if err := root.Execute(); err != nil {
		if errors.Is(err, api.ErrUnsupportedServer) {
			return exitUnsupportedServer
		}
		return exitError
	}
	return exitOK
}
