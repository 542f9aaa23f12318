// cmd/vmips is the command-line interface to vmips, a VMIPS-style vector
// processor simulator with separate functional and timing cores.
package main

import (
	"context"
	"os"

	"github.com/mbellamy/vmips/internal/cli"
	"github.com/mbellamy/vmips/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Run(),
	cmd.Time(),
}

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
