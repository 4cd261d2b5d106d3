package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/payments/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Completion().Complete("pay")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	if flag.NArg() > 0 && !isCommand(commander, flag.Arg(0)) {
		// pay <file> is a shorthand for pay process <file>.
		if isLog(flag.Arg(0)) {
			flag.CommandLine.Parse(append([]string{"process"}, flag.Args()...))
		} else if found, code := cmd.RunExtension(flag.Arg(0), flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// isCommand reports whether name is a registered subcommand.
func isCommand(c *subcommands.Commander, name string) (found bool) {
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		if sub.Name() == name {
			found = true
		}
	})
	return found
}

// isLog reports whether name can be read as a transaction log.
func isLog(name string) bool {
	if name == "-" {
		return true
	}
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}
