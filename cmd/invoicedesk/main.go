package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/invoicedesk/invoicedesk/cmd/invoicedesk/cli"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	cli.Register(subcommands.DefaultCommander)

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
