package main

import (
	"log"
	"os"

	gourmetcli "github.com/gourmet-box/gourmet/cli"
	clilib "github.com/urfave/cli/v2"
)

func newApp() *clilib.App {
	return &clilib.App{
		Name:  "gourmetbox",
		Usage: "Serve the Gourmet Box restaurant showcase",
		// with no command the site is served in production mode
		Flags:  gourmetcli.ProdCommand.Flags,
		Action: gourmetcli.ProdCommand.Action,
		Commands: []*clilib.Command{
			gourmetcli.DevCommand,
			gourmetcli.ProdCommand,
			gourmetcli.CheckCommand,
			gourmetcli.InfoCommand,
		},
	}
}

func runApp(args []string) error {
	return newApp().Run(args)
}

func main() {
	if err := runApp(os.Args); err != nil {
		log.Fatal(err)
	}
}
