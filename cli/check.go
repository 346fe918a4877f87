package cli

import (
	"fmt"

	"github.com/gourmet-box/gourmet/core"
	"github.com/urfave/cli/v2"
)

var CheckCommand = &cli.Command{
	Name:  "check",
	Usage: "Parse and render the index template against the restaurant record",
	Flags: configFlags(),
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		renderer := core.NewRenderer(cfg.ViewsDir, core.TemplateFuncs(cfg.PublicDir))

		var failed bool
		for _, page := range []core.Page{
			{Restaurant: core.GourmetBox()},
			{Restaurant: core.GourmetBox(), LiveReload: true},
		} {
			label := "prod"
			if page.LiveReload {
				label = "dev"
			}

			if _, err := renderer.Render(page); err != nil {
				failed = true
				fmt.Printf("❌ %s (%s) → %v\n", renderer.Path(), label, err)
				continue
			}
			fmt.Printf("✅ %s (%s)\n", renderer.Path(), label)
		}

		if failed {
			return cli.Exit("template check failed", 1)
		}

		fmt.Println("✅ Template validated successfully.")
		return nil
	},
}
