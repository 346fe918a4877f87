package cli

import (
	"fmt"

	"github.com/gourmet-box/gourmet/core"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

var InfoCommand = &cli.Command{
	Name:  "info",
	Usage: "Print the effective configuration and the restaurant record",
	Flags: configFlags(),
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		fmt.Println("🌐 Address:", cfg.Address())
		fmt.Println("📁 Views Directory:", cfg.ViewsDir)
		fmt.Println("📁 Public Directory:", cfg.PublicDir)
		fmt.Println("🔁 Cache Enabled:", cfg.CacheEnabled)
		fmt.Println("🗜️  Minify HTML:", cfg.MinifyHTML)
		fmt.Println("🔁 Debug Headers Enabled:", cfg.DebugHeaders)
		fmt.Println("🔁 Debug Logs Enabled:", cfg.DebugLogs)
		fmt.Println()

		out, err := yaml.Marshal(core.GourmetBox())
		if err != nil {
			return fmt.Errorf("encode restaurant: %w", err)
		}
		fmt.Print(string(out))

		return nil
	},
}
