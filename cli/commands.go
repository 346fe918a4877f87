package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gourmet-box/gourmet"
	"github.com/gourmet-box/gourmet/core"
	"github.com/urfave/cli/v2"
)

const DefaultConfigFile = "gourmetbox.config.yml"

var startServer = gourmet.Start

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Value: DefaultConfigFile, Usage: "path to the yaml config file"},
		&cli.IntFlag{Name: "port", Usage: "listening port (overrides PORT)"},
		&cli.StringFlag{Name: "views", Usage: "directory holding index.html"},
		&cli.StringFlag{Name: "public", Usage: "directory served as static assets"},
	}
}

// loadConfig reads the config file and environment, then applies any flags
// given on the command line.
func loadConfig(c *cli.Context) (core.Config, error) {
	cfg, err := core.LoadConfig(c.String("config"))
	if err != nil {
		return core.Config{}, err
	}

	if c.IsSet("port") {
		cfg.Port = c.Int("port")
	}
	if c.IsSet("views") {
		cfg.ViewsDir = c.String("views")
	}
	if c.IsSet("public") {
		cfg.PublicDir = c.String("public")
	}

	return cfg, cfg.Validate()
}

func serve(c *cli.Context, cfg core.Config) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return startServer(ctx, cfg)
}

var DevCommand = &cli.Command{
	Name:  "dev",
	Usage: "Serve in dev mode (no caching, template watch, live reload)",
	Flags: configFlags(),
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		cfg.Env = "dev"
		cfg.CacheEnabled = false
		return serve(c, cfg)
	},
}

var ProdCommand = &cli.Command{
	Name:   "prod",
	Usage:  "Serve in production mode (page caching on by default)",
	Flags:  append(configFlags(), &cli.BoolFlag{Name: "no-cache", Usage: "render the page on every request"}),
	Action: runProd,
}

func runProd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	cfg.Env = "prod"
	cfg.CacheEnabled = !c.Bool("no-cache")
	return serve(c, cfg)
}
