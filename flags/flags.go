package flags

import (
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

// NewApp constructs the bare streamkit CLI application; the launcher fills
// in commands and the action.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "streamkit"
	app.Usage = "inspect and measure binary wire payloads"
	app.Version = "0.1.0"
	app.Writer = os.Stdout
	return app
}

// CommonFlags returns the global flags shared across subcommands.
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to a YAML config file",
		},
		cli.IntFlag{
			Name:  "log.verbosity",
			Usage: "Logging verbosity (0=fatal,1=error,2=warn,3=info,4=debug,5=trace)",
			Value: 3,
		},
		cli.StringFlag{
			Name:  "log.format",
			Usage: "Log output format (text|json)",
			Value: "text",
		},
		cli.StringFlag{
			Name:  "sentry.dsn",
			Usage: "Report error-level events to this Sentry DSN",
		},
		cli.IntFlag{
			Name:  "meter.window",
			Usage: "Byte-rate meter window in seconds",
			Value: 10,
		},
	}
}
