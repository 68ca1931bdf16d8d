package launcher

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-streamkit/conf"
	"github.com/rony4d/go-streamkit/logging"
)

// setup runs before any command: load the YAML config, let explicit flags
// override it, then configure the shared logger.
func setup(ctx *cli.Context) error {
	cfg, err := conf.Load(ctx.GlobalString("config"))
	if err != nil {
		return err
	}
	if ctx.GlobalIsSet("log.verbosity") {
		cfg.Log.Verbosity = ctx.GlobalInt("log.verbosity")
	}
	if ctx.GlobalIsSet("log.format") {
		cfg.Log.Format = ctx.GlobalString("log.format")
	}
	if ctx.GlobalIsSet("sentry.dsn") {
		cfg.Sentry.DSN = ctx.GlobalString("sentry.dsn")
	}

	logging.Configure(cfg.Log.Verbosity, cfg.Log.Format)
	if cfg.Sentry.DSN != "" {
		if err := logging.EnableSentry(cfg.Sentry.DSN); err != nil {
			return fmt.Errorf("sentry: %w", err)
		}
	}
	return nil
}

// payloadArg decodes the single hex payload argument of a command. Both bare
// and 0x-prefixed hex are accepted.
func payloadArg(ctx *cli.Context) ([]byte, error) {
	if ctx.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one hex payload argument")
	}
	arg := ctx.Args().First()
	if strings.HasPrefix(arg, "0x") {
		return hexutil.Decode(arg)
	}
	raw, err := hex.DecodeString(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid hex payload: %v", err)
	}
	return raw, nil
}
