package server

import (
	"context"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"richdoc/state"
)

func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("server")

	conf := env.Cfg.Server
	if cmd.IsSet("listen") {
		conf.Listen = cmd.String("listen")
	}
	log.Debug("Serving", zap.String("listen", conf.Listen), zap.Int64("max_request_size", conf.MaxRequestSize), zap.Stringer("format", env.Format))

	return New(env.Gen, conf, env.Format, env.Rpt, log).ListenAndServe(ctx)
}
