package cli

import (
	"os/signal"
	"syscall"

	"github.com/effective-security/xcsr/api"
	"github.com/effective-security/xcsr/csr"
	"github.com/effective-security/xcsr/internal/version"
	"github.com/effective-security/xcsr/keyprov"
	"github.com/effective-security/xlog"
)

// ServeCmd specifies flags for the serve command
type ServeCmd struct {
	Cfg  string `help:"location of the server config file"`
	Addr string `help:"listen address; overrides the config file" default:""`
}

// Run the command
func (a *ServeCmd) Run(ctx *Cli) error {
	cfg := new(api.Config)
	if a.Cfg != "" {
		loaded, err := api.LoadConfig(a.Cfg)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.Addr != "" {
		cfg.Addr = a.Addr
	}
	cfg.Debug = cfg.Debug || ctx.Debug

	prov := csr.NewProvider(keyprov.NewInMemoryProvider())
	h := api.NewHandler(prov, version.Current().String(), cfg.Debug)
	srv := api.NewServer(cfg, h)

	runCtx, stop := signal.NotifyContext(ctx.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.KV(xlog.INFO, "status", "starting", "addr", cfg.Addr)
	return srv.Run(runCtx)
}
