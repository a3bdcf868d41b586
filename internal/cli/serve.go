package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kgviz/internal/server"
	"github.com/matzehuels/kgviz/pkg/config"
	"github.com/matzehuels/kgviz/pkg/observability"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr         string
	maxBodyBytes int64
	noMetrics    bool
	noValidate   bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the conversion HTTP service",
		Long: `Run the conversion HTTP service.

Routes:
  POST /v1/convert?validate=false&source=name   envelope in, graph document out
  GET  /healthz                                 liveness probe
  GET  /metrics                                 Prometheus metrics

Flags override the [serve] section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().Int64Var(&opts.maxBodyBytes, "max-body-bytes", config.DefaultMaxBodyBytes, "maximum request body size")
	cmd.Flags().BoolVar(&opts.noMetrics, "no-metrics", false, "disable the /metrics endpoint")
	cmd.Flags().BoolVar(&opts.noValidate, "no-validate", false, "skip link validation unless a request asks for it")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sopts, metricsEnabled, err := c.serveOptions(cmd, opts)
	if err != nil {
		return err
	}
	if metricsEnabled {
		m := observability.NewMetrics()
		observability.SetConvertHooks(m)
		sopts.Metrics = m
	}

	printInfo("Serving on %s", StyleHighlight.Render(sopts.Addr))
	return server.New(sopts, c.Logger).ListenAndServe(ctx)
}

// serveOptions merges config and flags into server options.
func (c *CLI) serveOptions(cmd *cobra.Command, opts serveOpts) (server.Options, bool, error) {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return server.Options{}, false, err
	}
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Serve.Addr = opts.addr
	}
	if flags.Changed("max-body-bytes") {
		cfg.Serve.MaxBodyBytes = opts.maxBodyBytes
	}
	if opts.noMetrics {
		cfg.Serve.Metrics = false
	}
	if opts.noValidate {
		cfg.Validate = false
	}
	if err := cfg.Check(); err != nil {
		return server.Options{}, false, err
	}

	generatedAt, err := config.GeneratedAt()
	if err != nil {
		return server.Options{}, false, err
	}
	sopts := server.OptionsFromConfig(cfg)
	sopts.GeneratedAt = generatedAt
	return sopts, cfg.Serve.Metrics, nil
}
