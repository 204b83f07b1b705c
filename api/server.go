package api

import (
	"net/http"
	"os"
	"time"

	"github.com/effective-security/xlog"
	"github.com/pkg/errors"
	"golang.org/x/net/context"
	"gopkg.in/yaml.v3"
)

// Config provides the HTTP server settings.
type Config struct {
	// Addr specifies the listen address, for example ":8080"
	Addr string `json:"addr" yaml:"addr"`
	// ReadTimeout specifies the maximum duration for reading a request
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout"`
	// WriteTimeout specifies the maximum duration for writing a response
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	// Debug includes internal error details in responses
	Debug bool `json:"debug" yaml:"debug"`
}

// LoadConfig reads the server configuration from a YAML file.
func LoadConfig(file string) (*Config, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WithMessagef(err, "unable to read configuration file: %s", file)
	}
	cfg := new(Config)
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.WithMessagef(err, "unable to parse configuration file: %s", file)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
}

// Server wraps http.Server with graceful shutdown.
type Server struct {
	cfg *Config
	srv *http.Server
}

// NewServer returns a Server configured to serve the given handler.
func NewServer(cfg *Config, h *Handler) *Server {
	cfg.applyDefaults()
	return &Server{
		cfg: cfg,
		srv: &http.Server{
			Addr:         cfg.Addr,
			Handler:      NewRouter(h),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Run serves requests until the context is canceled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logger.KV(xlog.INFO, "status", "listening", "addr", s.cfg.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- errors.WithStack(err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	logger.KV(xlog.INFO, "status", "shutting_down")
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return errors.WithMessage(err, "unable to shut down server")
	}
	return nil
}
