package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/tsawler/examine/config"
	"github.com/tsawler/examine/server"
)

// ServeCmd runs the extraction HTTP server. Server settings come from
// the environment (PORT, MAX_UPLOAD_BYTES, REQUEST_TIMEOUT,
// CONVERTER_COMMAND); see the config package.
type ServeCmd struct {
	Port string `help:"Listen port (overrides PORT)"`
}

func (c *ServeCmd) Run(a *app) error {
	cfg := config.Load()
	if c.Port != "" {
		cfg.Port = c.Port
	}
	if cfg.ConverterCommand == "" {
		cfg.ConverterCommand = a.file.Converter
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The server logs structured JSON; the rest of the CLI stays on the
	// human-readable text handler.
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	srv := server.New(log, cfg, converterFromCommand(cfg.ConverterCommand))
	log.Info("listening", "port", cfg.Port)
	return http.ListenAndServe(":"+cfg.Port, srv)
}
