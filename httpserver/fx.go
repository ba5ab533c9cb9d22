// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package httpserver

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// New creates the server and ties it to the lifecycle.  A nil server is
// returned when the configuration has no address.
func New(lc fx.Lifecycle, handler http.Handler, cfg Config, log *zap.Logger) (*http.Server, error) {
	if !cfg.Enabled() {
		log.Info("HTTP server disabled")
		return nil, nil
	}

	srv, err := cfg.Handler(handler)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			lc := net.ListenConfig{
				KeepAlive: cfg.KeepAlive,
			}
			ln, err := lc.Listen(ctx, "tcp", srv.Addr)
			if err != nil {
				return err
			}
			if srv.TLSConfig != nil {
				ln = tls.NewListener(ln, srv.TLSConfig)
			}
			log.Info("Starting HTTP server",
				zap.String("addr", ln.Addr().String()),
				zap.Bool("tls", srv.TLSConfig != nil))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server", zap.String("addr", srv.Addr))
			return srv.Shutdown(ctx)
		},
	})
	return srv, nil
}
