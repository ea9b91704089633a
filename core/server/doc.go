// Package server runs an http.Handler with production timeouts and graceful
// shutdown.
//
//	srv := server.New(":8080",
//		server.WithLogger(log),
//		server.WithShutdownTimeout(10*time.Second),
//	)
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	if err := g.Wait(); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// NewFromConfig builds the same server from a Config loaded from the
// environment (SERVER_ADDR, SERVER_READ_TIMEOUT and friends). When both
// SERVER_TLS_CERT_FILE and SERVER_TLS_KEY_FILE are set the server speaks HTTPS.
//
// Run returns nil when its context is canceled and the shutdown completed.
// Start returns the context error instead and leaves draining to Stop.
package server
