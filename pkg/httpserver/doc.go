// Package httpserver provides an HTTP server with sensible timeouts and
// graceful shutdown.
//
// # Usage
//
//	srv := httpserver.New(
//		httpserver.WithAddr(":8080"),
//		httpserver.WithShutdownTimeout(10*time.Second),
//	)
//	if err := srv.Run(ctx, handler); err != nil {
//		log.Fatal(err)
//	}
//
// Run blocks until the context is canceled or SIGINT/SIGTERM arrives,
// then drains in-flight requests within the shutdown timeout.
//
// # Error Handling
//
// Run returns nil on a clean shutdown. Failures wrap ErrStart or
// ErrShutdown, so callers can branch with errors.Is.
package httpserver
