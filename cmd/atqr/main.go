// atqr decodes and validates Portuguese fiscal QR payloads.
//
// Usage:
//
//	atqr validate [-json] [-lang en|pt] [-enrich] [payload]
//	atqr gen [-o file.png] [-size n] [-strict] [payload]
//	atqr serve
//
// When the payload argument is omitted it is read from stdin.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pchouse/atqr/pkg/config"
)

type appConfig struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	LogLevel        slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	ValidateAPIURL  string        `env:"VALIDATE_API_URL"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LookupTimeout   time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"30s"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load[appConfig]()
	if err != nil {
		fmt.Fprintln(os.Stderr, "atqr:", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		err = runValidate(cfg, os.Args[2:])
	case "gen":
		err = runGen(os.Args[2:])
	case "serve":
		err = runServe(cfg)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "atqr:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: atqr <validate|gen|serve> [flags] [payload]")
}

// readPayload takes the payload from the first positional argument or,
// when absent, from stdin. Only the trailing newline is stripped so
// in-payload anomalies still surface during validation.
func readPayload(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading payload from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
