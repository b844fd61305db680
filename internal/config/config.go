// Package config resolves the server's CLI flags and environment into a
// single validated Config: centralized, single-source-of-truth
// configuration loaded once at startup (see DESIGN.md). Any local .env
// file is loaded into the process environment via godotenv; no Config
// field is read from the environment.
package config

import (
	"flag"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/rtype-server/rtype-server/internal/session"
)

// ExitUsageError is the process exit code used for a missing or invalid
// CLI argument, matching the original server's convention for a
// configuration failure.
const ExitUsageError = 84

// ErrMissingPort, ErrMissingHostname, and ErrInvalidGame report which
// required flag failed validation.
var (
	ErrMissingPort     = errors.New("config: -p/--port is required")
	ErrMissingHostname = errors.New("config: -h/--hostname is required")
	ErrInvalidGame     = errors.New("config: -g/--game must be RType or flappyByte")
)

// Config is the fully resolved, validated server configuration.
type Config struct {
	Port     int
	Hostname string
	Mode     session.Mode

	SessionTimeout  time.Duration
	AdminListenAddr string
	LogThrottle     time.Duration
}

// Parse reads CLI flags from args (os.Args[1:] in production) plus any
// .env file on disk, validates them, and returns a Config. On failure,
// callers should print Usage and os.Exit(ExitUsageError).
func Parse(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	fs := flag.NewFlagSet("rtype-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	port := fs.Int("p", 0, "UDP port to listen on (required)")
	hostname := fs.String("h", "", "hostname/IP to bind to (required)")
	game := fs.String("g", "", "game mode: RType or flappyByte (required)")

	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "config: parse flags")
	}

	if *port <= 0 || *port > 65535 {
		return Config{}, ErrMissingPort
	}
	if strings.TrimSpace(*hostname) == "" {
		return Config{}, ErrMissingHostname
	}

	var mode session.Mode
	switch *game {
	case "RType":
		mode = session.ModeRType
	case "flappyByte":
		mode = session.ModeFlap
	default:
		return Config{}, ErrInvalidGame
	}

	return Config{
		Port:            *port,
		Hostname:        *hostname,
		Mode:            mode,
		SessionTimeout:  session.DefaultTimeout,
		AdminListenAddr: "127.0.0.1:6060",
		LogThrottle:     10 * time.Second,
	}, nil
}

// Usage prints the command's flag summary to w.
func Usage(w io.Writer) {
	fmt.Fprintln(w, "usage: rtype-server -p <port> -h <hostname> -g <RType|flappyByte>")
}
