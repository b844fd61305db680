package config

import (
	"testing"

	"github.com/rtype-server/rtype-server/internal/session"
)

func TestParseAcceptsValidFlags(t *testing.T) {
	cfg, err := Parse([]string{"-p", "4242", "-h", "0.0.0.0", "-g", "RType"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 4242 || cfg.Hostname != "0.0.0.0" || cfg.Mode != session.ModeRType {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestParseAcceptsFlapMode(t *testing.T) {
	cfg, err := Parse([]string{"-p", "1", "-h", "localhost", "-g", "flappyByte"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Mode != session.ModeFlap {
		t.Fatalf("expected ModeFlap, got %v", cfg.Mode)
	}
}

func TestParseRejectsMissingPort(t *testing.T) {
	_, err := Parse([]string{"-h", "localhost", "-g", "RType"})
	if err != ErrMissingPort {
		t.Fatalf("expected ErrMissingPort, got %v", err)
	}
}

func TestParseRejectsOutOfRangePort(t *testing.T) {
	_, err := Parse([]string{"-p", "70000", "-h", "localhost", "-g", "RType"})
	if err != ErrMissingPort {
		t.Fatalf("expected ErrMissingPort for an out-of-range port, got %v", err)
	}
}

func TestParseRejectsMissingHostname(t *testing.T) {
	_, err := Parse([]string{"-p", "4242", "-g", "RType"})
	if err != ErrMissingHostname {
		t.Fatalf("expected ErrMissingHostname, got %v", err)
	}
}

func TestParseRejectsInvalidGame(t *testing.T) {
	_, err := Parse([]string{"-p", "4242", "-h", "localhost", "-g", "chess"})
	if err != ErrInvalidGame {
		t.Fatalf("expected ErrInvalidGame, got %v", err)
	}
}
