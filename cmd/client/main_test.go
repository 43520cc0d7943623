package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayanaadylkhanova/sessionpow/internal/adapter/store"
	"github.com/dayanaadylkhanova/sessionpow/internal/adapter/transport/tcp"
	"github.com/dayanaadylkhanova/sessionpow/internal/service"
)

func startServer(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	_ = ln.Close()

	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	svc := service.NewSessionService(log, service.SessionConfig{
		Difficulty:     1,
		MaxProofLength: 500_000,
		ChallengeTTL:   time.Minute,
		VerifyAttempts: 1,
	}, store.NewMemory(), nil)
	srv := tcp.NewServer(log, tcp.Options{Addr: addr, ShutdownWait: 200 * time.Millisecond}, svc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	require.Eventually(t, func() bool {
		c, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err != nil {
			return false
		}
		_ = c.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)
	return addr
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSessionCommand_FullFlow(t *testing.T) {
	addr := startServer(t)

	out, err := execute(t, "--server", addr, "session", "--device-id", "dev-1")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(out, " verified\n"), out)
	sessionID := strings.Fields(out)[1]

	out, err = execute(t, "--server", addr, "--worker=false", "session", "--session-id", sessionID)
	require.NoError(t, err)
	assert.Equal(t, "session "+sessionID+" already verified\n", out)

	out, err = execute(t, "--server", addr, "signout", sessionID)
	require.NoError(t, err)
	assert.Equal(t, "session "+sessionID+" deleted\n", out)

	_, err = execute(t, "--server", addr, "signout", sessionID)
	assert.Error(t, err)
}

func TestSolveCommand(t *testing.T) {
	out, err := execute(t, "solve", `{"difficulty":0,"subject":"test","algorithm":"sha256","nonce":"abc123","max_proof_length":10}`)
	require.NoError(t, err)
	assert.Equal(t, "test:abc123:0\n", out)

	_, err = execute(t, "solve", "{not json")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestSolveCommand_Stdin(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(`{"difficulty":0,"subject":"S","algorithm":"sha256","nonce":"N"}` + "\n"))
	root.SetArgs([]string{"--worker=false", "solve"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "S:N:0\n", out.String())
}

func TestBenchCommand(t *testing.T) {
	out, err := execute(t, "bench", "--difficulty", "1", "--count", "3", "--concurrency", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "solved 3/3")
}
