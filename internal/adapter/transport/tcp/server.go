package tcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const maxLineSize = 1 << 20

type Options struct {
	Addr         string
	IdleTimeout  time.Duration
	ShutdownWait time.Duration
	// RateLimit is requests per second per connection; zero disables limiting.
	RateLimit rate.Limit
	RateBurst int
}

type handlerFunc func(ctx context.Context, params json.RawMessage) (any, error)

type Server struct {
	log      *slog.Logger
	opts     Options
	handlers map[string]handlerFunc
	ln       net.Listener
	wg       sync.WaitGroup
	connsMu  sync.Mutex
	active   map[net.Conn]struct{}
	limiters *hostLimiters
}

func NewServer(log *slog.Logger, opts Options, svc SessionService) *Server {
	if opts.RateBurst <= 0 {
		opts.RateBurst = 1
	}
	return &Server{
		log:  log.With("component", "tcp_server"),
		opts: opts,
		handlers: map[string]handlerFunc{
			MethodInitSession:    handle(svc.InitSession),
			MethodChallenge:      handle(svc.Challenge),
			MethodVerify:         handle(svc.Verify),
			MethodSignout:        handle(svc.Signout),
			MethodChallengeTypes: handle(svc.ChallengeTypes),
		},
		active:   make(map[net.Conn]struct{}),
		limiters: newHostLimiters(opts.RateLimit, opts.RateBurst),
	}
}

// handle adapts a typed service method to the wire.
func handle[Req, Resp any](fn func(context.Context, Req) (Resp, error)) handlerFunc {
	return func(ctx context.Context, params json.RawMessage) (any, error) {
		var req Req
		if len(params) > 0 && !bytes.Equal(params, []byte("null")) {
			if err := json.Unmarshal(params, &req); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
			}
		}
		return fn(ctx, req)
	}
}

func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled or accepting fails.
// Either way the listener is closed and open connections are drained.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.ln = ln
	s.log.Info("server started", "addr", ln.Addr().String(), "rate_limit", float64(s.opts.RateLimit))

	errCh := make(chan error, 1)
	go func() { errCh <- s.acceptLoop(ctx) }()

	select {
	case <-ctx.Done():
		s.shutdown()
		return nil
	case err := <-errCh:
		if err != nil {
			s.log.Error("accept loop failed", "err", err)
		}
		s.shutdown()
		return err
	}
}

func (s *Server) shutdown() {
	s.log.Info("shutdown: closing listener")
	_ = s.ln.Close()

	s.connsMu.Lock()
	for c := range s.active {
		_ = c.SetDeadline(time.Now().Add(200 * time.Millisecond))
		if tc, ok := c.(*net.TCPConn); ok {
			_ = tc.CloseRead()
		}
	}
	s.connsMu.Unlock()

	done := make(chan struct{})
	go func() { s.wg.Wait(); close(done) }()
	select {
	case <-done:
		s.log.Info("shutdown: all connections drained")
	case <-time.After(s.opts.ShutdownWait):
		s.log.Warn("shutdown: force-close remaining connections")
		s.connsMu.Lock()
		for c := range s.active {
			_ = c.Close()
		}
		s.connsMu.Unlock()
		<-done
	}
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				s.log.Warn("temporary accept error", "err", err)
				time.Sleep(50 * time.Millisecond)
				continue
			}
			return fmt.Errorf("accept: %w", err)
		}
		s.track(conn, true)
		s.wg.Add(1)
		go func(c net.Conn) {
			defer s.wg.Done()
			defer s.track(c, false)
			s.serveConn(ctx, c)
		}(conn)
	}
}

func (s *Server) track(c net.Conn, add bool) {
	s.connsMu.Lock()
	if add {
		s.active[c] = struct{}{}
	} else {
		delete(s.active, c)
	}
	s.connsMu.Unlock()
}

// serveConn answers requests on conn until the peer hangs up, the idle timeout
// fires or the server shuts down.
func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	lim := s.limiters.get(conn.RemoteAddr())

	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	bw := bufio.NewWriter(conn)
	remote := conn.RemoteAddr().String()

	for {
		if s.opts.IdleTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.opts.IdleTimeout))
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				s.log.Debug("read request failed", "remote", remote, "err", err)
			}
			return
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		resp := s.dispatch(ctx, line, lim)
		payload, err := json.Marshal(resp)
		if err != nil {
			s.log.Error("response marshal failed", "err", err)
			payload, _ = json.Marshal(errorResponse(resp.ID, CodeInternal, "internal error"))
		}
		if _, err := bw.Write(append(payload, '\n')); err != nil {
			s.log.Debug("write response failed", "remote", remote, "err", err)
			return
		}
		if err := bw.Flush(); err != nil {
			s.log.Debug("flush failed", "remote", remote, "err", err)
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, line []byte, lim *rate.Limiter) Response {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil || req.Method == "" {
		s.log.Debug("bad request", "err", err)
		return errorResponse(req.ID, CodeBadRequest, "malformed request")
	}
	if lim != nil && !lim.Allow() {
		s.log.Debug("rate limited", "method", req.Method)
		return errorResponse(req.ID, CodeRateLimited, "too many requests")
	}
	h, ok := s.handlers[req.Method]
	if !ok {
		return errorResponse(req.ID, CodeUnknownMethod, fmt.Sprintf("unknown method %q", req.Method))
	}

	result, err := h(ctx, req.Params)
	if err != nil {
		code := codeFor(err)
		if code == CodeInternal {
			s.log.Error("request failed", "method", req.Method, "err", err)
			return errorResponse(req.ID, code, "internal error")
		}
		s.log.Debug("request rejected", "method", req.Method, "code", code, "err", err)
		return errorResponse(req.ID, code, err.Error())
	}

	raw, err := json.Marshal(result)
	if err != nil {
		s.log.Error("result marshal failed", "method", req.Method, "err", err)
		return errorResponse(req.ID, CodeInternal, "internal error")
	}
	return Response{ID: req.ID, Result: raw}
}
