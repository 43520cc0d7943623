package tcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dayanaadylkhanova/sessionpow/internal/entity"
)

// Client speaks the JSON-lines protocol over one connection. Calls are
// serialized; a call that fails mid-exchange poisons the client.
type Client struct {
	mu     sync.Mutex
	conn   net.Conn
	br     *bufio.Reader
	broken error
}

func Dial(ctx context.Context, addr string) (*Client, error) {
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return NewClient(conn), nil
}

func NewClient(conn net.Conn) *Client {
	return &Client{conn: conn, br: bufio.NewReader(conn)}
}

func (c *Client) Close() error { return c.conn.Close() }

func (c *Client) InitSession(ctx context.Context, req entity.InitSessionRequest) (entity.InitSessionResponse, error) {
	var resp entity.InitSessionResponse
	err := c.call(ctx, MethodInitSession, req, &resp)
	return resp, err
}

func (c *Client) Challenge(ctx context.Context, req entity.ChallengeRequest) (entity.ChallengeResponse, error) {
	var resp entity.ChallengeResponse
	err := c.call(ctx, MethodChallenge, req, &resp)
	return resp, err
}

func (c *Client) Verify(ctx context.Context, req entity.VerifyRequest) (entity.VerifyResponse, error) {
	var resp entity.VerifyResponse
	err := c.call(ctx, MethodVerify, req, &resp)
	return resp, err
}

func (c *Client) Signout(ctx context.Context, req entity.SignoutRequest) (entity.SignoutResponse, error) {
	var resp entity.SignoutResponse
	err := c.call(ctx, MethodSignout, req, &resp)
	return resp, err
}

func (c *Client) ChallengeTypes(ctx context.Context, req entity.ChallengeTypesRequest) (entity.ChallengeTypesResponse, error) {
	var resp entity.ChallengeTypesResponse
	err := c.call(ctx, MethodChallengeTypes, req, &resp)
	return resp, err
}

func (c *Client) call(ctx context.Context, method string, params, result any) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.broken != nil {
		return fmt.Errorf("connection unusable: %w", c.broken)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	req := Request{ID: uuid.NewString(), Method: method, Params: raw}
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	_ = c.conn.SetDeadline(time.Time{})
	stop := context.AfterFunc(ctx, func() { _ = c.conn.SetDeadline(time.Now()) })
	defer stop()

	defer func() {
		if err == nil {
			return
		}
		var re *RemoteError
		if errors.As(err, &re) {
			return
		}
		c.broken = err
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%s: %w", method, ctxErr)
		}
	}()

	if _, err := c.conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write request: %w", err)
	}
	line, err := c.br.ReadBytes('\n')
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.ID != req.ID {
		return fmt.Errorf("response id %q does not match request %q", resp.ID, req.ID)
	}
	if resp.Error != nil {
		return &RemoteError{Code: resp.Error.Code, Message: resp.Error.Message}
	}
	if result != nil && len(resp.Result) > 0 {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}
	return nil
}
