package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studiowebux/ollaterm/internal/types"
)

// Backend paths
const (
	PathSessionInfo = "/api/session/info"
	PathExecute     = "/api/execute"
	PathReset       = "/api/reset"
	PathSessionSave = "/api/session/save"
	PathSessionLoad = "/api/session/load"
	PathExecuteFile = "/api/execute-file"
	PathHistory     = "/api/history"
	PathVariables   = "/api/variables"
	PathHealth      = "/api/health"

	// RequestIDHeader carries a per-call id for correlating client and backend logs
	RequestIDHeader = "X-Request-ID"
)

// ErrTransport matches every transport-level failure
var ErrTransport = errors.New("transport failure")

// TransportError reports a call that did not produce a usable response
type TransportError struct {
	Op     string // operation name, e.g. "execute"
	Status int    // HTTP status, 0 when no response was received
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: backend returned status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTransport) hold for every TransportError
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Options configures a Client
type Options struct {
	BaseURL   string
	Timeout   time.Duration // 0 disables the timeout
	UserAgent string
	Logger    *zap.Logger

	// HTTPClient overrides the underlying client (tests, custom transports)
	HTTPClient *http.Client
}

// Client talks to the execution backend
type Client struct {
	resty  *resty.Client
	logger *zap.Logger
}

// New creates a backend client
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var r *resty.Client
	if opts.HTTPClient != nil {
		r = resty.NewWithClient(opts.HTTPClient)
	} else {
		r = resty.New()
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "ollaterm"
	}

	r.SetBaseURL(opts.BaseURL).
		SetRetryCount(0).
		SetLogger(restyLogger{logger.Sugar()}).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	if opts.Timeout > 0 {
		r.SetTimeout(opts.Timeout)
	}

	return &Client{
		resty:  r,
		logger: logger.Named("executor"),
	}
}

// BaseURL returns the backend address
func (c *Client) BaseURL() string {
	return c.resty.BaseURL
}

// FetchSessionInfo returns the id and variable count of the current session
func (c *Client) FetchSessionInfo(ctx context.Context) (*types.SessionInfo, error) {
	var info types.SessionInfo
	if err := c.do(ctx, "session info", http.MethodGet, PathSessionInfo, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Execute sends a command to the backend interpreter
func (c *Client) Execute(ctx context.Context, command string) (*types.ExecuteResult, error) {
	var result types.ExecuteResult
	body := types.ExecuteRequest{Prompt: command}
	if err := c.do(ctx, "execute", http.MethodPost, PathExecute, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ResetSession discards the backend session and returns the new one
func (c *Client) ResetSession(ctx context.Context) (*types.SessionInfo, error) {
	var info types.SessionInfo
	if err := c.do(ctx, "reset", http.MethodPost, PathReset, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveSession saves the session under filename. An empty filename lets the backend choose.
func (c *Client) SaveSession(ctx context.Context, filename string) (*types.SaveResult, error) {
	var result types.SaveResult
	if err := c.do(ctx, "save session", http.MethodPost, PathSessionSave, fileRequest(filename), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LoadSession replaces the backend session with a saved one
func (c *Client) LoadSession(ctx context.Context, filename string) (*types.SessionInfo, error) {
	if filename == "" {
		return nil, errors.New("load session: filename is required")
	}

	var info types.SessionInfo
	if err := c.do(ctx, "load session", http.MethodPost, PathSessionLoad, fileRequest(filename), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ExecuteFile runs a file that lives on the backend host
func (c *Client) ExecuteFile(ctx context.Context, path string) (*types.ExecuteResult, error) {
	if path == "" {
		return nil, errors.New("execute file: filepath is required")
	}

	var result types.ExecuteResult
	if err := c.do(ctx, "execute file", http.MethodPost, PathExecuteFile, fileRequest(path), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchHistory returns the execution history in backend order
func (c *Client) FetchHistory(ctx context.Context) ([]types.HistoryEntry, error) {
	var resp types.HistoryResponse
	if err := c.do(ctx, "history", http.MethodGet, PathHistory, nil, &resp); err != nil {
		return nil, err
	}
	if resp.History == nil {
		return []types.HistoryEntry{}, nil
	}
	return resp.History, nil
}

// FetchVariables returns the full variable mapping of the session
func (c *Client) FetchVariables(ctx context.Context) (types.Variables, error) {
	var resp types.VariablesResponse
	if err := c.do(ctx, "variables", http.MethodGet, PathVariables, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Variables == nil {
		return types.Variables{}, nil
	}
	return resp.Variables, nil
}

// Health returns the backend health document
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	var doc map[string]any
	if err := c.do(ctx, "health", http.MethodGet, PathHealth, nil, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func fileRequest(path string) types.FileRequest {
	if path == "" {
		return types.FileRequest{}
	}
	return types.FileRequest{Filepath: &path}
}

// do sends one request and decodes the JSON response into out
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	requestID := uuid.NewString()
	logger := c.logger.With(
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	req := c.resty.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID)
	if body != nil {
		req.SetBody(body)
	}

	startTime := time.Now()
	resp, err := req.Execute(method, path)
	duration := time.Since(startTime)

	if err != nil {
		logger.Warn("request failed", zap.Duration("duration", duration), zap.Error(err))
		return &TransportError{Op: op, Err: err}
	}

	if resp.IsError() {
		logger.Warn("unexpected status",
			zap.Duration("duration", duration),
			zap.Int("status", resp.StatusCode()),
		)
		return &TransportError{
			Op:     op,
			Status: resp.StatusCode(),
			Err:    fmt.Errorf("%s", http.StatusText(resp.StatusCode())),
		}
	}

	dec := json.NewDecoder(bytes.NewReader(resp.Body()))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		logger.Warn("invalid response body", zap.Duration("duration", duration), zap.Error(err))
		return &TransportError{Op: op, Status: resp.StatusCode(), Err: fmt.Errorf("invalid response body: %w", err)}
	}

	logger.Debug("request completed",
		zap.Duration("duration", duration),
		zap.Int("status", resp.StatusCode()),
		zap.Int("size", len(resp.Body())),
	)
	return nil
}

// restyLogger routes resty's internal messages to zap
type restyLogger struct {
	s *zap.SugaredLogger
}

func (l restyLogger) Errorf(format string, v ...interface{}) { l.s.Errorf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.s.Warnf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.s.Debugf(format, v...) }
