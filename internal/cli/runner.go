package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/studiowebux/ollaterm/internal/history"
	"github.com/studiowebux/ollaterm/internal/render"
	"github.com/studiowebux/ollaterm/internal/types"
)

// ErrExecutionFailed is returned when the backend ran the code and reported a failure
var ErrExecutionFailed = errors.New("execution failed")

// ErrCancelled is returned when the user declines a confirmation prompt
var ErrCancelled = errors.New("cancelled by user")

// Backend is the transport used by the runner
type Backend interface {
	FetchSessionInfo(ctx context.Context) (*types.SessionInfo, error)
	Execute(ctx context.Context, command string) (*types.ExecuteResult, error)
	ResetSession(ctx context.Context) (*types.SessionInfo, error)
	SaveSession(ctx context.Context, filename string) (*types.SaveResult, error)
	LoadSession(ctx context.Context, filename string) (*types.SessionInfo, error)
	ExecuteFile(ctx context.Context, path string) (*types.ExecuteResult, error)
	FetchHistory(ctx context.Context) ([]types.HistoryEntry, error)
	FetchVariables(ctx context.Context) (types.Variables, error)
	Health(ctx context.Context) (map[string]any, error)
}

// Runner executes one backend operation per call
type Runner struct {
	Client Backend
	Out    io.Writer
	Err    io.Writer
	In     io.Reader
	Format Format
	Logger *zap.Logger

	// Highlight settings used by the HTML transcript export
	Language string
	Style    string
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *Runner) structured() bool {
	return r.Format == FormatJSON || r.Format == FormatYAML
}

// Execute runs code in the backend session
func (r *Runner) Execute(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New("nothing to execute")
	}

	result, err := r.Client.Execute(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to execute: %w", err)
	}
	return r.printResult(result)
}

// ExecuteFile runs a file stored on the backend
func (r *Runner) ExecuteFile(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("file path is required")
	}

	result, err := r.Client.ExecuteFile(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to execute file %s: %w", path, err)
	}
	return r.printResult(result)
}

// printResult writes output to Out and the error text to Err; output of a
// failed execution goes to Err as well
func (r *Runner) printResult(result *types.ExecuteResult) error {
	if r.structured() {
		if err := writeStructured(r.Out, r.Format, result); err != nil {
			return err
		}
	} else {
		if result.Output != "" {
			w := r.Out
			if !result.Succeeded() {
				w = r.Err
			}
			fmt.Fprintln(w, strings.TrimRight(render.Sanitize(result.Output), "\n"))
		}
		if result.Error != "" {
			fmt.Fprintln(r.Err, render.ErrorPrefix+render.Sanitize(result.Error))
		}
	}

	if !result.Succeeded() {
		return ErrExecutionFailed
	}
	return nil
}

// infoReport is the structured form of the info command
type infoReport struct {
	SessionID     string          `json:"session_id" yaml:"session_id"`
	VariableCount int             `json:"variable_count" yaml:"variable_count"`
	Variables     types.Variables `json:"variables" yaml:"variables"`
}

// Info prints the session id and variables, fetched concurrently
func (r *Runner) Info(ctx context.Context) error {
	var (
		info *types.SessionInfo
		vars types.Variables
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = r.Client.FetchSessionInfo(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch session info: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		vars, err = r.Client.FetchVariables(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch variables: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if vars == nil {
		vars = types.Variables{}
	}
	report := infoReport{SessionID: info.ID, VariableCount: len(vars), Variables: vars}

	if r.structured() {
		return writeStructured(r.Out, r.Format, report)
	}

	fmt.Fprintf(r.Out, "Session:   %s\n", render.SingleLine(report.SessionID))
	fmt.Fprintf(r.Out, "Variables: %d\n", report.VariableCount)
	if len(vars) > 0 {
		fmt.Fprintln(r.Out)
		r.printVariables(vars)
	}
	return nil
}

// Variables prints the variable mapping of the session
func (r *Runner) Variables(ctx context.Context) error {
	vars, err := r.Client.FetchVariables(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch variables: %w", err)
	}
	if vars == nil {
		vars = types.Variables{}
	}

	if r.structured() {
		return writeStructured(r.Out, r.Format, vars)
	}

	r.printVariables(vars)
	return nil
}

func (r *Runner) printVariables(vars types.Variables) {
	for _, row := range render.VariableRows(vars) {
		fmt.Fprintln(r.Out, row.Text())
	}
}

// History prints the execution history. When htmlPath is set the history is
// also written there as an HTML transcript.
func (r *Runner) History(ctx context.Context, htmlPath string) error {
	entries, err := r.Client.FetchHistory(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}

	if htmlPath != "" {
		opts := history.ExportOptions{Language: r.Language, Style: r.Style}
		if info, err := r.Client.FetchSessionInfo(ctx); err == nil {
			opts.SessionID = info.ID
		} else {
			r.logger().Debug("session id unavailable for export", zap.Error(err))
		}

		if err := history.WriteFile(htmlPath, entries, opts); err != nil {
			return err
		}
		fmt.Fprintf(r.Err, "History exported to %s\n", htmlPath)
	}

	if r.structured() {
		if entries == nil {
			entries = []types.HistoryEntry{}
		}
		return writeStructured(r.Out, r.Format, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(r.Out, render.NoHistory)
		return nil
	}

	for i, item := range render.HistoryItems(entries) {
		if i > 0 {
			fmt.Fprintln(r.Out)
		}
		fmt.Fprintln(r.Out, item.Header())
		fmt.Fprintln(r.Out, indentLines(item.Code, "  "))
		if item.Output != "" {
			fmt.Fprintln(r.Out, indentLines(item.Output, "  | "))
		}
		if item.Error != "" {
			fmt.Fprintln(r.Out, "  "+render.ErrorPrefix+render.SingleLine(item.Error))
		}
	}
	return nil
}

func indentLines(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// Reset discards the session. Unless force is set the user is asked first.
func (r *Runner) Reset(ctx context.Context, force bool) error {
	if !force {
		ok, err := r.confirm("Reset the session? All variables will be lost. [y/N]: ")
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelled
		}
	}

	info, err := r.Client.ResetSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}

	if r.structured() {
		return writeStructured(r.Out, r.Format, info)
	}
	fmt.Fprintf(r.Out, "Session reset. New session ID: %s\n", render.SingleLine(info.ID))
	return nil
}

// confirm asks a yes/no question on Err and reads the answer from In
func (r *Runner) confirm(question string) (bool, error) {
	if r.In == nil {
		return false, errors.New("confirmation required (use --yes)")
	}

	fmt.Fprint(r.Err, question)
	answer, err := bufio.NewReader(r.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

// Save saves the session; an empty name lets the backend choose one
func (r *Runner) Save(ctx context.Context, name string) error {
	result, err := r.Client.SaveSession(ctx, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if r.structured() {
		return writeStructured(r.Out, r.Format, result)
	}
	fmt.Fprintf(r.Out, "Session saved to: %s\n", render.SingleLine(result.Filepath))
	return nil
}

// Load restores a saved session and reports its variables
func (r *Runner) Load(ctx context.Context, name string) error {
	info, err := r.Client.LoadSession(ctx, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	vars, err := r.Client.FetchVariables(ctx)
	if err != nil {
		return fmt.Errorf("session loaded but variables could not be fetched: %w", err)
	}
	if vars == nil {
		vars = types.Variables{}
	}

	report := infoReport{SessionID: info.ID, VariableCount: len(vars), Variables: vars}
	if r.structured() {
		return writeStructured(r.Out, r.Format, report)
	}

	fmt.Fprintln(r.Out, "Session loaded successfully.")
	fmt.Fprintf(r.Out, "Session:   %s\n", render.SingleLine(report.SessionID))
	fmt.Fprintf(r.Out, "Variables: %d\n", report.VariableCount)
	return nil
}

// Health prints the backend health report
func (r *Runner) Health(ctx context.Context) error {
	status, err := r.Client.Health(ctx)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}

	if r.structured() {
		return writeStructured(r.Out, r.Format, status)
	}

	fmt.Fprintln(r.Out, "Backend is healthy.")
	for _, row := range render.VariableRows(types.Variables(status)) {
		if !row.Placeholder {
			fmt.Fprintln(r.Out, "  "+row.Text())
		}
	}
	return nil
}
