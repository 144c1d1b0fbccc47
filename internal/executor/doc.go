/*
Package executor is the transport client for the code-execution backend.

# Overview

Client exposes one method per backend capability:
  - FetchSessionInfo: GET  /api/session/info
  - Execute:          POST /api/execute       {prompt}
  - ResetSession:     POST /api/reset
  - SaveSession:      POST /api/session/save  {filepath}
  - LoadSession:      POST /api/session/load  {filepath}
  - ExecuteFile:      POST /api/execute-file  {filepath}
  - FetchHistory:     GET  /api/history
  - FetchVariables:   GET  /api/variables
  - Health:           GET  /api/health

Every call takes a context.Context and is sent exactly once. There is no
retry and no backoff; a request timeout only applies when configured.

# Error Handling

Errors are split into two classes:
  - Transport failures (connection refused, non-2xx status, undecodable
    body) are returned as *TransportError and match ErrTransport with
    errors.Is.
  - Execution failures reported by the backend are not Go errors. They
    arrive inside a successful ExecuteResult (Error, Success=false).

# Example Usage

	client := executor.New(executor.Options{
		BaseURL: "http://localhost:8000",
		Logger:  logger,
	})

	result, err := client.Execute(ctx, "x = 42\nprint(x)")
	if err != nil {
		return err // backend unreachable
	}
	if !result.Succeeded() {
		fmt.Println("Error:", result.Error)
	}

# Thread Safety

Client is safe for concurrent use; each call builds its own request.
*/
package executor
