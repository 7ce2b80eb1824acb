package hello

import "github.com/janisto/hello-server/internal/platform/timeutil"

// Message is the fixed greeting returned by the root endpoint.
const Message = "Hello World! Your Node.js server is running."

// Data models the response payload for the greeting endpoint.
type Data struct {
	Message   string        `json:"message"   doc:"Greeting message"                  example:"Hello World! Your Node.js server is running."`
	Timestamp timeutil.Time `json:"timestamp" doc:"Server time the response was built"`
}

// GetOutput wraps the greeting payload.
type GetOutput struct {
	Body Data
}
