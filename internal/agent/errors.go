package agent

import "errors"

var (
	ErrUnknownTool      = errors.New("unknown tool")
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrInvalidTool      = errors.New("invalid tool declaration")
	ErrDuplicateTool    = errors.New("tool already registered")
	ErrOrphanToolResult = errors.New("tool result without matching call")
	ErrDuplicateCallID  = errors.New("duplicate tool call id")
	ErrSessionNotInCtx  = errors.New("session not found in context")
)
