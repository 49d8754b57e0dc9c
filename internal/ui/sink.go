package ui

// Sink adapts the leveled log helpers to the notice-sink interfaces the
// MCP packages accept.
type Sink struct{}

func (Sink) Info(msg string)    { LogInfo(msg) }
func (Sink) Warning(msg string) { LogWarn(msg) }
func (Sink) Error(msg string)   { LogError(msg) }
