package logging

// NullLogger discards all log output. Useful as a default in
// components whose callers did not supply a logger.
type NullLogger struct{}

// NewNullLogger creates a logger that discards everything.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

// Info discards the message.
func (n *NullLogger) Info(string, ...Field) {}

// Warn discards the message.
func (n *NullLogger) Warn(string, ...Field) {}

// Error discards the message.
func (n *NullLogger) Error(string, ...Field) {}

// Debug discards the message.
func (n *NullLogger) Debug(string, ...Field) {}

// WithFields returns the same logger; there is nothing to
// attach fields to.
func (n *NullLogger) WithFields(...Field) Logger {
	return n
}

// Close is a no-op.
func (n *NullLogger) Close() error {
	return nil
}
