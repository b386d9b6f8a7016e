package guildledger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// ActionLogger is the interface for lifecycle audit logging.
type ActionLogger interface {
	LogAction(action ActionLog) error
}

// NewActionLogFilePath returns a timestamped file path so logs from separate
// bot runs stay apart.
func NewActionLogFilePath() string {
	return fmt.Sprintf("./logs/%d.actions.json", time.Now().Unix())
}

// ActionLog records one lifecycle operation: who did what to which request.
type ActionLog struct {
	Op        string    `json:"op"`
	UserID    string    `json:"user_id,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Product   string    `json:"product,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// FileActionLogger logs to a file, accumulating actions and flushing at the end
type FileActionLogger struct {
	actions []ActionLog
	writer  io.Writer
}

// NewFileActionLogger creates a new file-based action logger
func NewFileActionLogger(writer io.Writer) *FileActionLogger {
	return &FileActionLogger{
		actions: make([]ActionLog, 0),
		writer:  writer,
	}
}

// LogAction logs an action to the buffer (does not flush immediately)
func (fal *FileActionLogger) LogAction(action ActionLog) error {
	fal.actions = append(fal.actions, action)
	return nil
}

// Flush flushes all accumulated actions to the writer
func (fal *FileActionLogger) Flush() error {
	if fal.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"ledger_session": map[string]any{
			"timestamp": time.Now(),
			"actions":   fal.actions,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal action log: %w", err)
	}

	if _, err := fal.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write action log: %w", err)
	}

	// Clear the buffer after successful write
	fal.actions = fal.actions[:0]
	return nil
}

// NoOpActionLogger is a logger that discards all log entries
type NoOpActionLogger struct{}

// NewNoOpActionLogger creates a new no-op action logger
func NewNoOpActionLogger() *NoOpActionLogger {
	return &NoOpActionLogger{}
}

// LogAction discards the action log (no-op)
func (nop *NoOpActionLogger) LogAction(action ActionLog) error {
	return nil
}

// StdoutActionLogger logs each action as a JSON line to stdout (for Lambda/CloudWatch)
type StdoutActionLogger struct{}

// NewStdoutActionLogger creates a new stdout-based action logger
func NewStdoutActionLogger() *StdoutActionLogger {
	return &StdoutActionLogger{}
}

// LogAction writes the action as a JSON line to os.Stdout
func (l *StdoutActionLogger) LogAction(action ActionLog) error {
	data, err := json.Marshal(action)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
