package logger

import (
	"context"
	"sync"

	"parcel-delivery/types"
)

// LogSink persists request log entries.
type LogSink interface {
	Write(ctx context.Context, entry types.LogEntry) error
}

type AsyncLogger struct {
	sink    LogSink
	channel chan types.LogEntry
	done    chan struct{}
	once    sync.Once
}

func NewAsyncLogger(sink LogSink) *AsyncLogger {
	return &AsyncLogger{
		sink:    sink,
		channel: make(chan types.LogEntry, 100),
		done:    make(chan struct{}),
	}
}

// ProcessLog drains the queue until Close is called.
func (logger *AsyncLogger) ProcessLog() {
	defer close(logger.done)
	Info("Starting asynchronous request logger...")

	for logEntry := range logger.channel {
		if logger.sink == nil {
			continue
		}
		if err := logger.sink.Write(context.Background(), logEntry); err != nil {
			Error("Failed to insert request log entry", err)
		}
	}
}

// Log queues an entry. When the buffer is full the entry is dropped.
func (logger *AsyncLogger) Log(entry types.LogEntry) {
	if logger == nil {
		return
	}
	select {
	case logger.channel <- entry:
	default:
		Warning("Request log buffer full, dropping entry for " + entry.Method + " " + entry.URL)
	}
}

// Close stops accepting entries and waits for the queue to drain.
func (logger *AsyncLogger) Close() {
	logger.once.Do(func() {
		close(logger.channel)
	})
	<-logger.done
}
