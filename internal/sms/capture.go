package sms

import (
	"context"
	"sync"
)

// CaptureSender records SMS sends for use in tests.
type CaptureSender struct {
	mu    sync.Mutex
	Calls []CaptureCall

	// Err, when set, is returned from every Send instead of recording.
	Err error
}

// CaptureCall records a single Send invocation.
type CaptureCall struct {
	To       string
	Message  string
	SenderID string
	Channel  Channel
}

func (c *CaptureSender) Send(_ context.Context, to, message, senderID string, channel Channel, _ MessageType) (*SendResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	c.Calls = append(c.Calls, CaptureCall{To: to, Message: message, SenderID: senderID, Channel: channel})
	return &SendResult{MessageID: "captured"}, nil
}

// Count returns how many sends were recorded.
func (c *CaptureSender) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Calls)
}

// Last returns the most recent recorded call, or nil when none exist.
func (c *CaptureSender) Last() *CaptureCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Calls) == 0 {
		return nil
	}
	call := c.Calls[len(c.Calls)-1]
	return &call
}

// Reset clears all recorded calls.
func (c *CaptureSender) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls = nil
}
