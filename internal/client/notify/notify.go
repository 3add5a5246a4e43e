// Package notify is the user-facing notification channel: short success,
// error and info messages, fire-and-forget.
package notify

import (
	"fmt"
	"io"
	"sync"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notifier presents messages to the user. Callers never depend on the
// outcome, so methods return nothing.
type Notifier interface {
	Success(title, text string)
	Error(title, text string)
	Info(title, text string)
}

// Console writes one line per notification to w.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Success(title, text string) { c.write(LevelSuccess, title, text) }
func (c *Console) Error(title, text string)   { c.write(LevelError, title, text) }
func (c *Console) Info(title, text string)    { c.write(LevelInfo, title, text) }

func (c *Console) write(level Level, title, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var marker string
	switch level {
	case LevelSuccess:
		marker = "[ok]"
	case LevelError:
		marker = "[error]"
	default:
		marker = "[info]"
	}

	if text == "" {
		fmt.Fprintf(c.w, "%s %s\n", marker, title)
		return
	}
	fmt.Fprintf(c.w, "%s %s: %s\n", marker, title, text)
}

// Message is one notification captured by a Recorder.
type Message struct {
	Level Level
	Title string
	Text  string
}

// Recorder keeps every notification in memory; used by tests and by callers
// that want to render notifications themselves.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Success(title, text string) { r.add(LevelSuccess, title, text) }
func (r *Recorder) Error(title, text string)   { r.add(LevelError, title, text) }
func (r *Recorder) Info(title, text string)    { r.add(LevelInfo, title, text) }

func (r *Recorder) add(level Level, title, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Level: level, Title: title, Text: text})
}

// Messages returns a copy of what has been recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Success(string, string) {}
func (Discard) Error(string, string)   {}
func (Discard) Info(string, string)    {}
