// Package event defines the listener boundary between the download core and
// a presentation layer. The core only talks outward through a Listener;
// every callback is optional on the consumer side via Funcs.
//
// Callbacks may be invoked from worker goroutines. Consumers that need
// thread affinity (a UI main loop) must marshal in their implementation.
package event

import "github.com/MiAlhazmi/SHTxd-Clip/internal/model"

// Listener receives core events.
type Listener interface {
	// OnLog receives every raw output line and diagnostic message.
	OnLog(message string)

	// OnProgress receives parsed progress updates.
	OnProgress(progress model.Progress)

	// OnComplete receives the terminal outcome of a download attempt.
	OnComplete(outcome model.Outcome)

	// OnError receives human-readable error messages.
	OnError(message string)
}

// Noop is a Listener that discards everything. Embed it to implement only a
// subset of callbacks.
type Noop struct{}

func (Noop) OnLog(string)              {}
func (Noop) OnProgress(model.Progress) {}
func (Noop) OnComplete(model.Outcome)  {}
func (Noop) OnError(string)            {}

// Funcs adapts plain functions to Listener. Nil fields are skipped, which
// preserves the optional-handler semantics of the callback wiring.
type Funcs struct {
	Log      func(message string)
	Progress func(progress model.Progress)
	Complete func(outcome model.Outcome)
	Error    func(message string)
}

func (f Funcs) OnLog(message string) {
	if f.Log != nil {
		f.Log(message)
	}
}

func (f Funcs) OnProgress(progress model.Progress) {
	if f.Progress != nil {
		f.Progress(progress)
	}
}

func (f Funcs) OnComplete(outcome model.Outcome) {
	if f.Complete != nil {
		f.Complete(outcome)
	}
}

func (f Funcs) OnError(message string) {
	if f.Error != nil {
		f.Error(message)
	}
}
