// Package bootstrap provides a one-shot initialization token.
//
// A Token replaces a process-wide "already initialized" flag: it is created
// once per session and carried on the session value, so initialization state
// is explicit and testable. The hook run by Fire is an extension point; the
// simulator installs none.
package bootstrap

import "sync"

// Hook is work performed by the first Fire call.
type Hook func() error

// Token runs a hook at most once, no matter how many times Fire is reached.
type Token struct {
	once  sync.Once
	fired bool
	err   error
}

// New returns an unfired token.
func New() *Token {
	return &Token{}
}

// Fire runs hook on the first call and returns its error on every call.
// A nil hook marks the token fired without doing anything.
func (t *Token) Fire(hook Hook) error {
	t.once.Do(func() {
		t.fired = true
		if hook != nil {
			t.err = hook()
		}
	})
	return t.err
}

// Fired reports whether Fire has been called.
func (t *Token) Fired() bool {
	return t.fired
}
