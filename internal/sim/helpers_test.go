package sim

import (
	"fmt"
	"time"

	"github.com/roach88/protosim/internal/validator"
)

// recorder is a Renderer that logs every call as a short event string.
type recorder struct {
	events   []string
	progress []string
	outcomes []validator.Outcome
	header   *Header
	summary  string
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) StartHeader()                        { r.add("start") }
func (r *recorder) AccountsLoaded(n int, source string) { r.add("loaded %d %s", n, source) }
func (r *recorder) LoginHeader()                        { r.add("login") }
func (r *recorder) Authenticating(n int, source string) { r.add("authenticating %d %s", n, source) }
func (r *recorder) AccountProgress(i, n int, label string) {
	r.add("account %d/%d %s", i, n, label)
}
func (r *recorder) AccountOutcome(o validator.Outcome) {
	r.outcomes = append(r.outcomes, o)
	r.add("outcome %t", o.Succeeded)
}
func (r *recorder) AuthenticationFailed(source string) { r.add("auth failed %s", source) }
func (r *recorder) NoAccounts(source string)           { r.add("no accounts %s", source) }
func (r *recorder) ProceedingReadOnly()                { r.add("readonly") }
func (r *recorder) Banner()                            { r.add("banner") }
func (r *recorder) SessionHeader(h Header) {
	r.header = &h
	r.add("header %t", h.Authenticated)
}
func (r *recorder) Progress(stage string, index, total int) {
	r.progress = append(r.progress, stage)
	r.add("progress %d/%d", index, total)
}
func (r *recorder) StageError(message string) { r.add("error %s", message) }
func (r *recorder) RecoveryFailed()           { r.add("recovery failed") }
func (r *recorder) Summary(elapsed time.Duration, status string) {
	r.summary = status
	r.add("summary %s %s", elapsed, status)
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, e := range r.events {
		if len(e) >= len(prefix) && e[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// spyValidator records every call and delegates to the real validator.
type spyValidator struct {
	calls [][2]string
}

func (s *spyValidator) Validate(address, deviceHash string) validator.Outcome {
	s.calls = append(s.calls, [2]string{address, deviceHash})
	return validator.Deterministic{}.Validate(address, deviceHash)
}

// acceptingValidator always succeeds. The login step must still report failure.
type acceptingValidator struct{}

func (acceptingValidator) Validate(string, string) validator.Outcome {
	return validator.Outcome{Succeeded: true}
}
