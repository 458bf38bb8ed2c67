package tracetask

import (
	"errors"
	"strings"
)

// Chain returns the messages of err and every unwrapped cause, outermost
// first. When an error's text already ends with its cause's text (the
// fmt.Errorf("...: %w", err) convention) the duplicated suffix is trimmed
// so each message appears once.
func Chain(err error) []string {
	var msgs []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		msg := e.Error()
		if next := errors.Unwrap(e); next != nil {
			if own := strings.TrimSuffix(msg, ": "+next.Error()); own != "" && own != msg {
				msg = own
			}
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

// FormatChain renders the full cause chain of err as one "outer: cause"
// string. It returns "" for a nil error.
func FormatChain(err error) string {
	return strings.Join(Chain(err), ": ")
}
