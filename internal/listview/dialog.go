package listview

import (
	"context"
	"errors"
)

type DialogState int

const (
	Idle DialogState = iota
	ConfirmPending
)

var ErrNoCandidate = errors.New("no record selected")

// DeleteFlow is the confirm dialog in front of a destructive call. The local
// list changes only once the remote call succeeded; on failure the dialog
// stays open with the error.
type DeleteFlow[T any] struct {
	state     DialogState
	candidate T
	err       error
}

func (f *DeleteFlow[T]) State() DialogState { return f.state }
func (f *DeleteFlow[T]) Err() error         { return f.err }

func (f *DeleteFlow[T]) Candidate() (T, bool) {
	return f.candidate, f.state == ConfirmPending
}

// Ask opens the dialog for r.
func (f *DeleteFlow[T]) Ask(r T) {
	f.state = ConfirmPending
	f.candidate = r
	f.err = nil
}

func (f *DeleteFlow[T]) Cancel() {
	var zero T
	f.state = Idle
	f.candidate = zero
	f.err = nil
}

// Confirm runs remote for the candidate. On success applied runs and the
// flow returns to Idle.
func (f *DeleteFlow[T]) Confirm(ctx context.Context, remote func(context.Context, T) error, applied func(T)) error {
	if f.state != ConfirmPending {
		return ErrNoCandidate
	}
	if err := remote(ctx, f.candidate); err != nil {
		f.err = err
		return err
	}
	if applied != nil {
		applied(f.candidate)
	}
	f.Cancel()
	return nil
}
