// Package ledger keeps the per-epoch history of quotes and their outcomes.
//
// An epoch is the span between two consecutive trades. Only the newest epoch
// is open for writes; a trade closes it and opens the next one.
package ledger

import (
	"fmt"
	"slices"
)

// Category names one of the six sub-histories kept per epoch.
type Category int

const (
	Bids Category = iota
	Asks
	AcceptedBids
	RejectedBids
	AcceptedAsks
	RejectedAsks

	numCategories
)

// String returns the string representation of Category
func (c Category) String() string {
	switch c {
	case Bids:
		return "bids"
	case Asks:
		return "asks"
	case AcceptedBids:
		return "accepted_bids"
	case RejectedBids:
		return "rejected_bids"
	case AcceptedAsks:
		return "accepted_asks"
	case RejectedAsks:
		return "rejected_asks"
	default:
		return "unknown"
	}
}

type epoch [numCategories][]int64

// Ledger is an append-only store of quote history grouped by epoch.
// It is not safe for concurrent use; the engine drives it from one goroutine.
type Ledger struct {
	epochs []epoch

	// provisional entries live outside any epoch and are visible to every
	// window until released.
	provisional [numCategories][]int64
}

// New creates a ledger with epoch 0 open.
func New() *Ledger {
	return &Ledger{epochs: make([]epoch, 1)}
}

// Epoch returns the index of the open epoch.
func (l *Ledger) Epoch() int {
	return len(l.epochs) - 1
}

// Epochs returns the number of epochs, including the open one.
func (l *Ledger) Epochs() int {
	return len(l.epochs)
}

// Record appends price to category c of epoch t. Writing anywhere but the
// open epoch is a programming error and panics.
func (l *Ledger) Record(t int, c Category, price int64) {
	open := l.Epoch()
	if t > open || t < 0 {
		panic(fmt.Sprintf("LEDGER_EPOCH_OUT_OF_RANGE: write to epoch %d, open epoch is %d", t, open))
	}
	if t < open {
		panic(fmt.Sprintf("LEDGER_EPOCH_CLOSED: write to closed epoch %d, open epoch is %d", t, open))
	}
	if c < 0 || c >= numCategories {
		panic(fmt.Sprintf("LEDGER_UNKNOWN_CATEGORY: %d", c))
	}
	l.epochs[t][c] = append(l.epochs[t][c], price)
}

// Append records price in the open epoch.
func (l *Ledger) Append(c Category, price int64) {
	l.Record(l.Epoch(), c, price)
}

// Reset drops all history, leaving a single empty open epoch.
func (l *Ledger) Reset() {
	l.epochs = make([]epoch, 1)
	l.provisional = [numCategories][]int64{}
}

// OpenEpoch closes the current epoch and opens an empty one.
func (l *Ledger) OpenEpoch() {
	l.epochs = append(l.epochs, epoch{})
}

// Provisional adds a temporary entry to category c and returns the func that
// removes it again. Callers must defer the release so the entry never outlives
// the computation it was added for:
//
//	release := l.Provisional(ledger.RejectedAsks, ask)
//	defer release()
func (l *Ledger) Provisional(c Category, price int64) (release func()) {
	l.provisional[c] = append(l.provisional[c], price)
	released := false
	return func() {
		if released {
			return
		}
		released = true
		entries := l.provisional[c]
		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i] == price {
				l.provisional[c] = slices.Delete(entries, i, i+1)
				return
			}
		}
	}
}

// History returns the flattened concatenation of category c over the last k
// epochs, followed by any provisional entries. k <= 0 means all epochs.
func (l *Ledger) History(k int, c Category) []int64 {
	first := 0
	if k > 0 && k < len(l.epochs) {
		first = len(l.epochs) - k
	}

	var out []int64
	for _, ep := range l.epochs[first:] {
		out = append(out, ep[c]...)
	}
	return append(out, l.provisional[c]...)
}

// Window returns a copy of every category over the last k epochs.
func (l *Ledger) Window(k int) Window {
	return Window{
		Bids:         l.History(k, Bids),
		Asks:         l.History(k, Asks),
		AcceptedBids: l.History(k, AcceptedBids),
		RejectedBids: l.History(k, RejectedBids),
		AcceptedAsks: l.History(k, AcceptedAsks),
		RejectedAsks: l.History(k, RejectedAsks),
	}
}
