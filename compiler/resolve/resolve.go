// Package resolve drives batches of pending composite parts to a
// fixpoint. Each pending part is tracked as a Record; every round the
// resolver picks the records whose prerequisites are satisfied, hands
// them to a caller-supplied attempt step, and repeats until no record
// is ready. Records that never become ready are reported as stuck —
// partial progress over a batch is a normal terminal state, not an
// error.
//
// The package also supplies the one domain-specific attempt step the
// engine ships with: deriving the sequence of a composite DNA part by
// concatenating its fillers' sequences in canonical slot order.
package resolve

import (
	"log/slog"

	"github.com/syssam/strand"
)

// Record tracks one composite part pending attribute inference: the
// part, the identities it needs resolved first, and its status.
type Record struct {
	// Part is the composite awaiting resolution.
	Part *strand.Part
	// Prereqs are identities of the parts that must be individually
	// resolved before this record can be attempted.
	Prereqs []string

	resolved bool
	// Reason records why the record is stuck or failed, for diagnostics.
	Reason string
}

// MarkResolved flags the record as successfully resolved. Attempt
// callbacks call this on success.
func (r *Record) MarkResolved() { r.resolved = true }

// Resolved reports whether the record has been resolved.
func (r *Record) Resolved() bool { return r.resolved }

// Resolver runs fixpoint rounds over a worklist of records. The zero
// value is usable; options configure logging.
type Resolver struct {
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for per-round debug output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Result is the terminal state of a fixpoint run.
type Result struct {
	// Resolved counts records whose attempt succeeded.
	Resolved int
	// Failed counts records that became ready but whose attempt did
	// not resolve them. They are dropped from the worklist, not retried.
	Failed []*Record
	// Stuck holds the records that never became ready.
	Stuck []*Record
	// Rounds is the number of fixpoint rounds performed.
	Rounds int
}

// StuckIdentities returns the identities of stuck records in
// deterministic order.
func (res Result) StuckIdentities() []string {
	ids := make([]string, 0, len(res.Stuck))
	for _, r := range res.Stuck {
		ids = append(ids, r.Part.Identity)
	}
	return strand.SortByIdentity(ids)
}

// All resolves records to a fixpoint. ready reports whether a record's
// prerequisites are all satisfied; attempt performs the inference and
// returns whether the record resolved. Every ready record is removed
// from the worklist after its attempt regardless of outcome, so
// attempt must be order-independent within a round: no record may rely
// on another record attempted in the same round.
//
// Running All again over an already-resolved worklist is a no-op: the
// ready set is empty immediately and zero rounds of work are done.
func (rv *Resolver) All(records []*Record, ready func(*Record) bool, attempt func(*Record) bool) Result {
	pending := make([]*Record, 0, len(records))
	for _, r := range records {
		if !r.Resolved() {
			pending = append(pending, r)
		}
	}

	var res Result
	for len(pending) > 0 {
		var readySet, blocked []*Record
		for _, r := range pending {
			if ready(r) {
				readySet = append(readySet, r)
			} else {
				blocked = append(blocked, r)
			}
		}
		if len(readySet) == 0 {
			break
		}
		res.Rounds++
		rv.logger.Debug("resolution round", "round", res.Rounds, "ready", len(readySet), "blocked", len(blocked))
		for _, r := range readySet {
			if attempt(r) {
				r.MarkResolved()
				res.Resolved++
			} else {
				res.Failed = append(res.Failed, r)
			}
		}
		pending = blocked
	}

	res.Stuck = pending
	return res
}
