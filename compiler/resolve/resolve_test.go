package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/strand"
	"github.com/syssam/strand/compiler/resolve"
)

const ns = "https://example.org/designs"

func record(displayID string, prereqs ...string) *resolve.Record {
	ids := make([]string, len(prereqs))
	for i, p := range prereqs {
		ids[i] = strand.Join(ns, p)
	}
	return &resolve.Record{
		Part:    &strand.Part{Identity: strand.Join(ns, displayID), DisplayID: displayID},
		Prereqs: ids,
	}
}

// run drives All with a done-set readiness check and an attempt that
// always succeeds.
func run(rv *resolve.Resolver, records []*resolve.Record) resolve.Result {
	done := make(map[string]bool)
	for _, r := range records {
		if r.Resolved() {
			done[r.Part.Identity] = true
		}
	}
	ready := func(r *resolve.Record) bool {
		for _, p := range r.Prereqs {
			if !done[p] {
				return false
			}
		}
		return true
	}
	attempt := func(r *resolve.Record) bool {
		done[r.Part.Identity] = true
		return true
	}
	return rv.All(records, ready, attempt)
}

func TestAll(t *testing.T) {
	t.Run("dependency_chain", func(t *testing.T) {
		// r2 waits on r1; r3 waits on something that never resolves.
		records := []*resolve.Record{
			record("r1"),
			record("r2", "r1"),
			record("r3", "ghost"),
		}
		res := run(resolve.New(), records)

		assert.Equal(t, 2, res.Resolved)
		assert.Equal(t, 2, res.Rounds)
		assert.Empty(t, res.Failed)
		require.Len(t, res.Stuck, 1)
		assert.Equal(t, strand.Join(ns, "r3"), res.Stuck[0].Part.Identity)
	})

	t.Run("rounds_bounded_by_records", func(t *testing.T) {
		// A strict chain makes one record ready per round.
		records := []*resolve.Record{
			record("r1"),
			record("r2", "r1"),
			record("r3", "r2"),
			record("r4", "r3"),
		}
		res := run(resolve.New(), records)

		assert.Equal(t, 4, res.Resolved)
		assert.Equal(t, 4, res.Rounds)
		assert.Empty(t, res.Stuck)
	})

	t.Run("idempotent_rerun", func(t *testing.T) {
		records := []*resolve.Record{record("r1"), record("r2", "r1")}
		rv := resolve.New()
		first := run(rv, records)
		require.Equal(t, 2, first.Resolved)

		// Everything is resolved; a second run does zero rounds.
		second := run(rv, records)
		assert.Equal(t, 0, second.Resolved)
		assert.Equal(t, 0, second.Rounds)
		assert.Empty(t, second.Stuck)
	})

	t.Run("failed_not_retried", func(t *testing.T) {
		rec := record("r1")
		attempts := 0
		res := resolve.New().All([]*resolve.Record{rec},
			func(*resolve.Record) bool { return true },
			func(*resolve.Record) bool {
				attempts++
				return false
			})

		assert.Equal(t, 1, attempts)
		assert.Equal(t, 0, res.Resolved)
		require.Len(t, res.Failed, 1)
		assert.Same(t, rec, res.Failed[0])
		assert.Empty(t, res.Stuck)
		assert.False(t, rec.Resolved())
	})

	t.Run("empty_worklist", func(t *testing.T) {
		res := resolve.New().All(nil,
			func(*resolve.Record) bool { return true },
			func(*resolve.Record) bool { return true })
		assert.Equal(t, 0, res.Rounds)
		assert.Empty(t, res.Stuck)
	})
}

func TestStuckIdentities(t *testing.T) {
	res := resolve.Result{Stuck: []*resolve.Record{record("b"), record("a")}}
	assert.Equal(t, []string{strand.Join(ns, "a"), strand.Join(ns, "b")}, res.StuckIdentities())
}
