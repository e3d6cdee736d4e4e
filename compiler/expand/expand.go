// Package expand materializes combinatorial design templates into the
// concrete variant parts they denote.
//
// An Expander owns one memo for one run: expanding the same template
// twice in a run returns the identical cached collection, which also
// handles diamond-shaped sharing where several templates reference the
// same sub-template. Templates whose skeleton is nothing but a single
// variable slot collapse into a plain parts library instead of being
// enumerated; everything else produces the full cartesian product of
// its variables' candidate sets. The engine performs no constraint
// satisfaction over the generated variants — checking non-ordering
// constraints is deliberately left to the caller.
package expand

import (
	"fmt"
	"log/slog"

	"github.com/syssam/strand"
	"github.com/syssam/strand/graph"
)

// Expander expands templates of a single document. It must not be
// shared across concurrent runs; the memo is per-run state, and a
// caller aborts a run by discarding the expander.
type Expander struct {
	doc    *strand.Document
	memo   map[string]*strand.VariantCollection
	inRun  map[string]bool
	logger *slog.Logger
}

// Option configures an Expander.
type Option func(*Expander)

// WithLogger sets the logger used for per-template debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Expander) { e.logger = l }
}

// New creates an Expander over the given document.
func New(doc *strand.Document, opts ...Option) *Expander {
	e := &Expander{
		doc:   doc,
		memo:  make(map[string]*strand.VariantCollection),
		inRun: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Expand materializes every target template into a variant collection,
// returned in target order. Targets must be distinct and must all
// belong to the expander's document. Failures are terminal for the
// run; no retrying with different assumptions is ever performed.
func (e *Expander) Expand(targets ...*strand.Template) ([]*strand.VariantCollection, error) {
	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		if seen[t.Identity] {
			return nil, strand.NewDuplicateTargetError(t.Identity)
		}
		seen[t.Identity] = true
		if owned, ok := e.doc.Template(t.Identity); !ok || owned != t {
			return nil, strand.NewScopeMismatchError(t.Identity)
		}
	}

	out := make([]*strand.VariantCollection, 0, len(targets))
	for _, t := range targets {
		e.logger.Info("expanding template", "template", t.Identity)
		c, err := e.collection(t)
		if err != nil {
			return nil, err
		}
		e.logger.Info("expansion finished", "template", t.Identity, "designs", len(c.Members))
		out = append(out, c)
	}
	return out, nil
}

// collection expands one template, memoized for the run.
func (e *Expander) collection(t *strand.Template) (*strand.VariantCollection, error) {
	if c, ok := e.memo[t.Identity]; ok {
		e.logger.Debug("found previous expansion", "template", t.Identity)
		return c, nil
	}
	if e.inRun[t.Identity] {
		return nil, fmt.Errorf("strand: recursive template reference involving %s", t.Identity)
	}
	e.inRun[t.Identity] = true
	defer delete(e.inRun, t.Identity)

	e.logger.Debug("expanding", "template", t.Identity)
	skeleton, ok := e.doc.Part(t.PartID)
	if !ok {
		return nil, strand.NewNotFoundError(t.PartID, t.Identity)
	}

	// Flatten every variable's candidate set up front. An empty set is
	// an authoring error: zero-way choices never denote a legitimate
	// empty design space.
	variables := sortedVariables(t)
	values := make([][]*strand.Part, len(variables))
	for i, v := range variables {
		vals, err := e.variableValues(t, v)
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			return nil, strand.NewEmptyCandidateError(t.Identity, v.SlotID)
		}
		values[i] = vals
	}

	var c *strand.VariantCollection
	var err error
	if isLibrary(t, skeleton) {
		e.logger.Debug("interpreting template as library", "template", t.Identity)
		c = e.collapse(t, values[0])
	} else {
		c, err = e.derive(t, skeleton, variables, values)
		if err != nil {
			return nil, err
		}
	}
	if err := e.doc.AddCollection(c); err != nil {
		return nil, err
	}
	e.memo[t.Identity] = c
	return c, nil
}

// isLibrary reports whether the template is de facto a parts library:
// one variable slot that is the skeleton's only slot, on a skeleton
// with no other structure. The emptiness conditions mirror the
// structural fields a skeleton can carry; a field that is present
// disqualifies collapse so no information is lost by skipping cloning.
func isLibrary(t *strand.Template, skeleton *strand.Part) bool {
	oneVar := len(t.Variables) == 1 && len(skeleton.Slots) == 1
	simple := skeleton.Sequence == nil &&
		len(skeleton.Relations) == 0 &&
		len(skeleton.Interactions) == 0 &&
		skeleton.Interface == nil &&
		len(skeleton.Models) == 0
	return oneVar && simple
}

// collapse builds the degenerate library collection: the flattened
// candidate set itself, deduplicated, with no cloning.
func (e *Expander) collapse(t *strand.Template, values []*strand.Part) *strand.VariantCollection {
	c := &strand.VariantCollection{
		Identity:  strand.Join(strand.Namespace(t.Identity), t.DisplayID+"_collection"),
		DisplayID: t.DisplayID + "_collection",
		Plain:     true,
	}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v.Identity] {
			continue
		}
		seen[v.Identity] = true
		c.Members = append(c.Members, v.Identity)
	}
	return c
}

// derive enumerates the cartesian product of the variables' candidate
// lists, cloning the skeleton once per assignment.
func (e *Expander) derive(t *strand.Template, skeleton *strand.Part, variables []*strand.Variable, values [][]*strand.Part) (*strand.VariantCollection, error) {
	c := &strand.VariantCollection{
		Identity:  strand.Join(strand.Namespace(t.Identity), t.DisplayID+"_derivatives"),
		DisplayID: t.DisplayID + "_derivatives",
	}

	members := make(map[string]bool)
	assignment := make([]*strand.Part, len(variables))
	counters := make([]int, len(variables))
	for {
		for i, n := range counters {
			assignment[i] = values[i][n]
		}
		id, err := e.deriveOne(t, skeleton, variables, assignment)
		if err != nil {
			return nil, err
		}
		if !members[id] {
			members[id] = true
			c.Members = append(c.Members, id)
		}

		// Advance the odometer over the product space.
		i := len(counters) - 1
		for ; i >= 0; i-- {
			counters[i]++
			if counters[i] < len(values[i]) {
				break
			}
			counters[i] = 0
		}
		if i < 0 {
			break
		}
	}
	return c, nil
}

// deriveOne clones the skeleton for one assignment, binds every
// variable slot to its chosen candidate, and re-derives the clone's
// meets relations in the skeleton's canonical order. The derived
// identity is a pure function of the template and the chosen
// candidates, so repeated runs reproduce the same variants and
// coinciding assignments deduplicate naturally.
func (e *Expander) deriveOne(t *strand.Template, skeleton *strand.Part, variables []*strand.Variable, assignment []*strand.Part) (string, error) {
	chosen := make([]string, len(assignment))
	for i, p := range assignment {
		chosen[i] = p.DisplayID
	}
	displayID := strand.DeriveDisplayID(t.DisplayID, chosen...)
	identity := strand.DeriveIdentity(strand.Namespace(t.Identity), t.DisplayID, chosen...)
	if e.doc.Contains(identity) {
		// Already derived, by this run or an earlier expansion of a
		// shared sub-template.
		return identity, nil
	}
	e.logger.Debug("deriving combination", "variant", displayID)

	clone := skeleton.Clone(displayID)
	for i, v := range variables {
		sk := skeleton.Slot(v.SlotID)
		if sk == nil {
			return "", strand.NewNotFoundError(v.SlotID, t.Identity)
		}
		cs := clone.SlotByDisplayID(sk.DisplayID)
		cs.FillerID = assignment[i].Identity
	}

	ordered, err := graph.Order(clone)
	if err != nil {
		return "", err
	}
	rebuildMeets(clone, ordered)

	if err := e.doc.AddPart(clone); err != nil {
		return "", err
	}
	return identity, nil
}

// rebuildMeets replaces the clone's meets relations with the canonical
// chain over the ordered slots, keeping all other relations untouched.
func rebuildMeets(p *strand.Part, ordered []*strand.Slot) {
	var kept []*strand.Relation
	for _, r := range p.Relations {
		if r.Kind != strand.RelationMeets {
			kept = append(kept, r)
		}
	}
	for i := 0; i+1 < len(ordered); i++ {
		kept = append(kept, &strand.Relation{
			Kind:    strand.RelationMeets,
			Subject: ordered[i].Identity,
			Object:  ordered[i+1].Identity,
		})
	}
	p.Relations = kept
}
