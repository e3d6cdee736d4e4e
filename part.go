package strand

import "sort"

// Part is a named design entity, atomic or composite. Identity is a
// stable, globally unique string (URI-shaped in practice) and never
// changes after creation. A composite part may remain incomplete (nil
// Sequence) until sequence resolution fills it in.
type Part struct {
	// Identity uniquely names the part. Immutable.
	Identity string
	// DisplayID is the short, identifier-safe local name.
	DisplayID string
	// Name is the free-form human label, if any.
	Name string
	// Kind discriminates atomic, composite, and external parts.
	Kind PartKind
	// Types holds content-type identifiers such as TypeDNA.
	Types []string
	// Roles holds functional role identifiers (promoter, CDS, ...).
	Roles []string
	// Sequence is the fixed or derived content. Nil until resolved for
	// incomplete composites.
	Sequence *Sequence
	// Slots are the reference positions of a composite part.
	Slots []*Slot
	// Relations are the typed edges among this part's slots.
	Relations []*Relation
	// Interactions, Interface, and Models are opaque structural
	// payloads; the expansion engine consults only their emptiness.
	Interactions []Interaction
	Interface    *Interface
	Models       []string
}

// Slot is a named reference position within a composite part. It
// points to exactly one filler part by identity; during template
// authoring the filler of a variable slot is a placeholder that the
// expansion engine rebinds.
type Slot struct {
	// Identity uniquely names the slot, scoped under its part.
	Identity string
	// DisplayID is the slot's local name, unique within the part.
	DisplayID string
	// FillerID is the identity of the part filling this slot.
	FillerID string
	// Orientation is the reading direction of the filler.
	Orientation Orientation
	// Roles holds role identifiers refining the filler's use here.
	Roles []string
	// Location is the span of the filler within the parent's derived
	// sequence. Written by sequence resolution, nil before.
	Location *Range
}

// Relation is a directed, typed edge between two slots of one part.
type Relation struct {
	Kind RelationKind
	// Subject and Object are slot identities of the owning part.
	Subject string
	Object  string
}

// Slot returns the slot with the given identity, or nil.
func (p *Part) Slot(identity string) *Slot {
	for _, s := range p.Slots {
		if s.Identity == identity {
			return s
		}
	}
	return nil
}

// SlotByDisplayID returns the slot with the given local name, or nil.
func (p *Part) SlotByDisplayID(displayID string) *Slot {
	for _, s := range p.Slots {
		if s.DisplayID == displayID {
			return s
		}
	}
	return nil
}

// Meets returns the part's meets relations in declaration order.
func (p *Part) Meets() []*Relation {
	var meets []*Relation
	for _, r := range p.Relations {
		if r.Kind == RelationMeets {
			meets = append(meets, r)
		}
	}
	return meets
}

// HasType reports whether the part carries the given content type.
func (p *Part) HasType(typ string) bool {
	for _, t := range p.Types {
		if t == typ {
			return true
		}
	}
	return false
}

// Clone deep-copies the part under a new display ID in the same
// namespace. Slot identities are re-rooted under the new part identity
// and relations are remapped to the fresh slot identities; locations
// are dropped since they describe the original's derived sequence.
func (p *Part) Clone(displayID string) *Part {
	clone := &Part{
		Identity:  Join(Namespace(p.Identity), displayID),
		DisplayID: displayID,
		Name:      p.Name,
		Kind:      p.Kind,
		Types:     append([]string(nil), p.Types...),
		Roles:     append([]string(nil), p.Roles...),
		Models:    append([]string(nil), p.Models...),
	}
	if p.Sequence != nil {
		seq := *p.Sequence
		clone.Sequence = &seq
	}
	if p.Interface != nil {
		iface := Interface{
			Inputs:  append([]string(nil), p.Interface.Inputs...),
			Outputs: append([]string(nil), p.Interface.Outputs...),
		}
		clone.Interface = &iface
	}
	remapped := make(map[string]string, len(p.Slots))
	for _, s := range p.Slots {
		cs := &Slot{
			Identity:    Join(clone.Identity, s.DisplayID),
			DisplayID:   s.DisplayID,
			FillerID:    s.FillerID,
			Orientation: s.Orientation,
			Roles:       append([]string(nil), s.Roles...),
		}
		remapped[s.Identity] = cs.Identity
		clone.Slots = append(clone.Slots, cs)
	}
	for _, r := range p.Relations {
		cr := &Relation{Kind: r.Kind, Subject: r.Subject, Object: r.Object}
		if id, ok := remapped[cr.Subject]; ok {
			cr.Subject = id
		}
		if id, ok := remapped[cr.Object]; ok {
			cr.Object = id
		}
		clone.Relations = append(clone.Relations, cr)
	}
	for _, i := range p.Interactions {
		ci := Interaction{Type: i.Type}
		for _, pt := range i.Participants {
			if id, ok := remapped[pt]; ok {
				pt = id
			}
			ci.Participants = append(ci.Participants, pt)
		}
		clone.Interactions = append(clone.Interactions, ci)
	}
	return clone
}

// Template is the skeleton of a combinatorial design: a reference to a
// part whose designated slots are variable, each bound to a set of
// alternative fillers.
type Template struct {
	// Identity uniquely names the template. Immutable.
	Identity string
	// DisplayID is the short local name, used to derive variant names.
	DisplayID string
	// Name is the free-form human label, if any.
	Name string
	// PartID is the identity of the skeleton part.
	PartID string
	// Variables designate the variable slots and their candidates.
	Variables []*Variable
}

// Variable binds one slot of a template's skeleton to its candidate
// fillers. The full candidate set is the union of directly listed
// parts, members of referenced collections, and the expansion of
// referenced sub-templates.
type Variable struct {
	// SlotID is the identity of the variable slot in the skeleton.
	SlotID string
	// Variants are identities of directly listed candidate parts.
	Variants []string
	// Collections are identities of candidate VariantCollections.
	Collections []string
	// Templates are identities of sub-templates whose expansions
	// contribute candidates.
	Templates []string
}

// VariantCollection is the materialized output of expanding a
// template: an ordered, identity-deduplicated set of concrete parts.
// It lives for the duration of an expansion run's document and is not
// persisted by the engine itself.
type VariantCollection struct {
	// Identity uniquely names the collection. Immutable.
	Identity string
	// DisplayID is the short local name.
	DisplayID string
	// Members are part (or, for authored library collections, nested
	// collection) identities in deterministic order.
	Members []string
	// Plain marks a collection that is a flat parts library rather than
	// an enumerated derivation (the degenerate single-slot case).
	Plain bool
}

// SortByIdentity sorts identities in place and returns them. All
// engine outputs that enumerate objects use identity order so repeated
// runs are reproducible.
func SortByIdentity(ids []string) []string {
	sort.Strings(ids)
	return ids
}

// SortPartsByIdentity sorts parts in place by identity and returns them.
func SortPartsByIdentity(parts []*Part) []*Part {
	sort.Slice(parts, func(i, j int) bool {
		return parts[i].Identity < parts[j].Identity
	})
	return parts
}
