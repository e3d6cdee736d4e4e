// Package strand provides the entity model for hierarchical genetic
// construct designs: parts, slots, ordering relations, combinatorial
// templates, and the variant collections produced by expanding them.
//
// The model is purely in-memory. A Document owns all top-level objects
// of one design space and indexes them by identity; references between
// objects are always identity strings, never owning pointers, so the
// ownership graph is acyclic by construction. Algorithms over the
// model live in the graph and compiler packages:
//
//   - graph resolves the canonical left-to-right order of a composite
//     part's slots from its pairwise "meets" relations.
//   - compiler/resolve infers missing sequences of composite parts to
//     a fixpoint over a batch of pending records.
//   - compiler/expand materializes a combinatorial Template into the
//     concrete variant designs it denotes.
//
// Loading designs from files and serializing results back out are
// collaborator concerns, handled by compiler/load and export.
package strand

// PartKind discriminates the closed set of part variants. Traversal
// and cloning code switches exhaustively over this type, so adding a
// kind is a compile-time-visible change.
type PartKind int

const (
	// KindAtomic is a part with fixed content and no sub-structure.
	KindAtomic PartKind = iota
	// KindComposite is a part built from other parts via slots.
	KindComposite
	// KindExternalRef is a part defined outside the document, present
	// only as a reference (e.g. a chemical or enzyme definition).
	KindExternalRef
)

// String returns the kind name used in diagnostics and serialization.
func (k PartKind) String() string {
	switch k {
	case KindAtomic:
		return "atomic"
	case KindComposite:
		return "composite"
	case KindExternalRef:
		return "external"
	}
	return "unknown"
}

// Orientation is the reading direction of a slot's filler relative to
// its parent part.
type Orientation int

const (
	// OrientationNone leaves the orientation unspecified.
	OrientationNone Orientation = iota
	// OrientationForward reads the filler in its declared direction.
	OrientationForward
	// OrientationReverseComplement reads the filler reverse-complemented.
	OrientationReverseComplement
)

// String returns the orientation name used in diagnostics and serialization.
func (o Orientation) String() string {
	switch o {
	case OrientationForward:
		return "forward"
	case OrientationReverseComplement:
		return "reverse-complement"
	}
	return "none"
}

// RelationKind is the type of a directed relation between two slots of
// the same part.
type RelationKind int

const (
	// RelationMeets asserts that the subject slot immediately precedes
	// the object slot. The meets relations of a well-formed composite
	// form a single simple path over its slots.
	RelationMeets RelationKind = iota
	// RelationContains asserts that the subject slot topologically
	// encloses the object slot. Contains relations carry no ordering
	// information and are preserved untouched by the algorithms.
	RelationContains
)

// String returns the relation name used in diagnostics and serialization.
func (k RelationKind) String() string {
	switch k {
	case RelationMeets:
		return "meets"
	}
	return "contains"
}

// Part content types, following the systems-biology ontology identifiers
// the source domain uses. Only DNA parts participate in sequence
// resolution; the constants exist so collaborators agree on the strings.
const (
	TypeDNA     = "https://identifiers.org/SBO:0000251"
	TypeRNA     = "https://identifiers.org/SBO:0000250"
	TypeProtein = "https://identifiers.org/SBO:0000252"
)

// IUPACEncoding identifies the nucleic-acid encoding of sequence elements.
const IUPACEncoding = "https://identifiers.org/edam:format_1207"

// Sequence is the fixed or derived content of a part.
type Sequence struct {
	// Identity is the sequence's own stable identifier.
	Identity string
	// Elements is the raw content, e.g. a nucleotide string.
	Elements string
	// Encoding names the alphabet of Elements.
	Encoding string
}

// Len reports the number of elements. Nil-safe.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Elements)
}

// Range is a half-open-free, 1-based inclusive span [Start, End] of a
// filler within its parent's derived sequence.
type Range struct {
	Start int
	End   int
}

// Interaction is a functional relationship among slots of a part
// (e.g. repression). The engine never interprets interactions; their
// presence only disqualifies a template skeleton from library collapse.
type Interaction struct {
	// Type is an ontology identifier for the interaction kind.
	Type string
	// Participants are slot identities of the owning part.
	Participants []string
}

// Interface declares the external connection points of a part. Like
// interactions, it is opaque to the engine and only consulted for
// structural emptiness.
type Interface struct {
	Inputs  []string
	Outputs []string
}
