// Package design provides fluent constructors for authoring parts in
// code, mirroring the shapes the loader produces from YAML. They are
// conveniences for tests and programmatic collaborators; nothing in
// the engine depends on them.
package design

import (
	"fmt"

	"github.com/syssam/strand"
)

// Sequence-ontology role identifiers for the common part types.
const (
	RolePromoter         = "https://identifiers.org/SO:0000167"
	RoleRBS              = "https://identifiers.org/SO:0000139"
	RoleCDS              = "https://identifiers.org/SO:0000316"
	RoleTerminator       = "https://identifiers.org/SO:0000141"
	RoleGene             = "https://identifiers.org/SO:0000704"
	RoleOperator         = "https://identifiers.org/SO:0000057"
	RoleEngineeredRegion = "https://identifiers.org/SO:0000804"
)

// DNA creates an atomic DNA part with fixed sequence content.
func DNA(namespace, displayID, elements string, roles ...string) *strand.Part {
	identity := strand.Join(namespace, displayID)
	p := &strand.Part{
		Identity:  identity,
		DisplayID: displayID,
		Kind:      strand.KindAtomic,
		Types:     []string{strand.TypeDNA},
		Roles:     roles,
	}
	if elements != "" {
		p.Sequence = &strand.Sequence{
			Identity: strand.Join(namespace, displayID+"_sequence"),
			Elements: elements,
			Encoding: strand.IUPACEncoding,
		}
	}
	return p
}

// Promoter creates a promoter part.
func Promoter(namespace, displayID, elements string) *strand.Part {
	return DNA(namespace, displayID, elements, RolePromoter)
}

// RBS creates a ribosome binding site part.
func RBS(namespace, displayID, elements string) *strand.Part {
	return DNA(namespace, displayID, elements, RoleRBS)
}

// CDS creates a coding sequence part.
func CDS(namespace, displayID, elements string) *strand.Part {
	return DNA(namespace, displayID, elements, RoleCDS)
}

// Terminator creates a terminator part.
func Terminator(namespace, displayID, elements string) *strand.Part {
	return DNA(namespace, displayID, elements, RoleTerminator)
}

// Operator creates an operator part.
func Operator(namespace, displayID, elements string) *strand.Part {
	return DNA(namespace, displayID, elements, RoleOperator)
}

// Gene creates a composite gene: a region of the given fillers with
// the gene role in place of the generic engineered-region role.
func Gene(namespace, displayID string, fillers ...*strand.Part) (*strand.Part, error) {
	p, err := Region(namespace, displayID, fillers...)
	if err != nil {
		return nil, err
	}
	p.Roles = []string{RoleGene}
	return p, nil
}

// ExternalRef creates a part defined outside the document, referenced
// by its external definition identifier.
func ExternalRef(namespace, displayID, definition string) *strand.Part {
	return &strand.Part{
		Identity:  strand.Join(namespace, displayID),
		DisplayID: displayID,
		Name:      definition,
		Kind:      strand.KindExternalRef,
	}
}

// Region creates a composite DNA part with one slot per filler, joined
// left to right by a meets chain. Fillers may repeat; repeated slots
// get numbered display IDs.
func Region(namespace, displayID string, fillers ...*strand.Part) (*strand.Part, error) {
	if len(fillers) == 0 {
		return nil, fmt.Errorf("strand: region %s needs at least one filler", displayID)
	}
	p := &strand.Part{
		Identity:  strand.Join(namespace, displayID),
		DisplayID: displayID,
		Kind:      strand.KindComposite,
		Types:     []string{strand.TypeDNA},
		Roles:     []string{RoleEngineeredRegion},
	}
	used := make(map[string]int)
	for _, f := range fillers {
		name := f.DisplayID
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		p.Slots = append(p.Slots, &strand.Slot{
			Identity:    strand.Join(p.Identity, name),
			DisplayID:   name,
			FillerID:    f.Identity,
			Orientation: strand.OrientationForward,
		})
	}
	for i := 0; i+1 < len(p.Slots); i++ {
		p.Relations = append(p.Relations, &strand.Relation{
			Kind:    strand.RelationMeets,
			Subject: p.Slots[i].Identity,
			Object:  p.Slots[i+1].Identity,
		})
	}
	return p, nil
}

// Order adds a meets relation asserting that the five-prime slot
// immediately precedes the three-prime slot.
func Order(p *strand.Part, fivePrime, threePrime *strand.Slot) {
	p.Relations = append(p.Relations, &strand.Relation{
		Kind:    strand.RelationMeets,
		Subject: fivePrime.Identity,
		Object:  threePrime.Identity,
	})
}

// Contains adds a contains relation asserting that the container slot
// topologically encloses the contained slot.
func Contains(p *strand.Part, container, contained *strand.Slot) {
	p.Relations = append(p.Relations, &strand.Relation{
		Kind:    strand.RelationContains,
		Subject: container.Identity,
		Object:  contained.Identity,
	})
}

// Library creates a plain curated collection of the given parts.
func Library(namespace, displayID string, members ...*strand.Part) *strand.VariantCollection {
	c := &strand.VariantCollection{
		Identity:  strand.Join(namespace, displayID),
		DisplayID: displayID,
		Plain:     true,
	}
	for _, m := range members {
		c.Members = append(c.Members, m.Identity)
	}
	return c
}
