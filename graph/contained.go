package graph

import (
	"github.com/syssam/strand"
)

// ContainedParts returns, in identity order, every part reachable from
// the given roots by following slot fillers transitively, including
// the roots themselves. A filler identity that resolves to nothing in
// the document fails with a *strand.NotFoundError naming the referrer.
func ContainedParts(doc *strand.Document, roots ...*strand.Part) ([]*strand.Part, error) {
	seen := make(map[string]bool)
	var out []*strand.Part

	var visit func(p *strand.Part) error
	visit = func(p *strand.Part) error {
		if seen[p.Identity] {
			return nil
		}
		seen[p.Identity] = true
		out = append(out, p)
		for _, s := range p.Slots {
			if s.FillerID == "" {
				continue
			}
			filler, ok := doc.Part(s.FillerID)
			if !ok {
				return strand.NewNotFoundError(s.FillerID, p.Identity)
			}
			if err := visit(filler); err != nil {
				return err
			}
		}
		return nil
	}

	for _, r := range roots {
		if err := visit(r); err != nil {
			return nil, err
		}
	}
	return strand.SortPartsByIdentity(out), nil
}

// CollectionParts resolves a variant collection's members, flattening
// nested collections, and returns the contained closure of the member
// parts. Non-part, non-collection members fail with NotFoundError.
func CollectionParts(doc *strand.Document, c *strand.VariantCollection) ([]*strand.Part, error) {
	var members []*strand.Part
	seen := make(map[string]bool)

	var flatten func(c *strand.VariantCollection) error
	flatten = func(c *strand.VariantCollection) error {
		if seen[c.Identity] {
			return nil
		}
		seen[c.Identity] = true
		for _, id := range c.Members {
			if p, ok := doc.Part(id); ok {
				members = append(members, p)
				continue
			}
			nested, ok := doc.Collection(id)
			if !ok {
				return strand.NewNotFoundError(id, c.Identity)
			}
			if err := flatten(nested); err != nil {
				return err
			}
		}
		return nil
	}

	if err := flatten(c); err != nil {
		return nil, err
	}
	return ContainedParts(doc, members...)
}
