package expand

import (
	"sort"

	"github.com/syssam/strand"
)

// sortedVariables returns the template's variables in canonical order
// (by the identity of the slot they bind), so derived display IDs are
// reproducible regardless of authoring order.
func sortedVariables(t *strand.Template) []*strand.Variable {
	variables := append([]*strand.Variable(nil), t.Variables...)
	sort.Slice(variables, func(i, j int) bool {
		return variables[i].SlotID < variables[j].SlotID
	})
	return variables
}

// variableValues flattens one variable's full candidate set: directly
// listed parts, members of referenced collections (through arbitrary
// nesting), and the expansion of referenced sub-templates via the
// shared memo. The result is identity-sorted.
func (e *Expander) variableValues(t *strand.Template, v *strand.Variable) ([]*strand.Part, error) {
	var values []*strand.Part

	for _, id := range strand.SortByIdentity(append([]string(nil), v.Variants...)) {
		p, ok := e.doc.Part(id)
		if !ok {
			return nil, strand.NewNotFoundError(id, t.Identity)
		}
		values = append(values, p)
	}

	for _, id := range strand.SortByIdentity(append([]string(nil), v.Collections...)) {
		c, ok := e.doc.Collection(id)
		if !ok {
			return nil, strand.NewNotFoundError(id, t.Identity)
		}
		members, err := e.collectionValues(c)
		if err != nil {
			return nil, err
		}
		values = append(values, members...)
	}

	for _, id := range strand.SortByIdentity(append([]string(nil), v.Templates...)) {
		sub, ok := e.doc.Template(id)
		if !ok {
			return nil, strand.NewNotFoundError(id, t.Identity)
		}
		c, err := e.collection(sub)
		if err != nil {
			return nil, err
		}
		members, err := e.collectionValues(c)
		if err != nil {
			return nil, err
		}
		values = append(values, members...)
	}

	e.logger.Debug("found candidate values", "template", t.Identity, "slot", v.SlotID, "count", len(values))
	return strand.SortPartsByIdentity(values), nil
}

// collectionValues pulls all parts out of a possibly nested collection.
// Members must be parts or collections; anything else is a dangling
// reference.
func (e *Expander) collectionValues(c *strand.VariantCollection) ([]*strand.Part, error) {
	var values []*strand.Part
	for _, id := range strand.SortByIdentity(append([]string(nil), c.Members...)) {
		if p, ok := e.doc.Part(id); ok {
			values = append(values, p)
			continue
		}
		nested, ok := e.doc.Collection(id)
		if !ok {
			return nil, strand.NewNotFoundError(id, c.Identity)
		}
		members, err := e.collectionValues(nested)
		if err != nil {
			return nil, err
		}
		values = append(values, members...)
	}
	return values, nil
}
