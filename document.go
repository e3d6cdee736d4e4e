package strand

import "fmt"

// Document owns all top-level objects of one design space and indexes
// them by identity. It is the unit of scope for resolution and
// expansion runs: every identity reference inside its objects is
// resolved against the document itself.
//
// A Document is not safe for concurrent mutation; one run owns one
// document.
type Document struct {
	parts       map[string]*Part
	templates   map[string]*Template
	collections map[string]*VariantCollection
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		parts:       make(map[string]*Part),
		templates:   make(map[string]*Template),
		collections: make(map[string]*VariantCollection),
	}
}

// Contains reports whether any object with the given identity is present.
func (d *Document) Contains(identity string) bool {
	if _, ok := d.parts[identity]; ok {
		return true
	}
	if _, ok := d.templates[identity]; ok {
		return true
	}
	_, ok := d.collections[identity]
	return ok
}

// AddPart adds a part to the document.
func (d *Document) AddPart(p *Part) error {
	if d.Contains(p.Identity) {
		return fmt.Errorf("%w: %s", ErrDuplicateIdentity, p.Identity)
	}
	d.parts[p.Identity] = p
	return nil
}

// AddTemplate adds a template to the document.
func (d *Document) AddTemplate(t *Template) error {
	if d.Contains(t.Identity) {
		return fmt.Errorf("%w: %s", ErrDuplicateIdentity, t.Identity)
	}
	d.templates[t.Identity] = t
	return nil
}

// AddCollection adds a variant collection to the document.
func (d *Document) AddCollection(c *VariantCollection) error {
	if d.Contains(c.Identity) {
		return fmt.Errorf("%w: %s", ErrDuplicateIdentity, c.Identity)
	}
	d.collections[c.Identity] = c
	return nil
}

// Part returns the part with the given identity.
func (d *Document) Part(identity string) (*Part, bool) {
	p, ok := d.parts[identity]
	return p, ok
}

// Template returns the template with the given identity.
func (d *Document) Template(identity string) (*Template, bool) {
	t, ok := d.templates[identity]
	return t, ok
}

// Collection returns the variant collection with the given identity.
func (d *Document) Collection(identity string) (*VariantCollection, bool) {
	c, ok := d.collections[identity]
	return c, ok
}

// Parts returns all parts in identity order.
func (d *Document) Parts() []*Part {
	parts := make([]*Part, 0, len(d.parts))
	for _, p := range d.parts {
		parts = append(parts, p)
	}
	return SortPartsByIdentity(parts)
}

// Templates returns all templates in identity order.
func (d *Document) Templates() []*Template {
	ids := make([]string, 0, len(d.templates))
	for id := range d.templates {
		ids = append(ids, id)
	}
	SortByIdentity(ids)
	templates := make([]*Template, 0, len(ids))
	for _, id := range ids {
		templates = append(templates, d.templates[id])
	}
	return templates
}

// Collections returns all variant collections in identity order.
func (d *Document) Collections() []*VariantCollection {
	ids := make([]string, 0, len(d.collections))
	for id := range d.collections {
		ids = append(ids, id)
	}
	SortByIdentity(ids)
	collections := make([]*VariantCollection, 0, len(ids))
	for _, id := range ids {
		collections = append(collections, d.collections[id])
	}
	return collections
}

// PartNamed finds the unique part with the given display ID or
// free-form name. It returns ErrNotFound when nothing matches and
// ErrAmbiguousName when more than one part does.
func (d *Document) PartNamed(name string) (*Part, error) {
	var found *Part
	for _, p := range d.Parts() {
		if p.DisplayID == name || (p.Name != "" && p.Name == name) {
			if found != nil {
				return nil, fmt.Errorf("%w: %s", ErrAmbiguousName, name)
			}
			found = p
		}
	}
	if found == nil {
		return nil, NewNotFoundError(name, "")
	}
	return found, nil
}

// TemplateNamed finds the unique template with the given display ID or
// free-form name, with the same semantics as PartNamed.
func (d *Document) TemplateNamed(name string) (*Template, error) {
	var found *Template
	for _, t := range d.Templates() {
		if t.DisplayID == name || (t.Name != "" && t.Name == name) {
			if found != nil {
				return nil, fmt.Errorf("%w: %s", ErrAmbiguousName, name)
			}
			found = t
		}
	}
	if found == nil {
		return nil, NewNotFoundError(name, "")
	}
	return found, nil
}

// RootTemplates returns, in identity order, the templates that are not
// referenced as a sub-template by any other template in the document.
// These are the natural default targets of an expansion run.
func (d *Document) RootTemplates() []*Template {
	children := make(map[string]bool)
	for _, t := range d.templates {
		for _, v := range t.Variables {
			for _, sub := range v.Templates {
				children[sub] = true
			}
		}
	}
	var roots []*Template
	for _, t := range d.Templates() {
		if !children[t.Identity] {
			roots = append(roots, t)
		}
	}
	return roots
}
