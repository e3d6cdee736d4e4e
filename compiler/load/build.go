package load

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/strand"
)

// build creates all declared objects, then resolves every reference.
// Creation happens first across all files so references may point
// forward and across file boundaries.
func build(files ...*File) (*strand.Document, error) {
	doc := strand.NewDocument()

	type pending struct {
		part *strand.Part
		def  PartDef
	}
	var parts []pending
	var templates []*strand.Template
	tdefs := make(map[string]TemplateDef)

	for _, f := range files {
		ns := f.Namespace
		if ns == "" {
			ns = DefaultNamespace
		}
		for _, def := range f.Parts {
			p, err := newPart(ns, def)
			if err != nil {
				return nil, err
			}
			if err := doc.AddPart(p); err != nil {
				return nil, err
			}
			parts = append(parts, pending{part: p, def: def})
		}
		for _, def := range f.Collections {
			id, err := displayID(def.ID, def.Name)
			if err != nil {
				return nil, err
			}
			c := &strand.VariantCollection{
				Identity:  strand.Join(ns, id),
				DisplayID: id,
				Plain:     true,
			}
			if err := doc.AddCollection(c); err != nil {
				return nil, err
			}
			// Member references are resolved below; keep the raw refs
			// until every object exists.
			c.Members = append([]string(nil), def.Members...)
		}
		for _, def := range f.Templates {
			id, err := displayID(def.ID, def.Name)
			if err != nil {
				return nil, err
			}
			t := &strand.Template{
				Identity:  strand.Join(ns, id),
				DisplayID: id,
				Name:      def.Name,
			}
			if err := doc.AddTemplate(t); err != nil {
				return nil, err
			}
			templates = append(templates, t)
			tdefs[t.Identity] = def
		}
	}

	// Second pass: resolve references now that every object exists.
	for _, p := range parts {
		if err := resolvePart(doc, p.part, p.def); err != nil {
			return nil, err
		}
	}
	for _, c := range doc.Collections() {
		for i, ref := range c.Members {
			m, err := memberRef(doc, ref, c.Identity)
			if err != nil {
				return nil, err
			}
			c.Members[i] = m
		}
	}
	for _, t := range templates {
		if err := resolveTemplate(doc, t, tdefs[t.Identity]); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func newPart(ns string, def PartDef) (*strand.Part, error) {
	id, err := displayID(def.ID, def.Name)
	if err != nil {
		return nil, err
	}
	kind, err := parseKind(def)
	if err != nil {
		return nil, err
	}
	p := &strand.Part{
		Identity:  strand.Join(ns, id),
		DisplayID: id,
		Name:      def.Name,
		Kind:      kind,
		Roles:     append([]string(nil), def.Roles...),
	}
	if typ := parseType(def.Type); typ != "" {
		p.Types = []string{typ}
	}
	if def.Sequence != "" {
		p.Sequence = &strand.Sequence{
			Identity: strand.Join(ns, id+"_sequence"),
			Elements: def.Sequence,
			Encoding: strand.IUPACEncoding,
		}
	}
	for _, sd := range def.Slots {
		orientation, err := parseOrientation(sd.Orientation)
		if err != nil {
			return nil, fmt.Errorf("strand: slot %s of %s: %w", sd.ID, id, err)
		}
		p.Slots = append(p.Slots, &strand.Slot{
			Identity:    strand.Join(p.Identity, sd.ID),
			DisplayID:   sd.ID,
			Orientation: orientation,
			Roles:       append([]string(nil), sd.Roles...),
		})
	}
	for _, rd := range def.Relations {
		kind, err := parseRelationKind(rd.Kind)
		if err != nil {
			return nil, fmt.Errorf("strand: relation of %s: %w", id, err)
		}
		subject := p.SlotByDisplayID(rd.Subject)
		object := p.SlotByDisplayID(rd.Object)
		if subject == nil {
			return nil, strand.NewNotFoundError(rd.Subject, p.Identity)
		}
		if object == nil {
			return nil, strand.NewNotFoundError(rd.Object, p.Identity)
		}
		p.Relations = append(p.Relations, &strand.Relation{
			Kind:    kind,
			Subject: subject.Identity,
			Object:  object.Identity,
		})
	}
	return p, nil
}

func resolvePart(doc *strand.Document, p *strand.Part, def PartDef) error {
	for i, sd := range def.Slots {
		if sd.Filler == "" {
			continue
		}
		filler, err := partRef(doc, sd.Filler, p.Identity)
		if err != nil {
			return err
		}
		p.Slots[i].FillerID = filler.Identity
	}
	return nil
}

func resolveTemplate(doc *strand.Document, t *strand.Template, def TemplateDef) error {
	skeleton, err := partRef(doc, def.Template, t.Identity)
	if err != nil {
		return err
	}
	t.PartID = skeleton.Identity
	for _, vd := range def.Variables {
		slot := skeleton.SlotByDisplayID(vd.Slot)
		if slot == nil {
			slot = skeleton.Slot(vd.Slot)
		}
		if slot == nil {
			return strand.NewNotFoundError(vd.Slot, t.Identity)
		}
		v := &strand.Variable{SlotID: slot.Identity}
		for _, ref := range vd.Variants {
			p, err := partRef(doc, ref, t.Identity)
			if err != nil {
				return err
			}
			v.Variants = append(v.Variants, p.Identity)
		}
		for _, ref := range vd.Collections {
			c, err := collectionRef(doc, ref, t.Identity)
			if err != nil {
				return err
			}
			v.Collections = append(v.Collections, c.Identity)
		}
		for _, ref := range vd.Templates {
			sub, err := templateRef(doc, ref, t.Identity)
			if err != nil {
				return err
			}
			v.Templates = append(v.Templates, sub.Identity)
		}
		t.Variables = append(t.Variables, v)
	}
	return nil
}

// displayID picks the declared ID or derives one from the name.
func displayID(id, name string) (string, error) {
	if id != "" {
		return id, nil
	}
	if derived := strand.SanitizeDisplayID(name); derived != "" {
		return derived, nil
	}
	return "", fmt.Errorf("strand: object needs an id or a name")
}

// partRef resolves an identity or display-name reference to a part.
func partRef(doc *strand.Document, ref, referrer string) (*strand.Part, error) {
	if p, ok := doc.Part(ref); ok {
		return p, nil
	}
	if strings.Contains(ref, "/") {
		// Absolute references never fall back to name lookup.
		return nil, strand.NewNotFoundError(ref, referrer)
	}
	p, err := doc.PartNamed(ref)
	if err != nil {
		return nil, fmt.Errorf("resolving %q in %s: %w", ref, referrer, err)
	}
	return p, nil
}

// memberRef resolves a collection member, which may be a part or a
// nested collection.
func memberRef(doc *strand.Document, ref, referrer string) (string, error) {
	if doc.Contains(ref) {
		return ref, nil
	}
	if strings.Contains(ref, "/") {
		return "", strand.NewNotFoundError(ref, referrer)
	}
	p, err := doc.PartNamed(ref)
	if err == nil {
		return p.Identity, nil
	}
	if errors.Is(err, strand.ErrAmbiguousName) {
		return "", fmt.Errorf("resolving %q in %s: %w", ref, referrer, err)
	}
	c, err := collectionNamed(doc, ref)
	if err == nil {
		return c.Identity, nil
	}
	if errors.Is(err, strand.ErrAmbiguousName) {
		return "", fmt.Errorf("resolving %q in %s: %w", ref, referrer, err)
	}
	return "", strand.NewNotFoundError(ref, referrer)
}

func collectionRef(doc *strand.Document, ref, referrer string) (*strand.VariantCollection, error) {
	if c, ok := doc.Collection(ref); ok {
		return c, nil
	}
	if strings.Contains(ref, "/") {
		return nil, strand.NewNotFoundError(ref, referrer)
	}
	c, err := collectionNamed(doc, ref)
	if err != nil {
		return nil, fmt.Errorf("resolving %q in %s: %w", ref, referrer, err)
	}
	return c, nil
}

// collectionNamed finds the unique collection with the given display
// ID, with the same ambiguity semantics as Document.PartNamed.
func collectionNamed(doc *strand.Document, name string) (*strand.VariantCollection, error) {
	var found *strand.VariantCollection
	for _, c := range doc.Collections() {
		if c.DisplayID == name {
			if found != nil {
				return nil, fmt.Errorf("%w: %s", strand.ErrAmbiguousName, name)
			}
			found = c
		}
	}
	if found == nil {
		return nil, strand.NewNotFoundError(name, "")
	}
	return found, nil
}

func templateRef(doc *strand.Document, ref, referrer string) (*strand.Template, error) {
	if t, ok := doc.Template(ref); ok {
		return t, nil
	}
	if !strings.Contains(ref, "/") {
		t, err := doc.TemplateNamed(ref)
		if err == nil {
			return t, nil
		}
	}
	return nil, strand.NewNotFoundError(ref, referrer)
}

func parseKind(def PartDef) (strand.PartKind, error) {
	switch def.Kind {
	case "":
		if len(def.Slots) > 0 {
			return strand.KindComposite, nil
		}
		return strand.KindAtomic, nil
	case "atomic":
		return strand.KindAtomic, nil
	case "composite":
		return strand.KindComposite, nil
	case "external":
		return strand.KindExternalRef, nil
	}
	return 0, fmt.Errorf("strand: unknown part kind %q", def.Kind)
}

func parseType(typ string) string {
	switch typ {
	case "":
		return ""
	case "dna":
		return strand.TypeDNA
	case "rna":
		return strand.TypeRNA
	case "protein":
		return strand.TypeProtein
	}
	return typ
}

func parseRelationKind(kind string) (strand.RelationKind, error) {
	switch kind {
	case "", "meets":
		return strand.RelationMeets, nil
	case "contains":
		return strand.RelationContains, nil
	}
	return 0, fmt.Errorf("unknown relation kind %q", kind)
}

func parseOrientation(o string) (strand.Orientation, error) {
	switch o {
	case "", "none":
		return strand.OrientationNone, nil
	case "forward":
		return strand.OrientationForward, nil
	case "reverse-complement":
		return strand.OrientationReverseComplement, nil
	}
	return 0, fmt.Errorf("unknown orientation %q", o)
}
