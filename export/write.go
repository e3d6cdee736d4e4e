package export

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/strand"
	"github.com/syssam/strand/graph"
)

// Snapshot is the serialized shape of a document: fully resolved
// identities, derived sequences and locations included. It is a
// read-only rendering for downstream consumers, not an authoring
// format; identifiers are emitted in full rather than as the short
// references the loader accepts.
type Snapshot struct {
	Parts       []PartOut       `yaml:"parts,omitempty" json:"parts,omitempty" msgpack:"parts"`
	Templates   []TemplateOut   `yaml:"templates,omitempty" json:"templates,omitempty" msgpack:"templates,omitempty"`
	Collections []CollectionOut `yaml:"collections,omitempty" json:"collections,omitempty" msgpack:"collections,omitempty"`
}

// PartOut is the serialized form of a part.
type PartOut struct {
	ID        string        `yaml:"id" json:"id" msgpack:"id"`
	Name      string        `yaml:"name,omitempty" json:"name,omitempty" msgpack:"name,omitempty"`
	Kind      string        `yaml:"kind" json:"kind" msgpack:"kind"`
	Types     []string      `yaml:"types,omitempty" json:"types,omitempty" msgpack:"types,omitempty"`
	Roles     []string      `yaml:"roles,omitempty" json:"roles,omitempty" msgpack:"roles,omitempty"`
	Sequence  string        `yaml:"sequence,omitempty" json:"sequence,omitempty" msgpack:"sequence,omitempty"`
	Slots     []SlotOut     `yaml:"slots,omitempty" json:"slots,omitempty" msgpack:"slots,omitempty"`
	Relations []RelationOut `yaml:"relations,omitempty" json:"relations,omitempty" msgpack:"relations,omitempty"`
}

// SlotOut is the serialized form of a slot.
type SlotOut struct {
	ID          string `yaml:"id" json:"id" msgpack:"id"`
	Filler      string `yaml:"filler,omitempty" json:"filler,omitempty" msgpack:"filler,omitempty"`
	Orientation string `yaml:"orientation,omitempty" json:"orientation,omitempty" msgpack:"orientation,omitempty"`
	Start       int    `yaml:"start,omitempty" json:"start,omitempty" msgpack:"start,omitempty"`
	End         int    `yaml:"end,omitempty" json:"end,omitempty" msgpack:"end,omitempty"`
}

// RelationOut is the serialized form of a relation.
type RelationOut struct {
	Kind    string `yaml:"kind" json:"kind" msgpack:"kind"`
	Subject string `yaml:"subject" json:"subject" msgpack:"subject"`
	Object  string `yaml:"object" json:"object" msgpack:"object"`
}

// TemplateOut is the serialized form of a template.
type TemplateOut struct {
	ID        string        `yaml:"id" json:"id" msgpack:"id"`
	Template  string        `yaml:"template" json:"template" msgpack:"template"`
	Variables []VariableOut `yaml:"variables,omitempty" json:"variables,omitempty" msgpack:"variables,omitempty"`
}

// VariableOut is the serialized form of a template variable.
type VariableOut struct {
	Slot        string   `yaml:"slot" json:"slot" msgpack:"slot"`
	Variants    []string `yaml:"variants,omitempty" json:"variants,omitempty" msgpack:"variants,omitempty"`
	Collections []string `yaml:"collections,omitempty" json:"collections,omitempty" msgpack:"collections,omitempty"`
	Templates   []string `yaml:"templates,omitempty" json:"templates,omitempty" msgpack:"templates,omitempty"`
}

// CollectionOut is the serialized form of a variant collection.
type CollectionOut struct {
	ID      string   `yaml:"id" json:"id" msgpack:"id"`
	Plain   bool     `yaml:"plain,omitempty" json:"plain,omitempty" msgpack:"plain,omitempty"`
	Members []string `yaml:"members" json:"members" msgpack:"members"`
}

// Document writes the whole document in the given format.
func Document(w io.Writer, doc *strand.Document, f Format) error {
	return encode(w, snapshot(doc.Parts(), doc.Templates(), doc.Collections()), f)
}

// Collections writes the given collections along with every part they
// transitively depend on, so the output stands on its own.
func Collections(w io.Writer, doc *strand.Document, cols []*strand.VariantCollection, f Format) error {
	seen := make(map[string]bool)
	var parts []*strand.Part
	for _, c := range cols {
		members, err := graph.CollectionParts(doc, c)
		if err != nil {
			return err
		}
		for _, p := range members {
			if !seen[p.Identity] {
				seen[p.Identity] = true
				parts = append(parts, p)
			}
		}
	}
	strand.SortPartsByIdentity(parts)
	return encode(w, snapshot(parts, nil, cols), f)
}

func encode(w io.Writer, s Snapshot, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(s)
	default:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(s)
	}
}

func snapshot(parts []*strand.Part, templates []*strand.Template, cols []*strand.VariantCollection) Snapshot {
	var s Snapshot
	for _, p := range parts {
		s.Parts = append(s.Parts, partOut(p))
	}
	for _, t := range templates {
		to := TemplateOut{ID: t.Identity, Template: t.PartID}
		for _, v := range t.Variables {
			to.Variables = append(to.Variables, VariableOut{
				Slot:        v.SlotID,
				Variants:    v.Variants,
				Collections: v.Collections,
				Templates:   v.Templates,
			})
		}
		s.Templates = append(s.Templates, to)
	}
	for _, c := range cols {
		s.Collections = append(s.Collections, CollectionOut{
			ID:      c.Identity,
			Plain:   c.Plain,
			Members: c.Members,
		})
	}
	return s
}

func partOut(p *strand.Part) PartOut {
	out := PartOut{
		ID:    p.Identity,
		Name:  p.Name,
		Kind:  p.Kind.String(),
		Types: p.Types,
		Roles: p.Roles,
	}
	if p.Sequence != nil {
		out.Sequence = p.Sequence.Elements
	}
	for _, s := range p.Slots {
		so := SlotOut{ID: s.Identity, Filler: s.FillerID}
		if s.Orientation != strand.OrientationNone {
			so.Orientation = s.Orientation.String()
		}
		if s.Location != nil {
			so.Start = s.Location.Start
			so.End = s.Location.End
		}
		out.Slots = append(out.Slots, so)
	}
	for _, r := range p.Relations {
		out.Relations = append(out.Relations, RelationOut{
			Kind:    r.Kind.String(),
			Subject: r.Subject,
			Object:  r.Object,
		})
	}
	return out
}
