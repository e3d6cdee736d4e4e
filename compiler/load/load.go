// Package load parses design documents from their YAML authoring
// syntax into the in-memory entity model. It is the inbound
// collaborator of the engine: all reference resolution (by identity or
// by display name) happens here, before any algorithm runs, so the
// core only ever sees concrete identity bindings.
//
// Loading performs no ontology validation and no semantic checks
// beyond reference resolution; structural well-formedness is the
// engine's concern.
package load

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/syssam/strand"
)

// DefaultNamespace roots identities of documents that declare none.
const DefaultNamespace = "https://strand.local/designs"

// File is the top-level YAML document structure.
type File struct {
	Namespace   string          `yaml:"namespace"`
	Parts       []PartDef       `yaml:"parts"`
	Templates   []TemplateDef   `yaml:"templates"`
	Collections []CollectionDef `yaml:"collections"`
}

// PartDef declares one part.
type PartDef struct {
	ID        string        `yaml:"id"`
	Name      string        `yaml:"name"`
	Kind      string        `yaml:"kind"`
	Type      string        `yaml:"type"`
	Roles     []string      `yaml:"roles"`
	Sequence  string        `yaml:"sequence"`
	Slots     []SlotDef     `yaml:"slots"`
	Relations []RelationDef `yaml:"relations"`
}

// SlotDef declares one slot of a part. Filler is an identity or a
// display name; a variable slot of a template may leave it empty.
type SlotDef struct {
	ID          string   `yaml:"id"`
	Filler      string   `yaml:"filler"`
	Orientation string   `yaml:"orientation"`
	Roles       []string `yaml:"roles"`
}

// RelationDef declares a typed edge between two slots of the owning
// part, referenced by their slot IDs.
type RelationDef struct {
	Kind    string `yaml:"kind"`
	Subject string `yaml:"subject"`
	Object  string `yaml:"object"`
}

// TemplateDef declares a combinatorial template over a skeleton part.
type TemplateDef struct {
	ID        string        `yaml:"id"`
	Name      string        `yaml:"name"`
	Template  string        `yaml:"template"`
	Variables []VariableDef `yaml:"variables"`
}

// VariableDef declares one variable slot and its candidate sources.
type VariableDef struct {
	Slot        string   `yaml:"slot"`
	Variants    []string `yaml:"variants"`
	Collections []string `yaml:"collections"`
	Templates   []string `yaml:"templates"`
}

// CollectionDef declares a curated parts library.
type CollectionDef struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

// Read parses a single YAML document into a resolved Document.
func Read(r io.Reader) (*strand.Document, error) {
	f, err := parse(r)
	if err != nil {
		return nil, err
	}
	return build(f)
}

// FromFile loads a resolved Document from one file.
func FromFile(path string) (*strand.Document, error) {
	f, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	return build(f)
}

// Files loads several files into one merged Document. Files are
// parsed concurrently; objects are created in argument order and
// references are resolved across file boundaries after the merge.
func Files(paths ...string) (*strand.Document, error) {
	files := make([]*File, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			f, err := parseFile(path)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return build(files...)
}

func parseFile(path string) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	f, err := parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("strand: parsing design document: %w", err)
	}
	return &f, nil
}
