package load_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/strand"
	"github.com/syssam/strand/compiler/load"
)

const doc = `
namespace: https://example.org/test
parts:
  - id: pTac
    type: dna
    roles: [https://identifiers.org/SO:0000167]
    sequence: ttgaca
  - id: gfp
    name: green fluorescent protein
    type: dna
    sequence: atgcgt
  - id: cassette
    type: dna
    slots:
      - id: promoter
        filler: pTac
      - id: cds
        filler: gfp
        orientation: forward
    relations:
      - kind: meets
        subject: promoter
        object: cds
templates:
  - id: variants
    template: cassette
    variables:
      - slot: promoter
        variants: [pTac]
collections:
  - id: promoters
    members: [pTac]
`

func TestRead(t *testing.T) {
	d, err := load.Read(strings.NewReader(doc))
	require.NoError(t, err)

	t.Run("part_identities", func(t *testing.T) {
		p, ok := d.Part("https://example.org/test/pTac")
		require.True(t, ok)
		assert.Equal(t, "pTac", p.DisplayID)
		assert.Equal(t, strand.KindAtomic, p.Kind)
		assert.Equal(t, []string{strand.TypeDNA}, p.Types)
		assert.Equal(t, []string{"https://identifiers.org/SO:0000167"}, p.Roles)

		require.NotNil(t, p.Sequence)
		assert.Equal(t, "ttgaca", p.Sequence.Elements)
		assert.Equal(t, strand.IUPACEncoding, p.Sequence.Encoding)
		assert.Equal(t, "https://example.org/test/pTac_sequence", p.Sequence.Identity)
	})

	t.Run("composite_inferred_from_slots", func(t *testing.T) {
		p, ok := d.Part("https://example.org/test/cassette")
		require.True(t, ok)
		assert.Equal(t, strand.KindComposite, p.Kind)
		require.Len(t, p.Slots, 2)
		assert.Equal(t, "https://example.org/test/cassette/promoter", p.Slots[0].Identity)
		assert.Equal(t, "https://example.org/test/pTac", p.Slots[0].FillerID)
		assert.Equal(t, strand.OrientationForward, p.Slots[1].Orientation)
	})

	t.Run("relations_resolved_to_slot_identities", func(t *testing.T) {
		p, _ := d.Part("https://example.org/test/cassette")
		require.Len(t, p.Relations, 1)
		assert.Equal(t, strand.RelationMeets, p.Relations[0].Kind)
		assert.Equal(t, "https://example.org/test/cassette/promoter", p.Relations[0].Subject)
		assert.Equal(t, "https://example.org/test/cassette/cds", p.Relations[0].Object)
	})

	t.Run("template_resolved", func(t *testing.T) {
		tm, ok := d.Template("https://example.org/test/variants")
		require.True(t, ok)
		assert.Equal(t, "https://example.org/test/cassette", tm.PartID)
		require.Len(t, tm.Variables, 1)
		assert.Equal(t, "https://example.org/test/cassette/promoter", tm.Variables[0].SlotID)
		assert.Equal(t, []string{"https://example.org/test/pTac"}, tm.Variables[0].Variants)
	})

	t.Run("collection_resolved", func(t *testing.T) {
		c, ok := d.Collection("https://example.org/test/promoters")
		require.True(t, ok)
		assert.True(t, c.Plain)
		assert.Equal(t, []string{"https://example.org/test/pTac"}, c.Members)
	})
}

func TestReadDefaults(t *testing.T) {
	t.Run("default_namespace", func(t *testing.T) {
		d, err := load.Read(strings.NewReader("parts:\n  - id: p1\n"))
		require.NoError(t, err)
		_, ok := d.Part(load.DefaultNamespace + "/p1")
		assert.True(t, ok)
	})

	t.Run("display_id_from_name", func(t *testing.T) {
		d, err := load.Read(strings.NewReader("parts:\n  - name: blue fluorescent\n"))
		require.NoError(t, err)
		p, ok := d.Part(load.DefaultNamespace + "/blue_fluorescent")
		require.True(t, ok)
		assert.Equal(t, "blue fluorescent", p.Name)
	})

	t.Run("id_and_name_both_missing", func(t *testing.T) {
		_, err := load.Read(strings.NewReader("parts:\n  - type: dna\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "needs an id or a name")
	})
}

func TestReadRelationKinds(t *testing.T) {
	in := `
parts:
  - id: p
    slots:
      - id: a
      - id: b
      - id: c
    relations:
      - kind: meets
        subject: a
        object: b
      - kind: contains
        subject: a
        object: c
      - subject: b
        object: c
`
	d, err := load.Read(strings.NewReader(in))
	require.NoError(t, err)

	p, ok := d.Part(load.DefaultNamespace + "/p")
	require.True(t, ok)
	require.Len(t, p.Relations, 3)
	assert.Equal(t, strand.RelationMeets, p.Relations[0].Kind)
	assert.Equal(t, strand.RelationContains, p.Relations[1].Kind)
	// An omitted kind defaults to meets.
	assert.Equal(t, strand.RelationMeets, p.Relations[2].Kind)
}

func TestReadErrors(t *testing.T) {
	t.Run("unknown_field", func(t *testing.T) {
		_, err := load.Read(strings.NewReader("bogus: true\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing design document")
	})

	t.Run("unknown_orientation", func(t *testing.T) {
		in := "parts:\n  - id: p\n    slots:\n      - id: s\n        orientation: sideways\n"
		_, err := load.Read(strings.NewReader(in))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown orientation "sideways"`)
	})

	t.Run("unknown_kind", func(t *testing.T) {
		_, err := load.Read(strings.NewReader("parts:\n  - id: p\n    kind: quantum\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown part kind "quantum"`)
	})

	t.Run("unknown_relation_kind", func(t *testing.T) {
		in := `
parts:
  - id: p
    slots:
      - id: a
      - id: b
    relations:
      - kind: overlaps
        subject: a
        object: b
`
		_, err := load.Read(strings.NewReader(in))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown relation kind "overlaps"`)
	})

	t.Run("dangling_filler", func(t *testing.T) {
		in := "parts:\n  - id: p\n    slots:\n      - id: s\n        filler: ghost\n"
		_, err := load.Read(strings.NewReader(in))
		assert.True(t, strand.IsNotFound(err))
	})

	t.Run("relation_names_unknown_slot", func(t *testing.T) {
		in := `
parts:
  - id: p
    slots:
      - id: a
    relations:
      - kind: meets
        subject: a
        object: b
`
		_, err := load.Read(strings.NewReader(in))
		assert.True(t, strand.IsNotFound(err))
	})

	t.Run("duplicate_ids", func(t *testing.T) {
		_, err := load.Read(strings.NewReader("parts:\n  - id: p\n  - id: p\n"))
		assert.True(t, errors.Is(err, strand.ErrDuplicateIdentity))
	})

	t.Run("absolute_reference_no_name_fallback", func(t *testing.T) {
		in := "parts:\n  - id: dev\n    slots:\n      - id: s\n        filler: https://elsewhere.org/pTac\n"
		_, err := load.Read(strings.NewReader(in))
		assert.True(t, strand.IsNotFound(err))
	})
}

func TestReadNameReferences(t *testing.T) {
	in := `
parts:
  - id: pTac
    name: tac promoter
    type: dna
    sequence: ttgaca
  - id: dev
    slots:
      - id: s
        filler: tac promoter
`
	d, err := load.Read(strings.NewReader(in))
	require.NoError(t, err)

	dev, ok := d.Part(load.DefaultNamespace + "/dev")
	require.True(t, ok)
	assert.Equal(t, load.DefaultNamespace+"/pTac", dev.Slots[0].FillerID)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	partsFile := filepath.Join(dir, "parts.yaml")
	require.NoError(t, os.WriteFile(partsFile, []byte(`
namespace: https://example.org/test
parts:
  - id: pTac
    type: dna
    sequence: ttgaca
  - id: skeleton
    slots:
      - id: promoter
`), 0o644))

	templatesFile := filepath.Join(dir, "templates.yaml")
	require.NoError(t, os.WriteFile(templatesFile, []byte(`
namespace: https://example.org/test
templates:
  - id: variants
    template: skeleton
    variables:
      - slot: promoter
        variants: [pTac]
`), 0o644))

	t.Run("cross_file_references", func(t *testing.T) {
		d, err := load.Files(partsFile, templatesFile)
		require.NoError(t, err)

		tm, ok := d.Template("https://example.org/test/variants")
		require.True(t, ok)
		assert.Equal(t, "https://example.org/test/skeleton", tm.PartID)
		assert.Equal(t, []string{"https://example.org/test/pTac"}, tm.Variables[0].Variants)
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := load.Files(partsFile, filepath.Join(dir, "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("ambiguous_collection_reference", func(t *testing.T) {
		// The same collection display ID in two namespaces makes a
		// short-name reference ambiguous rather than binding to the
		// lexicographically first match.
		aFile := filepath.Join(dir, "a.yaml")
		require.NoError(t, os.WriteFile(aFile, []byte(`
namespace: https://example.org/a
parts:
  - id: pTac
    type: dna
    sequence: ttgaca
collections:
  - id: promoters
    members: [pTac]
`), 0o644))
		bFile := filepath.Join(dir, "b.yaml")
		require.NoError(t, os.WriteFile(bFile, []byte(`
namespace: https://example.org/b
parts:
  - id: pLac
    type: dna
    sequence: ttgata
  - id: skeleton
    slots:
      - id: promoter
collections:
  - id: promoters
    members: [pLac]
templates:
  - id: variants
    template: skeleton
    variables:
      - slot: promoter
        collections: [promoters]
`), 0o644))

		_, err := load.Files(aFile, bFile)
		require.Error(t, err)
		assert.True(t, errors.Is(err, strand.ErrAmbiguousName))
	})

	t.Run("parse_error_names_file", func(t *testing.T) {
		badFile := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(badFile, []byte("bogus: true\n"), 0o644))

		_, err := load.Files(badFile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.yaml")
	})
}
