package export_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/strand"
	"github.com/syssam/strand/design"
	"github.com/syssam/strand/export"
)

const ns = "https://example.org/designs"

func TestParseFormat(t *testing.T) {
	t.Run("known", func(t *testing.T) {
		for _, name := range export.FormatNames() {
			f, err := export.ParseFormat(name)
			require.NoError(t, err)
			assert.Equal(t, name, string(f))
		}
	})

	t.Run("case_insensitive", func(t *testing.T) {
		f, err := export.ParseFormat("YAML")
		require.NoError(t, err)
		assert.Equal(t, export.FormatYAML, f)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := export.ParseFormat("xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown export format "xml"`)
		assert.Contains(t, err.Error(), "json, msgpack, yaml")
	})
}

func fixtureDoc(t *testing.T) *strand.Document {
	t.Helper()
	doc := strand.NewDocument()
	promoter := design.Promoter(ns, "pTac", "ttgaca")
	cds := design.CDS(ns, "gfp", "atgcgt")
	cassette, err := design.Region(ns, "cassette", promoter, cds)
	require.NoError(t, err)
	for _, p := range []*strand.Part{promoter, cds, cassette} {
		require.NoError(t, doc.AddPart(p))
	}
	return doc
}

func TestDocument(t *testing.T) {
	doc := fixtureDoc(t)
	cassette, _ := doc.Part(strand.Join(ns, "cassette"))
	cassette.Slots[0].Location = &strand.Range{Start: 1, End: 6}

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, export.Document(&buf, doc, export.FormatYAML))

		out := buf.String()
		assert.Contains(t, out, "id: "+strand.Join(ns, "pTac"))
		assert.Contains(t, out, "sequence: ttgaca")
		assert.Contains(t, out, "kind: composite")
		assert.Contains(t, out, "filler: "+strand.Join(ns, "pTac"))
		assert.Contains(t, out, "kind: meets")
		assert.Contains(t, out, "start: 1")
		assert.Contains(t, out, "end: 6")
	})

	t.Run("resolved_identifiers", func(t *testing.T) {
		// The output names everything in full: identities instead of
		// the short references accepted on the way in, and type IRIs
		// instead of aliases.
		var buf bytes.Buffer
		require.NoError(t, export.Document(&buf, doc, export.FormatYAML))

		out := buf.String()
		assert.Contains(t, out, "subject: "+strand.Join(ns, "cassette")+"/pTac")
		assert.Contains(t, out, "object: "+strand.Join(ns, "cassette")+"/gfp")
		assert.Contains(t, out, "- "+strand.TypeDNA)
		assert.NotContains(t, out, "subject: pTac\n")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, export.Document(&buf, doc, export.FormatJSON))

		var snap struct {
			Parts []struct {
				ID   string `json:"id"`
				Kind string `json:"kind"`
			} `json:"parts"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &snap))
		require.Len(t, snap.Parts, 3)
		// Identity order.
		assert.Equal(t, strand.Join(ns, "cassette"), snap.Parts[0].ID)
		assert.Equal(t, "composite", snap.Parts[0].Kind)
	})

	t.Run("msgpack", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, export.Document(&buf, doc, export.FormatMsgpack))
		assert.NotZero(t, buf.Len())
	})
}

func TestCollections(t *testing.T) {
	doc := fixtureDoc(t)
	other := design.Terminator(ns, "term", "cgct")
	require.NoError(t, doc.AddPart(other))

	col := design.Library(ns, "cassettes", mustPart(t, doc, "cassette"))
	require.NoError(t, doc.AddCollection(col))

	var buf bytes.Buffer
	require.NoError(t, export.Collections(&buf, doc, []*strand.VariantCollection{col}, export.FormatYAML))
	out := buf.String()

	t.Run("self_contained", func(t *testing.T) {
		// The member and its transitive fillers are all present.
		assert.Contains(t, out, "id: "+strand.Join(ns, "cassette"))
		assert.Contains(t, out, "id: "+strand.Join(ns, "pTac"))
		assert.Contains(t, out, "id: "+strand.Join(ns, "gfp"))
		assert.Contains(t, out, "id: "+strand.Join(ns, "cassettes"))
	})

	t.Run("unrelated_parts_excluded", func(t *testing.T) {
		assert.NotContains(t, out, strand.Join(ns, "term"))
	})

	t.Run("dangling_member", func(t *testing.T) {
		bad := &strand.VariantCollection{
			Identity: strand.Join(ns, "bad"),
			Members:  []string{strand.Join(ns, "ghost")},
		}
		err := export.Collections(&bytes.Buffer{}, doc, []*strand.VariantCollection{bad}, export.FormatYAML)
		assert.True(t, strand.IsNotFound(err))
	})
}

func mustPart(t *testing.T, doc *strand.Document, displayID string) *strand.Part {
	t.Helper()
	p, ok := doc.Part(strand.Join(ns, displayID))
	require.True(t, ok)
	return p
}
