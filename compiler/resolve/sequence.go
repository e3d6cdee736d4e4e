package resolve

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/opencontainers/go-digest"

	"github.com/syssam/strand"
	"github.com/syssam/strand/graph"
)

// Outcome describes one sequence computed during a run.
type Outcome struct {
	// PartID is the composite whose sequence was derived.
	PartID string
	// SequenceID is the identity of the new sequence.
	SequenceID string
	// Length is the number of elements in the derived sequence.
	Length int
	// Digest is a content digest of the derived elements, so repeated
	// runs over the same inputs can be compared without the content.
	Digest digest.Digest
}

// StuckPart names a part that never became ready, with the reason.
type StuckPart struct {
	PartID string
	Reason string
}

// Report is the structured diagnostic outcome of a sequence run.
// Unresolved residue is data here, never an error: a batch may contain
// intentionally incomplete designs.
type Report struct {
	// RunID distinguishes reports from repeated runs over one document.
	RunID uuid.UUID
	// DNAParts is the number of DNA parts found in the document.
	DNAParts int
	// Pending is how many of them lacked a sequence when the run began.
	Pending int
	// Rounds is the number of fixpoint rounds performed.
	Rounds int
	// Computed describes each newly derived sequence.
	Computed []Outcome
	// Stuck lists the parts that could not be resolved and why.
	Stuck []StuckPart
}

// Sequences attempts to derive the missing sequences of every
// composite DNA part in the document, iterating to a fixpoint as
// fillers become resolved. It returns the newly derived sequences and
// a report; it never fails — unresolvable parts are reported as stuck.
func (rv *Resolver) Sequences(doc *strand.Document) ([]*strand.Sequence, *Report) {
	report := &Report{RunID: uuid.New()}

	var records []*Record
	for _, p := range doc.Parts() {
		if !p.HasType(strand.TypeDNA) {
			continue
		}
		report.DNAParts++
		if resolvedDNA(p) {
			continue
		}
		rec := &Record{Part: p}
		for _, s := range p.Slots {
			rec.Prereqs = append(rec.Prereqs, s.FillerID)
		}
		records = append(records, rec)
	}
	report.Pending = len(records)
	rv.logger.Info("sequence resolution started",
		"run", report.RunID, "dna_parts", report.DNAParts, "pending", report.Pending)

	var computed []*strand.Sequence
	res := rv.All(records,
		func(r *Record) bool { return readyToResolve(doc, r.Part) },
		func(r *Record) bool {
			seq, err := computeSequence(doc, r.Part)
			if err != nil {
				r.Reason = err.Error()
				rv.logger.Warn("sequence computation failed", "part", r.Part.Identity, "error", err)
				return false
			}
			computed = append(computed, seq)
			report.Computed = append(report.Computed, Outcome{
				PartID:     r.Part.Identity,
				SequenceID: seq.Identity,
				Length:     seq.Len(),
				Digest:     digest.FromString(seq.Elements),
			})
			rv.logger.Debug("computed sequence", "part", r.Part.Identity, "length", seq.Len())
			return true
		})

	report.Rounds = res.Rounds
	for _, r := range res.Stuck {
		report.Stuck = append(report.Stuck, StuckPart{PartID: r.Part.Identity, Reason: diagnose(doc, r.Part)})
	}
	for _, r := range res.Failed {
		report.Stuck = append(report.Stuck, StuckPart{PartID: r.Part.Identity, Reason: r.Reason})
	}
	rv.logger.Info("sequence resolution finished",
		"run", report.RunID, "computed", len(report.Computed), "stuck", len(report.Stuck), "rounds", report.Rounds)
	return computed, report
}

// resolvedDNA reports whether the part is a DNA part carrying a sequence.
func resolvedDNA(p *strand.Part) bool {
	return p.HasType(strand.TypeDNA) && p.Sequence != nil
}

// readyToResolve reports whether every filler of the part is a
// resolved DNA part and the part's slots admit a canonical order.
func readyToResolve(doc *strand.Document, p *strand.Part) bool {
	if len(p.Slots) == 0 {
		// Nothing to derive from: a sequence-less part with no slots
		// stays pending until something else supplies its content.
		return false
	}
	for _, s := range p.Slots {
		if s.FillerID == "" {
			return false
		}
		filler, ok := doc.Part(s.FillerID)
		if !ok || !resolvedDNA(filler) {
			return false
		}
	}
	_, err := graph.Order(p)
	return err == nil
}

// computeSequence derives the part's sequence by concatenating its
// fillers' elements in canonical slot order, writing each slot's span
// into its Location.
//
// TODO: apply reverse-complement to fillers of slots with
// OrientationReverseComplement instead of concatenating as-is.
func computeSequence(doc *strand.Document, p *strand.Part) (*strand.Sequence, error) {
	ordered, err := graph.Order(p)
	if err != nil {
		return nil, err
	}
	seq := &strand.Sequence{
		Identity: strand.Join(strand.Namespace(p.Identity), p.DisplayID+"_sequence"),
		Encoding: strand.IUPACEncoding,
	}
	for _, s := range ordered {
		filler, ok := doc.Part(s.FillerID)
		if !ok {
			return nil, strand.NewNotFoundError(s.FillerID, p.Identity)
		}
		sub := filler.Sequence
		if sub == nil {
			return nil, fmt.Errorf("strand: filler %s of %s has no sequence", filler.Identity, p.Identity)
		}
		if sub.Encoding != seq.Encoding {
			return nil, fmt.Errorf("strand: filler %s of %s uses encoding %s, want %s",
				filler.Identity, p.Identity, sub.Encoding, seq.Encoding)
		}
		s.Location = &strand.Range{Start: len(seq.Elements) + 1, End: len(seq.Elements) + sub.Len()}
		seq.Elements += sub.Elements
	}
	p.Sequence = seq
	return seq, nil
}

// diagnose explains why a stuck part never became ready.
func diagnose(doc *strand.Document, p *strand.Part) string {
	if len(p.Slots) == 0 {
		return "no slots and no sequence"
	}
	for _, s := range p.Slots {
		if s.FillerID == "" {
			return fmt.Sprintf("slot %s has no filler", s.Identity)
		}
		filler, ok := doc.Part(s.FillerID)
		if !ok {
			return fmt.Sprintf("filler %s not in document", s.FillerID)
		}
		if !filler.HasType(strand.TypeDNA) {
			return fmt.Sprintf("filler %s is not a DNA part", filler.Identity)
		}
		if filler.Sequence == nil {
			return fmt.Sprintf("filler %s has no sequence", filler.Identity)
		}
	}
	if _, err := graph.Order(p); err != nil {
		return err.Error()
	}
	return "unresolved"
}
