// Package graph holds the structural algorithms over a part's slot
// graph: reconstructing the canonical left-to-right slot order from
// pairwise "meets" relations, and computing the transitive closure of
// composite membership.
//
// # Slot ordering
//
// The meets relations of a well-formed composite part form a single
// simple path over its slots. Order recovers that path by repeatedly
// selecting the unique slot that is the subject of a remaining meets
// edge but the object of none. Any step where that "unblocked" set
// does not have exactly one member is a structural defect (cycle,
// disconnected fragment, or branch) and ordering fails with a
// strand.OrderError naming the slots that could not be placed. The
// result is unique by construction; no tie-breaking ever occurs in
// the well-formed case.
//
// # Containment closure
//
// ContainedParts walks slot fillers transitively, returning every part
// reachable from a set of roots. Export and the CLI use it to carry a
// collection's dependencies along with the collection itself.
package graph
