package tile

import (
	"github.com/burgerindividual/hypercull/bitset"
	"github.com/burgerindividual/hypercull/direction"
)

// SetupCenterTile seeds the outgoing section sets of the tile containing
// the camera: the camera's own section (sectionIndex) is visible, so each
// face's outgoing set starts with that section wherever it connects that
// face to any other face, rather than waiting for an incoming edge from a
// neighbor.
func (t *Tile) SetupCenterTile(sectionIndex uint16) {
	outgoingDirs := direction.All
	for outgoingDirs != 0 {
		outgoingDir := direction.TakeOne(&outgoingDirs)
		outIdx := direction.ToIndex(outgoingDir)

		incomingDirs := direction.AllExcept(outgoingDir)
		for incomingDirs != 0 {
			incomingDir := direction.TakeOne(&incomingDirs)

			connIdx := direction.ConnectionIndex(outgoingDir, incomingDir)
			connected := t.ConnectionSectionSets[connIdx].GetBit(sectionIndex)

			t.OutgoingDirSectionSets[outIdx].OrBit(sectionIndex, connected)
		}
	}
}

var shiftFuncs = [direction.Count]func(bitset.Section512) bitset.Section512{
	bitset.ShiftNegX,
	bitset.ShiftNegY,
	bitset.ShiftNegZ,
	bitset.ShiftPosX,
	bitset.ShiftPosY,
	bitset.ShiftPosZ,
}

// Traverse flood-fills visibility outward from the sections already known
// visible (startSections / incomingDirSectionSets, seeded by the caller)
// through this tile's connectivity, iterating to a fixed point since a
// section let in on one face can open up a path out another. Only the
// directions set in traversalDirs are used as outgoing directions, and only
// their opposites as incoming ones; the cull driver passes every direction
// except those pointing back toward the already-processed neighbor tiles.
func (t *Tile) Traverse(
	traversalDirs uint8,
	startSections bitset.Section512,
	incomingDirSectionSets *[direction.Count]bitset.Section512,
	outwardDirectionMasks *[direction.Count]bitset.Section512,
	angleVisibilityMasks *[3]bitset.Section512,
	visibleSections *bitset.Section512,
) {
	mainVisibilityMask := *visibleSections

	for {
		incomingChanged := false

		for _, d := range [direction.Count]uint8{
			direction.NegX, direction.NegY, direction.NegZ,
			direction.PosX, direction.PosY, direction.PosZ,
		} {
			changed := t.tryTraverseDir(traversalDirs, d, incomingDirSectionSets, outwardDirectionMasks, angleVisibilityMasks, mainVisibilityMask)
			incomingChanged = incomingChanged || changed
		}

		if !incomingChanged {
			break
		}
	}

	folded := startSections
	for _, s := range incomingDirSectionSets {
		folded = bitset.Or(folded, s)
	}
	*visibleSections = folded
}

func (t *Tile) tryTraverseDir(
	traversalDirs, outgoingDir uint8,
	incomingDirSectionSets *[direction.Count]bitset.Section512,
	outwardDirectionMasks *[direction.Count]bitset.Section512,
	angleVisibilityMasks *[3]bitset.Section512,
	mainVisibilityMask bitset.Section512,
) bool {
	if traversalDirs&outgoingDir == 0 {
		return false
	}

	dirIndex := direction.ToIndex(outgoingDir)
	axisIndex := direction.IndexToAxis(dirIndex)
	oppositeIndex := direction.ToIndex(direction.Opposite(outgoingDir))

	t.findOutgoingConnections(traversalDirs, outgoingDir, incomingDirSectionSets, outwardDirectionMasks[dirIndex], angleVisibilityMasks[axisIndex])

	outgoingSections := t.OutgoingDirSectionSets[dirIndex]
	shifted := shiftFuncs[dirIndex](outgoingSections)
	shiftedMasked := bitset.And(shifted, mainVisibilityMask)

	previous := incomingDirSectionSets[oppositeIndex]
	incomingDirSectionSets[oppositeIndex] = bitset.Or(previous, shiftedMasked)

	assertTraversalMonotonic(previous, incomingDirSectionSets[oppositeIndex], int(oppositeIndex))

	return incomingDirSectionSets[oppositeIndex] != previous
}

func (t *Tile) findOutgoingConnections(
	traversalDirs, outgoingDir uint8,
	incomingDirSectionSets *[direction.Count]bitset.Section512,
	outwardDirectionMask bitset.Section512,
	angleVisibilityMask bitset.Section512,
) {
	outIdx := direction.ToIndex(outgoingDir)
	sectionsOutgoing := &t.OutgoingDirSectionSets[outIdx]

	opposite := direction.Opposite(outgoingDir)
	incomingDirs := direction.Opposite(traversalDirs) &^ outgoingDir

	for incomingDirs != 0 {
		incomingDir := direction.TakeOne(&incomingDirs)

		connectionSections := t.ConnectionSectionSets[direction.ConnectionIndex(outgoingDir, incomingDir)]
		if incomingDir == opposite {
			connectionSections = bitset.And(connectionSections, angleVisibilityMask)
		}

		incoming := incomingDirSectionSets[direction.ToIndex(incomingDir)]
		sectionsOutgoing.OrInto(bitset.And(incoming, connectionSections))
	}

	if direction.Contains(traversalDirs, outgoingDir|opposite) {
		sectionsOutgoing.AndInto(outwardDirectionMask)
	}
}
