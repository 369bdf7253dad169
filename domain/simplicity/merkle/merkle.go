package merkle

import (
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/program"
)

type ivTable map[program.Kind]hashes.Hash

func newIVTable(prefix string) ivTable {
	kinds := []program.Kind{
		program.KindComp, program.KindCase, program.KindPair, program.KindDisconnect,
		program.KindInjl, program.KindInjr, program.KindTake, program.KindDrop,
		program.KindIden, program.KindUnit, program.KindFail, program.KindWitness,
		program.KindWord, program.KindJet,
	}
	table := make(ivTable, len(kinds))
	for _, kind := range kinds {
		table[kind] = hashes.TaggedIV(prefix + kind.String())
	}
	return table
}

var (
	commitmentIVs = newIVTable("Simplicity\x1fCommitment\x1f")
	annotatedIVs  = newIVTable("Simplicity\x1fAnnotated\x1f")
	identityIV    = hashes.TaggedIV("Simplicity\x1fIdentity")

	// A case with a hidden branch is annotated as an assertion.
	annotatedAssertlIV = hashes.TaggedIV("Simplicity\x1fAnnotated\x1fassertl")
	annotatedAssertrIV = hashes.TaggedIV("Simplicity\x1fAnnotated\x1fassertr")
)

func failRoot(iv hashes.Hash, entropy [64]byte) hashes.Hash {
	return hashes.CompressBlock(iv, entropy)
}

// CMR returns the commitment Merkle root of p. It depends only on the
// shape of the program: types and witness values are ignored, and a
// hidden node stands for the branch it replaced.
func CMR(p *program.Program) hashes.Hash {
	roots := CMRs(p)
	return roots[p.Root()]
}

// CMRs returns the commitment Merkle root of every node.
func CMRs(p *program.Program) []hashes.Hash {
	roots := make([]hashes.Hash, len(p.Nodes))
	for i := range p.Nodes {
		node := &p.Nodes[i]
		iv := commitmentIVs[node.Kind]
		switch node.Kind {
		case program.KindComp, program.KindCase, program.KindPair:
			roots[i] = hashes.Compress(iv, roots[node.Left], roots[node.Right])
		case program.KindInjl, program.KindInjr, program.KindTake, program.KindDrop,
			program.KindDisconnect:
			// disconnect commits to its left branch only
			roots[i] = hashes.Compress(iv, hashes.Zero, roots[node.Left])
		case program.KindIden, program.KindUnit, program.KindWitness:
			roots[i] = iv
		case program.KindFail:
			roots[i] = failRoot(iv, node.Entropy)
		case program.KindHidden:
			roots[i] = node.Hidden
		case program.KindJet:
			roots[i] = node.Jet.CMR()
		case program.KindWord:
			roots[i] = hashes.Compress(iv, hashes.Zero, node.Word.Hash())
		}
	}
	return roots
}
