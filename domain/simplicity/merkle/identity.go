package merkle

import (
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/program"
	"github.com/halsimplicity/halsimplicity/infrastructure/logger"
)

// IMRs returns the identity Merkle root of every node of a redeem program.
// It follows the CMR except that disconnect covers both branches and
// witness nodes commit to their value and target type.
func IMRs(rp *program.RedeemProgram) []hashes.Hash {
	roots := make([]hashes.Hash, len(rp.Nodes))
	for i := range rp.Nodes {
		node := &rp.Nodes[i]
		iv := commitmentIVs[node.Kind]

		switch node.Kind {
		case program.KindComp, program.KindCase, program.KindPair, program.KindDisconnect:
			roots[i] = hashes.Compress(iv, roots[node.Left], roots[node.Right])
		case program.KindInjl, program.KindInjr, program.KindTake, program.KindDrop:
			roots[i] = hashes.Compress(iv, hashes.Zero, roots[node.Left])
		case program.KindIden, program.KindUnit:
			roots[i] = iv
		case program.KindWitness:
			roots[i] = hashes.Compress(iv, rp.Values[i].Hash(), rp.Arrows[i].Target.TMR())
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

// IHR returns the identity hash root of a redeem program: the root IMR
// bound to the source and target types of the program.
func IHR(rp *program.RedeemProgram) hashes.Hash {
	onEnd := logger.LogAndMeasureExecutionTime(log, "merkle.IHR")
	defer onEnd()

	imr := IMRs(rp)[rp.Root()]
	arrow := rp.Arrow()
	bound := hashes.Compress(identityIV, hashes.Zero, imr)
	return hashes.Compress(bound, arrow.Source.TMR(), arrow.Target.TMR())
}
