package merkle

import (
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/program"
	"github.com/halsimplicity/halsimplicity/infrastructure/logger"
)

// AMR returns the annotated Merkle root of a redeem program. On top of the
// CMR structure it commits to the types at every node and to the witness
// values.
func AMR(rp *program.RedeemProgram) hashes.Hash {
	onEnd := logger.LogAndMeasureExecutionTime(log, "merkle.AMR")
	defer onEnd()

	cmrs := CMRs(rp.Program)
	roots := make([]hashes.Hash, len(rp.Nodes))
	for i := range rp.Nodes {
		node := &rp.Nodes[i]
		arrow := rp.Arrows[i]
		iv := annotatedIVs[node.Kind]

		switch node.Kind {
		case program.KindIden, program.KindUnit:
			roots[i] = hashes.Compress(iv, hashes.Zero, arrow.Source.TMR())

		case program.KindInjl, program.KindInjr:
			// A → B + C
			h := hashes.Compress(iv, arrow.Source.TMR(), arrow.Target.Left.TMR())
			roots[i] = hashes.Compress(h, arrow.Target.Right.TMR(), roots[node.Left])

		case program.KindTake, program.KindDrop:
			// A × B → C
			h := hashes.Compress(iv, arrow.Source.Left.TMR(), arrow.Source.Right.TMR())
			roots[i] = hashes.Compress(h, arrow.Target.TMR(), roots[node.Left])

		case program.KindComp, program.KindPair:
			// comp: A → B, B → C. pair: A → B, A → C.
			b, c := rp.Arrows[node.Left].Target, arrow.Target
			if node.Kind == program.KindPair {
				c = rp.Arrows[node.Right].Target
			}
			h := hashes.Compress(iv, hashes.Zero, arrow.Source.TMR())
			h = hashes.Compress(h, b.TMR(), c.TMR())
			roots[i] = hashes.Compress(h, roots[node.Left], roots[node.Right])

		case program.KindCase:
			// (A + B) × C → D
			switch {
			case rp.Nodes[node.Right].Kind == program.KindHidden:
				iv = annotatedAssertlIV
			case rp.Nodes[node.Left].Kind == program.KindHidden:
				iv = annotatedAssertrIV
			}
			sum := arrow.Source.Left
			h := hashes.Compress(iv, sum.Left.TMR(), sum.Right.TMR())
			h = hashes.Compress(h, arrow.Source.Right.TMR(), arrow.Target.TMR())
			roots[i] = hashes.Compress(h, roots[node.Left], roots[node.Right])

		case program.KindDisconnect:
			// A → B × D with the right branch C → D
			right := rp.Arrows[node.Right]
			h := hashes.Compress(iv, arrow.Source.TMR(), arrow.Target.Left.TMR())
			h = hashes.Compress(h, right.Source.TMR(), right.Target.TMR())
			roots[i] = hashes.Compress(h, roots[node.Left], roots[node.Right])

		case program.KindWitness:
			h := hashes.Compress(iv, hashes.Zero, arrow.Source.TMR())
			roots[i] = hashes.Compress(h, arrow.Target.TMR(), rp.Values[i].Hash())

		case program.KindFail:
			roots[i] = failRoot(iv, node.Entropy)

		case program.KindHidden, program.KindJet, program.KindWord:
			// a hidden branch of an assertion contributes its CMR
			roots[i] = cmrs[i]
		}
	}
	return roots[rp.Root()]
}
