package program

import (
	"github.com/halsimplicity/halsimplicity/domain/simplicity/bitio"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
	"github.com/halsimplicity/halsimplicity/infrastructure/logger"
	"github.com/pkg/errors"
)

// RedeemProgram is a program whose witness nodes carry values.
type RedeemProgram struct {
	*Program
	// Values is aligned with Nodes and is nil except at witness nodes.
	Values []*Value
}

// Merge attaches the values in blob to the witness nodes of p, in node
// order. Each witness consumes the compact encoding of a value of its
// target type. Only the length is checked: any bit pattern of the right
// size is accepted.
func Merge(p *Program, blob []byte) (*RedeemProgram, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "program.Merge")
	defer onEnd()

	r := bitio.NewReader(blob)
	values := make([]*Value, len(p.Nodes))
	for _, i := range p.WitnessNodes() {
		value, err := readValue(r, p.Arrows[i].Target)
		if err != nil {
			if errors.Is(err, simplicityerrors.ErrTruncatedInput) {
				return nil, simplicityerrors.NewErrWitnessLengthMismatch(r.Position()+1, r.Len(), false)
			}
			return nil, err
		}
		values[i] = value
	}

	consumed := r.Position()
	if err := r.Close(); err != nil {
		return nil, simplicityerrors.NewErrWitnessLengthMismatch(consumed, r.Len(), true)
	}

	redeem := &RedeemProgram{Program: p, Values: values}
	log.Debugf("Merged %d witness bits into %d witness nodes", consumed, len(p.WitnessNodes()))
	return redeem, nil
}

// EncodeWitness serializes the witness values in node order, zero padded to
// a whole byte.
func (rp *RedeemProgram) EncodeWitness() []byte {
	w := bitio.NewWriter()
	for _, value := range rp.Values {
		if value == nil {
			continue
		}
		for j := 0; j < value.Len(); j++ {
			w.WriteBit(value.Bit(j))
		}
	}
	return w.Bytes()
}
