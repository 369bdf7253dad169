package bitio

import (
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
)

// Tag is the prefix code that starts every node of an encoded program.
type Tag uint8

// Combinator tags. The comment shows each code.
const (
	TagComp       Tag = iota // 00000
	TagCase                  // 00001
	TagPair                  // 00010
	TagDisconnect            // 00011
	TagInjl                  // 00100
	TagInjr                  // 00101
	TagTake                  // 00110
	TagDrop                  // 00111
	TagIden                  // 01000
	TagUnit                  // 01001
	TagFail                  // 01010
	TagHidden                // 0110
	TagWitness               // 0111
	TagWord                  // 10
	TagJet                   // 11
)

// tagStop is the reserved 01011 code.
const tagStop = 0x0b

var tagNames = [...]string{"comp", "case", "pair", "disconnect", "injl", "injr", "take", "drop",
	"iden", "unit", "fail", "hidden", "witness", "word", "jet"}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// ReadCombinatorTag reads one node tag.
func (r *Reader) ReadCombinatorTag() (Tag, error) {
	first, err := r.ReadBits(2)
	if err != nil {
		return 0, err
	}
	switch first {
	case 0x2:
		return TagWord, nil
	case 0x3:
		return TagJet, nil
	case 0x0:
		low, err := r.ReadBits(3)
		if err != nil {
			return 0, err
		}
		return TagComp + Tag(low), nil
	}

	// 01...
	third, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	if third {
		fourth, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if fourth {
			return TagWitness, nil
		}
		return TagHidden, nil
	}
	low, err := r.ReadBits(2)
	if err != nil {
		return 0, err
	}
	if 0x8|low == tagStop {
		return 0, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidTag, "stop code at bit %d", r.Position()-5)
	}
	return TagIden + Tag(low), nil
}

// WriteCombinatorTag writes the code of tag.
func (w *Writer) WriteCombinatorTag(tag Tag) {
	switch {
	case tag <= TagFail:
		w.WriteBits(uint64(tag), 5)
	case tag == TagHidden:
		w.WriteBits(0x6, 4)
	case tag == TagWitness:
		w.WriteBits(0x7, 4)
	case tag == TagWord:
		w.WriteBits(0x2, 2)
	case tag == TagJet:
		w.WriteBits(0x3, 2)
	default:
		panic("bitio: unknown combinator tag")
	}
}
