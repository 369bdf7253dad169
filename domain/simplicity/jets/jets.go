package jets

import (
	"fmt"
	"sort"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/types"
)

// SetName names the jet set programs are decoded against: the core jets
// plus the Elements transaction introspection jets.
const SetName = "elements"

var jetIV = hashes.TaggedIV("Simplicity\x1fCommitment\x1fjet")

// Jet is a named primitive with a fixed arrow. Its position in the registry
// is its wire index.
type Jet struct {
	Name  string
	Index uint64
	Arrow *types.Arrow
	cmr   hashes.Hash
}

// CMR returns the commitment Merkle root of the jet.
func (j *Jet) CMR() hashes.Hash {
	return j.cmr
}

func (j *Jet) String() string {
	return j.Name
}

var (
	registry []*Jet
	byName   = make(map[string]*Jet)
)

func register(name string, source, target *types.Type) {
	if _, exists := byName[name]; exists {
		panic(fmt.Sprintf("jets: %s registered twice", name))
	}
	jet := &Jet{
		Name:  name,
		Index: uint64(len(registry) + 1),
		Arrow: &types.Arrow{Source: source, Target: target},
		cmr:   hashes.Compress(jetIV, hashes.Zero, hashes.Sum([]byte(name))),
	}
	registry = append(registry, jet)
	byName[name] = jet
}

// ByIndex returns the jet with the given wire index.
func ByIndex(index uint64) (*Jet, error) {
	if index == 0 || index > uint64(len(registry)) {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrMalformedProgram, "unknown jet index %d", index)
	}
	return registry[index-1], nil
}

// ByName returns the jet with the given name.
func ByName(name string) (*Jet, error) {
	jet, ok := byName[name]
	if !ok {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrMalformedProgram, "unknown jet %q", name)
	}
	return jet, nil
}

// All returns every registered jet in index order.
func All() []*Jet {
	out := make([]*Jet, len(registry))
	copy(out, registry)
	return out
}

// Names returns the registered jet names sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, jet := range registry {
		names = append(names, jet.Name)
	}
	sort.Strings(names)
	return names
}

// MaxIndex is the largest valid jet index.
func MaxIndex() uint64 {
	return uint64(len(registry))
}
