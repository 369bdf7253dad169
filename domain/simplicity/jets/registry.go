package jets

import (
	"fmt"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/types"
)

// wordLogs are the word sizes the arithmetic jets come in, as log2 of the
// bit width.
var wordLogs = []int{3, 4, 5, 6}

func bitWidth(log int) int {
	return 1 << uint(log)
}

func init() {
	unit := types.Unit()
	bit := types.Bit()
	w := types.Word
	pair := types.Product

	register("verify", bit, unit)

	for _, log := range append([]int{0}, wordLogs...) {
		n := bitWidth(log)
		word := w(log)
		register(fmt.Sprintf("low_%d", n), unit, word)
		register(fmt.Sprintf("high_%d", n), unit, word)
		register(fmt.Sprintf("complement_%d", n), word, word)
		register(fmt.Sprintf("and_%d", n), pair(word, word), word)
		register(fmt.Sprintf("or_%d", n), pair(word, word), word)
		register(fmt.Sprintf("xor_%d", n), pair(word, word), word)
		register(fmt.Sprintf("eq_%d", n), pair(word, word), bit)
	}
	register("eq_256", pair(w(8), w(8)), bit)

	for _, log := range wordLogs {
		n := bitWidth(log)
		word := w(log)
		register(fmt.Sprintf("one_%d", n), unit, word)
		register(fmt.Sprintf("some_%d", n), word, bit)
		register(fmt.Sprintf("all_%d", n), word, bit)
		register(fmt.Sprintf("add_%d", n), pair(word, word), pair(bit, word))
		register(fmt.Sprintf("full_add_%d", n), pair(bit, pair(word, word)), pair(bit, word))
		register(fmt.Sprintf("subtract_%d", n), pair(word, word), pair(bit, word))
		register(fmt.Sprintf("increment_%d", n), word, pair(bit, word))
		register(fmt.Sprintf("decrement_%d", n), word, pair(bit, word))
		register(fmt.Sprintf("negate_%d", n), word, pair(bit, word))
		register(fmt.Sprintf("le_%d", n), pair(word, word), bit)
		register(fmt.Sprintf("lt_%d", n), pair(word, word), bit)
		register(fmt.Sprintf("min_%d", n), pair(word, word), word)
		register(fmt.Sprintf("max_%d", n), pair(word, word), word)
		if log < 6 {
			register(fmt.Sprintf("multiply_%d", n), pair(word, word), w(log+1))
		}
	}

	register("sha_256_iv", unit, w(8))
	register("sha_256_block", pair(w(8), w(9)), w(8))
	register("bip_0340_verify", pair(pair(w(8), w(8)), w(9)), unit)
	register("check_sig_verify", pair(pair(w(8), w(9)), w(9)), unit)

	registerElements()
}

// registerElements adds the transaction introspection jets. Indexed jets
// return none past the end of the input or output list.
func registerElements() {
	unit := types.Unit()
	w := types.Word
	option := func(t *types.Type) *types.Type { return types.Sum(unit, t) }

	for _, name := range []string{"version", "lock_time", "num_inputs", "num_outputs",
		"current_index", "current_sequence"} {
		register(name, unit, w(5))
	}
	for _, name := range []string{"sig_all_hash", "tx_hash", "tap_env_hash", "inputs_hash",
		"outputs_hash", "issuances_hash", "input_utxos_hash", "genesis_block_hash",
		"script_cmr", "internal_key", "current_script_hash", "current_script_sig_hash"} {
		register(name, unit, w(8))
	}
	register("current_annex_hash", unit, option(w(8)))
	register("input_sequence", w(5), option(w(5)))
	register("input_script_hash", w(5), option(w(8)))
	register("output_script_hash", w(5), option(w(8)))
	register("output_nonce_hash", w(5), option(w(8)))
	register("output_range_proof_hash", w(5), option(w(8)))
}
