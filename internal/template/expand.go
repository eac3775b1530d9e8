package template

import (
	"math/rand/v2"

	"github.com/alexanderramin/devsynth/internal/domain"
)

// TechPooler resolves a category to its technology pool.
type TechPooler interface {
	TechPool(c domain.Category) []string
}

// Expansion is a concrete instruction drawn from a template.
type Expansion struct {
	Instruction string
	// Concept is the value drawn for the template's concept slot, if any.
	Concept string
}

// Expand resolves every placeholder of t with values drawn uniformly from rng.
// Slots are drawn in name order, then {tech}. Paired templates draw a single
// tuple for both placeholders.
func Expand(t Template, pools TechPooler, rng *rand.Rand) Expansion {
	values := make(map[string]string, len(t.slotOrder)+2)

	switch t.Variant {
	case VariantPaired:
		p := t.Pairs[rng.IntN(len(t.Pairs))]
		values[t.PairSlots[0]] = p.A
		values[t.PairSlots[1]] = p.B
	default:
		for _, name := range t.slotOrder {
			values[name] = pick(rng, t.Slots[name])
		}
	}

	if t.usesTech {
		values[TechSlot] = pick(rng, pools.TechPool(t.Category))
	}

	exp := Expansion{Instruction: render(t.segs, values)}
	if t.ConceptSlot != "" {
		exp.Concept = values[t.ConceptSlot]
	}
	return exp
}

// Expand draws an instruction from t using the registry's technology pools.
func (r *Registry) Expand(t Template, rng *rand.Rand) Expansion {
	return Expand(t, r, rng)
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.IntN(len(pool))]
}
