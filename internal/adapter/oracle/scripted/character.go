package scripted

import (
	"context"
	"fmt"
	"math/rand/v2"

	"mindverse/internal/domain/mind"
)

var givenNames = []string{
	"Aster", "Bramble", "Cinder", "Dault", "Ember", "Fenna", "Gorse",
	"Haze", "Ilka", "Juniper", "Kestrel", "Lark", "Moss", "Nettle",
	"Onda", "Pyra", "Quill", "Rime", "Sorrel", "Tansy", "Umber",
	"Vesper", "Wren", "Yarrow", "Zephyrine",
}

var speciesNames = []string{
	"wisp", "ember", "sylph", "shade", "golem", "naiad", "lumen", "moth",
}

var traitNames = []string{
	"curious", "wary", "generous", "scheming", "stoic", "flighty",
	"devout", "jealous", "patient", "reckless",
}

var backstoryForms = []string{
	"%s woke mid-tick with a full purse and no memory of earning it.",
	"%s once watched a bondmate vanish and has counted sparks aloud ever since.",
	"%s claims to have heard the benefactor laugh. Nobody believes it.",
	"%s was minted during a raid and treats every quiet tick as borrowed.",
	"%s keeps a ledger of favors owed and forgives exactly none of them.",
}

// Generate invents the next persona in a fixed sequence. The call index
// drives the whole profile, so a run that spawns the same number of agents
// names them the same way every time.
func (o *Oracle) Generate(_ context.Context) (mind.CharacterProfile, error) {
	n := o.spawned.Add(1) - 1

	name := givenNames[n%int64(len(givenNames))]
	if gen := n / int64(len(givenNames)); gen > 0 {
		name = fmt.Sprintf("%s %d", name, gen+1)
	}

	rng := rand.New(rand.NewPCG(uint64(o.opts.Seed), uint64(n)))
	return mind.CharacterProfile{
		Name:        name,
		Species:     speciesNames[rng.IntN(len(speciesNames))],
		Personality: pickTraits(rng, 2),
		Backstory:   fmt.Sprintf(backstoryForms[rng.IntN(len(backstoryForms))], name),
	}, nil
}

func pickTraits(rng *rand.Rand, n int) []string {
	if n > len(traitNames) {
		n = len(traitNames)
	}
	perm := rng.Perm(len(traitNames))
	out := make([]string, 0, n)
	for _, i := range perm[:n] {
		out = append(out, traitNames[i])
	}
	return out
}
