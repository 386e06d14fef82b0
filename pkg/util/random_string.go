package util

import (
	"math/rand"
	"sync"
)

// ambiguous glyphs (0, O, l, I) left out so ids stay readable in logs
var alphabet = []rune("123456789abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ")

// ShortIDGenerator produces short random identifiers used to correlate log
// lines belonging to one connection attempt. Safe for concurrent use.
type ShortIDGenerator struct {
	mut sync.Mutex
	gen *rand.Rand
}

func NewShortIDGenerator(seed int64) *ShortIDGenerator {
	return &ShortIDGenerator{
		gen: rand.New(rand.NewSource(seed)),
	}
}

func (g *ShortIDGenerator) Next(n int) string {
	g.mut.Lock()
	defer g.mut.Unlock()

	b := make([]rune, n)
	for i := range b {
		b[i] = alphabet[g.gen.Intn(len(alphabet))]
	}
	return string(b)
}
