package game

import "golang.org/x/exp/rand"

// Random is a seeded RandomGenerator. It is not safe for concurrent use;
// every simulation owns its own instance.
type Random struct {
	rand *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rand: rand.New(rand.NewSource(seed))}
}

func (r *Random) Get(exclusiveMax int) int {
	if exclusiveMax <= 0 {
		panic("random bound must be positive")
	}
	return r.rand.Intn(exclusiveMax)
}

func (r *Random) Float64() float64 {
	return r.rand.Float64()
}

func (r *Random) Uint64() uint64 {
	return r.rand.Uint64()
}

func (r *Random) Shuffle(n int, swap func(i, j int)) {
	r.rand.Shuffle(n, swap)
}
