package jazz

import "github.com/silbinarywolf/toy-jazz/internal/rng"

// DefaultSeed is the seed of the global random generator unless the
// configuration sets one, or Seed or SeedNow is called.
const DefaultSeed = rng.DefaultSeed

// Seed sets the global random seed. All later draws, from any goroutine,
// follow the new sequence. The configured seed is applied before the first
// draw or window, so Seed always overrides it.
func Seed(seed int64) {
	setup()
	rng.Seed(seed)
}

// SeedNow seeds the global generator from the clock and returns the seed, so
// an interesting run can be replayed with Seed.
func SeedNow() int64 {
	setup()
	return rng.SeedNow()
}

// RandomInt returns a random int, any value is possible.
func RandomInt() int {
	setup()
	return rng.Int()
}

// RandomIntn returns a value in [0, upto), or 0 if upto is less than 1.
// RandomIntn(3) returns one of zero, one or two.
func RandomIntn(upto int) int {
	setup()
	return rng.Intn(upto)
}

// RandomIntRange returns a value in [from, upto), or from if upto <= from.
func RandomIntRange(from, upto int) int {
	setup()
	return rng.IntRange(from, upto)
}

// RandomFloat64 returns a value in [0, 1).
func RandomFloat64() float64 {
	setup()
	return rng.Float64()
}

// Shuffle permutes n elements in place using the global generator. swap must
// not draw random values itself.
func Shuffle(n int, swap func(i, j int)) {
	setup()
	rng.Shuffle(n, swap)
}

// ShuffleSlice shuffles list in place using the global generator.
func ShuffleSlice[T any](list []T) {
	setup()
	rng.Slice(list)
}
