package simulate

// SeedStream supplies one RNG seed per playout. Seeds must be a pure
// function of the game index so concurrent playouts stay uncorrelated and
// repeated runs reproduce identical traces.
type SeedStream func(game int) int64

// SplitMixStream derives independent per-game seeds from a base seed with
// a splitmix64 finalizer, so adjacent game indices land far apart in the
// generator's state space.
func SplitMixStream(base int64) SeedStream {
	return func(game int) int64 {
		x := uint64(base) + uint64(game)*0x9e3779b97f4a7c15 + 0x9e3779b97f4a7c15
		x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
		x = (x ^ (x >> 27)) * 0x94d049bb133111eb
		x ^= x >> 31
		return int64(x)
	}
}
