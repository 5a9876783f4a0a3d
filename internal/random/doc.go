// Package random supplies bounded random values for the simulation.
//
// Every synthetic quantity the simulator shows (scores, latencies, hashes,
// node configurations, pacing delays) is drawn through a Provider. A Provider
// wraps a single *rand.Rand so that a session can be replayed exactly by
// constructing it with NewSeeded; the default constructor is unseeded and
// differs between runs.
//
// Provider is not safe for concurrent use. The simulator is single-threaded.
package random
