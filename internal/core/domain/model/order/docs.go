// Package order implements the order aggregate: the central entity of the
// marketplace moving through pending, in-transit, and the terminal delivered
// and cancelled states. The aggregate owns the lifecycle rules; persistence
// and notification side effects live in the application layer.
package order
