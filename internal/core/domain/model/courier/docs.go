// Package courier implements the courier profile aggregate: the 1:1 extension
// of a courier-role user carrying vehicle metadata, the incrementally
// aggregated reputation rating, and the courier's last reported position.
package courier
