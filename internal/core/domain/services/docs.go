// Package services provides domain services that orchestrate business
// operations across multiple domain entities. It implements workflows that
// don't naturally belong to a single aggregate root.
//
// The package includes:
//   - NotificationFanout: a domain service translating lifecycle events into
//     notifications for owners, couriers, and admins
package services
