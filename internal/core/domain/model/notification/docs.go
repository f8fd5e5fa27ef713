// Package notification contains the Notification entity.
//
// A notification is an in-app message to a single user about a lifecycle
// event: order placed, accepted, cancelled, delivered, courier rated, or a
// deposit decision. Every notification carries a typed payload matching its
// type, so consumers never parse free-form metadata.
package notification
