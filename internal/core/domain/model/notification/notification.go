package notification

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Domain errors for notification operations.
var (
	// ErrNotificationIsNotConstructed is returned when a Notification instance
	// was not created through a factory method.
	ErrNotificationIsNotConstructed = errors.New(
		"Notification must be created via NewNotification constructor")
	// ErrTitleIsRequired is returned when the title is empty.
	ErrTitleIsRequired = errs.NewValueIsRequiredError("title")
	// ErrMessageIsRequired is returned when the message is empty.
	ErrMessageIsRequired = errs.NewValueIsRequiredError("message")
)

// Notification is an in-app message delivered to a single user about a
// lifecycle event.
//
// Notification follows these invariants:
//   - Must have a valid unique identifier and a recipient
//   - Title and message are non-empty
//   - The payload shape matches the notification type
//   - A notification starts unread; marking read is idempotent
type Notification struct {
	id        kernel.UUID
	userID    kernel.UUID
	notType   Type
	title     string
	message   string
	payload   Payload
	read      bool
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewNotification creates an unread notification for userID.
// The payload must match the type's shape.
func NewNotification(
	id kernel.UUID,
	userID kernel.UUID,
	notType Type,
	title string,
	message string,
	payload Payload,
	createdAt time.Time,
) (*Notification, error) {
	n := &Notification{
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(id),
		n.setUserID(userID),
		n.setType(notType),
		n.setTitle(title),
		n.setMessage(message),
	); err != nil {
		return nil, err
	}

	if err := n.setPayload(payload); err != nil {
		return nil, err
	}

	return n, nil
}

// RestoreNotification reconstructs a Notification from persistent storage.
func RestoreNotification(
	id kernel.UUID,
	userID kernel.UUID,
	notType Type,
	title string,
	message string,
	payload Payload,
	read bool,
	createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, userID, notType, title, message, payload, createdAt)
	if err != nil {
		return nil, err
	}

	n.read = read
	n.createdAt = createdAt
	return n, nil
}

// Validate ensures the Notification instance was properly constructed through a factory.
func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

// IsEqual compares two notifications by their unique identifiers.
func (n *Notification) IsEqual(other *Notification) bool {
	return other != nil && n.id.IsEqual(other.id)
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// UserID returns the recipient's identifier.
func (n *Notification) UserID() kernel.UUID {
	return n.userID
}

// Type returns the notification type.
func (n *Notification) Type() Type {
	return n.notType
}

// Title returns the short display title.
func (n *Notification) Title() string {
	return n.title
}

// Message returns the message body.
func (n *Notification) Message() string {
	return n.message
}

// Payload returns the typed event data.
func (n *Notification) Payload() Payload {
	return n.payload
}

// IsRead reports whether the recipient has read the notification.
func (n *Notification) IsRead() bool {
	return n.read
}

// CreatedAt returns the creation timestamp.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead marks the notification as read. Idempotent.
func (n *Notification) MarkRead() {
	n.read = true
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	n.userID = userID
	return nil
}

func (n *Notification) setType(notType Type) error {
	if err := notType.Validate(); err != nil {
		return err
	}
	n.notType = notType
	return nil
}

func (n *Notification) setTitle(title string) error {
	if title == "" {
		return ErrTitleIsRequired
	}
	n.title = title
	return nil
}

func (n *Notification) setMessage(message string) error {
	if message == "" {
		return ErrMessageIsRequired
	}
	n.message = message
	return nil
}

func (n *Notification) setPayload(payload Payload) error {
	if payload == nil {
		return errs.NewValueIsRequiredError("payload")
	}
	if err := validatePayloadShape(n.notType, payload); err != nil {
		return err
	}
	if err := payload.Validate(); err != nil {
		return err
	}
	n.payload = payload
	return nil
}
