package models

import "time"

// ApplicationStatus tracks the review state of a driver application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// IsTerminal reports whether no further review is possible.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// Application is a prospective driver's submission. The password hash becomes
// the driver's credential once an admin approves it.
type Application struct {
	ID           int64             `json:"id"`
	FullName     string            `json:"full_name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone_number"`
	CVPath       string            `json:"cv,omitempty"`
	PasswordHash string            `json:"-"`
	Status       ApplicationStatus `json:"status"`
	UserID       *int64            `json:"user_id,omitempty"`
	ReviewedAt   *time.Time        `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
