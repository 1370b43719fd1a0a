package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookingView represents read-optimized booking data
type BookingView struct {
	ID           uuid.UUID  `json:"id"`
	ConferenceID string     `json:"conference_id"`
	UserID       string     `json:"user_id"`
	Status       string     `json:"status"`
	Position     *int       `json:"position,omitempty"`
	ConfirmBy    *time.Time `json:"confirm_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ConferenceView represents read-optimized conference data
type ConferenceView struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	StartsAt          time.Time `json:"starts_at"`
	EndsAt            time.Time `json:"ends_at"`
	TotalCapacity     int       `json:"total_capacity"`
	AvailableCapacity int       `json:"available_capacity"`
	WaitlistLength    int       `json:"waitlist_length"`
	CreatedAt         time.Time `json:"created_at"`
}

type WaitlistEntryView struct {
	Position  int        `json:"position"`
	BookingID uuid.UUID  `json:"booking_id"`
	UserID    string     `json:"user_id"`
	ConfirmBy *time.Time `json:"confirm_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
