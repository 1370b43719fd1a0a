package response

import (
	"time"

	"conference-booking/internal/domain/user"
	"conference-booking/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ConferenceResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	StartsAt          time.Time `json:"starts_at"`
	EndsAt            time.Time `json:"ends_at"`
	TotalCapacity     int       `json:"total_capacity"`
	AvailableCapacity int       `json:"available_capacity"`
	WaitlistLength    int       `json:"waitlist_length"`
	CreatedAt         time.Time `json:"created_at"`
}

func FromConferenceView(v *queries.ConferenceView) (*ConferenceResponse, error) {
	res := &ConferenceResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, err
	}
	return res, nil
}

type WaitlistEntryResponse struct {
	Position  int        `json:"position"`
	BookingID string     `json:"booking_id"`
	UserID    string     `json:"user_id"`
	ConfirmBy *time.Time `json:"confirm_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func FromWaitlist(entries []*queries.WaitlistEntryView) ([]*WaitlistEntryResponse, error) {
	res := make([]*WaitlistEntryResponse, 0, len(entries))
	if err := copier.CopyWithOption(&res, entries, copyOption); err != nil {
		return nil, err
	}
	return res, nil
}

type UserResponse struct {
	ID        string    `json:"id"`
	Interests []string  `json:"interests"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUser(u *user.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID(),
		Interests: u.Interests().Strings(),
		CreatedAt: u.CreatedAt(),
	}
}
