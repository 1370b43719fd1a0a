package response

import (
	"time"

	"conference-booking/internal/usecase/commands"
	"conference-booking/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID           string     `json:"id"`
	ConferenceID string     `json:"conference_id"`
	UserID       string     `json:"user_id"`
	Status       string     `json:"status"`
	Position     *int       `json:"position,omitempty"`
	ConfirmBy    *time.Time `json:"confirm_by,omitempty"`
}

func FromBookingResult(r *commands.BookingResult) (*BookingResponse, error) {
	res := &BookingResponse{ID: r.BookingID.String()}
	if err := copier.CopyWithOption(res, r, copyOption); err != nil {
		return nil, err
	}
	return res, nil
}

type BookingDetailResponse struct {
	BookingResponse
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromBookingView(v *queries.BookingView) (*BookingDetailResponse, error) {
	res := &BookingDetailResponse{}
	if err := copier.CopyWithOption(res, v, copyOption); err != nil {
		return nil, err
	}
	return res, nil
}
