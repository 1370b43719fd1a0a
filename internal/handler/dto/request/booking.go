package request

type CreateBookingRequest struct {
	UserID string `json:"user_id" binding:"required,max=64"`
}
