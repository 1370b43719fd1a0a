package request

import (
	"time"

	"conference-booking/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type CreateConferenceRequest struct {
	ID            string    `json:"id" binding:"required,max=64"`
	Name          string    `json:"name" binding:"required,max=255"`
	StartsAt      time.Time `json:"starts_at" binding:"required"`
	EndsAt        time.Time `json:"ends_at" binding:"required,gtfield=StartsAt"`
	TotalCapacity int       `json:"total_capacity" binding:"required,min=1"`
}

func (r *CreateConferenceRequest) ToCommand() (commands.CreateConferenceRequest, error) {
	var cmd commands.CreateConferenceRequest
	err := copier.Copy(&cmd, r)
	return cmd, err
}

type CreateUserRequest struct {
	ID        string   `json:"id" binding:"required,max=64"`
	Interests []string `json:"interests" binding:"max=20,dive,required,max=50"`
}

func (r *CreateUserRequest) ToCommand() (commands.CreateUserRequest, error) {
	var cmd commands.CreateUserRequest
	err := copier.Copy(&cmd, r)
	return cmd, err
}
