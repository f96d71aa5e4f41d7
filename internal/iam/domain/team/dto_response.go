package team

import (
	"time"

	"case-management-system/internal/iam/domain/model"

	"github.com/google/uuid"
)

type TeamResponseDto struct {
	UUID        uuid.UUID `json:"uuid"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Live        bool      `json:"live"`
	CreateAt    time.Time `json:"create_at"`
	UpdateAt    time.Time `json:"update_at"`
}

type MemberResponseDto struct {
	UUID  uuid.UUID `json:"uuid"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Live  bool      `json:"live"`
}

func ToResponse(t model.Team) TeamResponseDto {
	return TeamResponseDto{
		UUID:        t.UUID,
		Code:        t.Code,
		Name:        t.Name,
		Description: t.Description,
		Live:        t.Live,
		CreateAt:    t.CreateAt,
		UpdateAt:    t.UpdateAt,
	}
}

func toMember(u model.User) MemberResponseDto {
	return MemberResponseDto{UUID: u.UUID, Name: u.Name, Email: u.Email, Live: u.Live}
}
