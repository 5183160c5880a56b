package dto

import (
	"github.com/google/uuid"

	"gigboard/internal/domain/user"
)

type SkillResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
}

// ProfileResponse is the public profile rendered under the "profile"
// key of the profile page.
type ProfileResponse struct {
	Username        string          `json:"username"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	ProfilePhotoURL string          `json:"profile_photo_url"`
	Profile         string          `json:"profile"`
	CompanyName     string          `json:"company_name,omitempty"`
	IsFreelancer    bool            `json:"is_freelancer"`
	IsOwner         bool            `json:"is_owner"`
	Skills          []SkillResponse `json:"skills"`
}

// OwnProfileResponse prefills the edit form; it adds the fields only
// the owner of the profile sees.
type OwnProfileResponse struct {
	ProfileResponse
	Email    string      `json:"email"`
	SkillIDs []uuid.UUID `json:"skill_ids"`
}

func NewProfileResponse(u user.User) ProfileResponse {
	skills := make([]SkillResponse, 0, len(u.Skills))
	for _, s := range u.Skills {
		skills = append(skills, SkillResponse{ID: s.ID, Name: s.Name, Category: s.Category})
	}
	return ProfileResponse{
		Username:        u.Username,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfilePhotoURL: u.ProfilePhotoURL,
		Profile:         u.Profile,
		CompanyName:     u.CompanyName,
		IsFreelancer:    u.IsFreelancer,
		IsOwner:         u.IsOwner,
		Skills:          skills,
	}
}

func NewOwnProfileResponse(u user.User) OwnProfileResponse {
	ids := make([]uuid.UUID, 0, len(u.Skills))
	for _, s := range u.Skills {
		ids = append(ids, s.ID)
	}
	return OwnProfileResponse{
		ProfileResponse: NewProfileResponse(u),
		Email:           u.Email,
		SkillIDs:        ids,
	}
}
