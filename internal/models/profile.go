package models

import "time"

// Profile is the users table row. Manner temperature is a display-only
// reputation score maintained by the backend, never computed here.
type Profile struct {
	ID                string    `json:"id"`
	Email             string    `json:"email,omitempty"`
	Nickname          string    `json:"nickname"`
	FullName          string    `json:"full_name,omitempty"`
	AvatarURL         string    `json:"avatar_url,omitempty"`
	MannerTemperature float64   `json:"manner_temperature"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
}

type UpdateProfileRequest struct {
	Nickname  *string `json:"nickname"`
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

// Patch returns only the fields actually supplied, in column form.
func (r *UpdateProfileRequest) Patch() map[string]interface{} {
	patch := make(map[string]interface{})

	if r.Nickname != nil {
		patch["nickname"] = *r.Nickname
	}
	if r.FullName != nil {
		patch["full_name"] = *r.FullName
	}
	if r.AvatarURL != nil {
		patch["avatar_url"] = *r.AvatarURL
	}

	return patch
}
