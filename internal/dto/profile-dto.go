package dto

// UpdateProfileRequest uses PATCH semantics: nil means "leave unchanged".
// Age 0 or null clears the stored age; an empty bio/address clears the field.
type UpdateProfileRequest struct {
	Name               *string `json:"name,omitempty"`
	Bio                *string `json:"bio,omitempty"`
	Age                *int    `json:"age,omitempty"`
	Address            *string `json:"address,omitempty"`
	AvailableMorning   *bool   `json:"available_morning,omitempty"`
	AvailableAfternoon *bool   `json:"available_afternoon,omitempty"`
	AvailableEvening   *bool   `json:"available_evening,omitempty"`
	AvatarURL          *string `json:"avatar_url,omitempty"`
}

type ProfileResponse struct {
	ID                 uint    `json:"id"`
	Email              string  `json:"email"`
	Name               string  `json:"name"`
	Bio                *string `json:"bio,omitempty"`
	Age                *int    `json:"age,omitempty"`
	Address            *string `json:"address,omitempty"`
	AvailableMorning   bool    `json:"available_morning"`
	AvailableAfternoon bool    `json:"available_afternoon"`
	AvailableEvening   bool    `json:"available_evening"`
	AvatarURL          *string `json:"avatar_url,omitempty"`
	VerificationStatus string  `json:"verification_status"`
	CreatedAt          string  `json:"created_at"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}
