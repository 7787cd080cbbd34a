package dto

// UpdateMemberSettingsRequest payload for PATCH /members/settings. Nil fields are left unchanged.
type UpdateMemberSettingsRequest struct {
	EmailNotifications *bool   `json:"emailNotifications,omitempty"`
	PushNotifications  *bool   `json:"pushNotifications,omitempty"`
	ShowMemberships    *bool   `json:"showMemberships,omitempty"`
	Language           *string `json:"language,omitempty"`
}
