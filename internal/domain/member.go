package domain

import "time"

// Member is the member persona of a user.
type Member struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Email     string         `json:"email"`
	FullName  string         `json:"fullName"`
	Settings  MemberSettings `json:"settings"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// MemberSettings are notification and privacy preferences.
type MemberSettings struct {
	EmailNotifications bool   `json:"emailNotifications"`
	PushNotifications  bool   `json:"pushNotifications"`
	ShowMemberships    bool   `json:"showMemberships"`
	Language           string `json:"language,omitempty"`
}
