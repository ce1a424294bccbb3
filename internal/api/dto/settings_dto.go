package dto

// UpdateSettingsFieldRequest payload for a single dot-path mutation.
type UpdateSettingsFieldRequest struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// SaveSettingsRequest payload for a full section snapshot.
type SaveSettingsRequest struct {
	Values map[string]any `json:"values"`
}

// SettingsResponse response.
type SettingsResponse struct {
	Section       string         `json:"section"`
	Values        map[string]any `json:"values"`
	RecentlySaved bool           `json:"recently_saved"`
}

// PasswordChangeRequest payload.
type PasswordChangeRequest struct {
	Current      string `json:"current"`
	New          string `json:"new"`
	Confirmation string `json:"confirmation"`
}
