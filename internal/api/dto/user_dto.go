package dto

// ProfileUpdateRequest is the body for POST /users/updateProfile.
type ProfileUpdateRequest struct {
	DisplayName string `json:"displayName" binding:"required,min=1,max=255"`
}

// ProfileView is the user's own profile payload. Only the display name is
// exposed; the surrogate id and timestamps stay internal.
type ProfileView struct {
	DisplayName string `json:"displayName"`
}
