package models

type User struct {
	ID        int    `json:"id,omitempty" db:"id,omitempty"`
	Username  string `json:"username,omitempty" db:"username,omitempty"`
	FirstName string `json:"first_name,omitempty" db:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty" db:"last_name,omitempty"`
	Password  string `json:"password,omitempty" db:"password,omitempty"`
	CreatedAt string `json:"created_at,omitempty" db:"created_at,omitempty"`
}

// PublicProfile strips credential fields for responses.
func (u User) PublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	}
}

// UpdateProfileRequest carries the only fields a user may change on their
// own profile. Anything else in the body is rejected by the decoder.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}
