package domain

// Identity is the authenticated user a request is bound to.
// Identity is resolved by the external provider (Google); the email is the partition
// key for everything the user stores.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
