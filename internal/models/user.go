package models

// User is a back-office account stored in the "users" collection.
// Authentication is the only thing it is used for.
type User struct {
	ID           string `firestore:"-" json:"id"`
	Email        string `firestore:"email" json:"email"`
	Name         string `firestore:"name" json:"name"`
	PasswordHash string `firestore:"password_hash" json:"-"`
	CreatedAt    string `firestore:"created_at" json:"created_at"`
}

// DisplayName returns the name shown in the session banner, falling back
// to the email when no name was set.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
