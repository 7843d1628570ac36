package models

// User is a registered account. The password is stored exactly as supplied;
// this service performs no hashing, which is a documented weakness of the
// system rather than an oversight.
type User struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// LoginResult is the two-stage outcome of a credential check. UserExists
// false means no such account; UserExists true with PasswordMatches false
// means a wrong password. Neither case is an error.
type LoginResult struct {
	UserExists      bool
	PasswordMatches bool
}
