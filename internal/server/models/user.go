// Package models holds the records exchanged between repositories, services
// and the HTTP layer.
package models

// User is a registered dashboard account. Password holds the stored
// "hash.salt" value and is never serialized.
type User struct {
	UserName  string `json:"username"`
	Password  string `json:"-"`
	Birthdate string `json:"birthdate"`
	Email     string `json:"email"`
	Gender    string `json:"gender"`
	Country   string `json:"country"`
}

// NewUser is the registration input. Password is the clear text supplied by
// the client; it is hashed before it reaches a repository.
type NewUser struct {
	UserName  string
	Password  string
	Birthdate string
	Email     string
	Gender    string
	Country   string
}
