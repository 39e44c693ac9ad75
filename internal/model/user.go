package model

import "time"

// AnonymousUserID stamps mood entries recorded while nobody is logged in.
const AnonymousUserID = "anon"

// User is the locally fabricated profile created at login.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Major     string    `json:"major,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
