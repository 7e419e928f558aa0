package model

import "time"

// User is an identity record.
//
// Password holds whatever the auth service decided to store: the raw
// credential by default, or a bcrypt hash when hashing is enabled.
// CreatedAt is stamped once at registration in the configured local
// zone (Asia/Kolkata by default) and never updated.
type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
}
