package entity

import "time"

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserCreate is the payload accepted when registering a new user.
type UserCreate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserUpdate carries the optional fields of a partial update. Nil pointers
// mean "leave unchanged".
type UserUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// Apply overwrites the fields of user that are set in the update.
func (u UserUpdate) Apply(user *User) {
	if u.Username != nil {
		user.Username = *u.Username
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
}

/*
Mysql Schema:

CREATE TABLE users (
	id INT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(50) NOT NULL,
	email VARCHAR(50) NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
*/
