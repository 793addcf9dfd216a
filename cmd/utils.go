package main

import (
	"mdblog/internal/validator"
)

func checkUsername(v *validator.Validator, username string) {
	v.CheckNotBlank(username, "username", "This field may not be blank.")
	v.Check(len(username) <= 150, "username", "Ensure this field has no more than 150 characters.")
}

func checkPassword(v *validator.Validator, password string) {
	v.CheckNotBlank(password, "password", "This field may not be blank.")
	v.Check(len(password) >= 8, "password", "This password is too short. It must contain at least 8 characters.")
}
