package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrElevatedAccessRequired  = errors.New("elevated access required")
	ErrEmployeeAccountRequired = errors.New("caller has no employee record")
)
