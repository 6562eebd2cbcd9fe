package logger

import "errors"

var (
	// ErrServiceNameIsEmpty is returned when the logger config has no service name.
	ErrServiceNameIsEmpty = errors.New("log config servicename can not be empty")

	// ErrAppNameIsEmpty is returned when the logger config has no app name.
	ErrAppNameIsEmpty = errors.New("log config appname can not be empty")
)
