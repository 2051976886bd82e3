package service

import (
	"errors"
	"fmt"
)

// IncompatibleEnvironmentError signals from OnLoad that the service cannot
// run in this environment. The launcher treats it as "skip this service",
// not as a startup failure.
type IncompatibleEnvironmentError struct {
	Service string
	Reason  string
}

func (e *IncompatibleEnvironmentError) Error() string {
	return fmt.Sprintf("service %s: incompatible environment: %s", e.Service, e.Reason)
}

// Incompatible builds the error OnLoad should return when the service
// cannot participate.
func Incompatible(service, reason string) error {
	return &IncompatibleEnvironmentError{Service: service, Reason: reason}
}

func IsIncompatibleEnvironment(err error) bool {
	var target *IncompatibleEnvironmentError
	return errors.As(err, &target)
}
