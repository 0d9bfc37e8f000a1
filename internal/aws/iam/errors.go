package iam

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// ErrNoPolicyVersions is returned when ListPolicyVersions reports no versions
// for an attached managed policy.
var ErrNoPolicyVersions = errors.New("policy has no versions")

// ServiceCallError records which IAM call failed. The SDK error is available
// through errors.Unwrap / errors.As.
type ServiceCallError struct {
	Op     string
	Target string
	Err    error
}

func (e *ServiceCallError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s(%s): %v", e.Op, e.Target, e.Err)
}

func (e *ServiceCallError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the AWS API error code carried by err, or "" when err did
// not come from the service (network failures, ErrNoPolicyVersions, ...).
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

func callErr(op, target string, err error) error {
	return &ServiceCallError{Op: op, Target: target, Err: err}
}
