package domain

import (
	"errors"
	"strings"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound            = errors.New("resource not found")
	ErrValidation          = errors.New("validation failed")
	ErrStatusEditForbidden = errors.New("invoice status does not allow edits")
	ErrNumberingExhausted  = errors.New("invoice number reservation retries exhausted")
	ErrInvalidTransition   = errors.New("illegal status transition")
	ErrDuplicate           = errors.New("duplicate resource")
	ErrInvalidInput        = errors.New("invalid input")
)

// DependencyCategory is a user-facing classification of a collaborator failure.
type DependencyCategory string

const (
	DependencyDuplicate  DependencyCategory = "duplicate"
	DependencyReference  DependencyCategory = "reference"
	DependencyNetwork    DependencyCategory = "network"
	DependencyTimeout    DependencyCategory = "timeout"
	DependencyPermission DependencyCategory = "permission"
	DependencyUnknown    DependencyCategory = "unknown"
)

// ClassifyDependencyError buckets a store/email/payment failure into a
// user-facing category by matching known substrings. Unknown failures keep
// the underlying message so it can be appended to the generic notification.
func ClassifyDependencyError(err error) DependencyCategory {
	if err == nil {
		return DependencyUnknown
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key"):
		return DependencyDuplicate
	case strings.Contains(msg, "foreign key"):
		return DependencyReference
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return DependencyTimeout
	case strings.Contains(msg, "network"), strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"):
		return DependencyNetwork
	case strings.Contains(msg, "permission"), strings.Contains(msg, "denied"):
		return DependencyPermission
	default:
		return DependencyUnknown
	}
}

// DependencyMessage maps a category to the notification shown to the user.
func DependencyMessage(cat DependencyCategory, err error) string {
	switch cat {
	case DependencyDuplicate:
		return "a record with the same key already exists"
	case DependencyReference:
		return "the record is referenced by other data"
	case DependencyTimeout:
		return "the service timed out, please try again"
	case DependencyNetwork:
		return "the service is unreachable, please try again"
	case DependencyPermission:
		return "permission denied by the backing service"
	default:
		if err != nil {
			return "operation failed: " + err.Error()
		}
		return "operation failed"
	}
}
