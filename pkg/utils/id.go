package utils

import (
	"github.com/google/uuid"

	"mytube.com/pkg/errno"
)

// CheckID fails with a validation error naming the resource when id is not a well-formed uuid.
func CheckID(id, resource string) error {
	// uuid.Parse also takes the urn and braced forms, which never match a stored id
	if _, err := uuid.Parse(id); err != nil || len(id) != 36 {
		return errno.ValidationErr.WithMessage("Invalid " + resource + " id")
	}
	return nil
}

// CheckOptionalID accepts an empty id (e.g. an anonymous viewer or an absent filter).
func CheckOptionalID(id, resource string) error {
	if id == "" {
		return nil
	}
	return CheckID(id, resource)
}
