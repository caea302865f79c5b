package guard

import (
	"context"
	"errors"

	"mytube.com/cmd/model"
	"mytube.com/pkg/errno"
)

// Owned is anything with a single owning user.
type Owned interface {
	OwnerKey() string
}

// AssertOwner fails with ForbiddenErr unless principalID owns entity.
func AssertOwner(entity Owned, principalID string) error {
	if principalID == "" {
		return errno.AuthenticationErr
	}
	if entity == nil || entity.OwnerKey() != principalID {
		return errno.ForbiddenErr
	}
	return nil
}

// VideoOwnerFunc resolves the owner of a video.
type VideoOwnerFunc func(ctx context.Context, videoID string) (string, error)

// AssertCommentRemovable allows the comment's owner and the owner of the
// video it was posted on. The video owner is only looked up when the
// principal does not own the comment.
func AssertCommentRemovable(ctx context.Context, c *model.Comment, principalID string, videoOwner VideoOwnerFunc) error {
	if principalID == "" {
		return errno.AuthenticationErr
	}
	if c == nil {
		return errno.NotFoundErr.WithMessage("Comment not found")
	}
	if c.OwnerID == principalID {
		return nil
	}
	owner, err := videoOwner(ctx, c.VideoID)
	if err != nil {
		// parent gone: nobody but the comment owner may remove it
		if errors.Is(err, errno.NotFoundErr) {
			return errno.ForbiddenErr
		}
		return err
	}
	if owner != principalID {
		return errno.ForbiddenErr
	}
	return nil
}

// Explain gives a ForbiddenErr a resource specific message and leaves any other error alone.
func Explain(err error, msg string) error {
	if err != nil && errors.Is(err, errno.ForbiddenErr) {
		return errno.ForbiddenErr.WithMessage(msg)
	}
	return err
}
