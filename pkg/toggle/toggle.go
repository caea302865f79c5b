package toggle

import (
	"context"

	"github.com/pkg/errors"

	"mytube.com/cmd/model"
	"mytube.com/pkg/errno"
)

// Kind names what a toggle relates the actor to.
type Kind string

const (
	KindVideo   = Kind(model.LikeKindVideo)
	KindComment = Kind(model.LikeKindComment)
	KindTweet   = Kind(model.LikeKindTweet)
	KindChannel Kind = "channel"
)

// LikeKind reports the like target kind, false for subscriptions.
func (k Kind) LikeKind() (model.LikeKind, bool) {
	lk := model.LikeKind(k)
	return lk, lk.Valid()
}

type Key struct {
	ActorID  string
	Kind     Kind
	TargetID string
}

type Result struct {
	Active bool `json:"active"`
}

// Store holds one row per active key. The storage layer must enforce
// uniqueness of Key, so Insert on an existing key reports false instead of
// creating a second row.
type Store interface {
	Exists(ctx context.Context, key Key) (bool, error)
	Insert(ctx context.Context, key Key) (bool, error)
	Delete(ctx context.Context, key Key) (bool, error)
}

// CheckKey rejects keys that can never be toggled, before any lookup.
func CheckKey(key Key) error {
	if key.ActorID == "" {
		return errno.AuthenticationErr
	}
	if key.Kind == KindChannel {
		if key.ActorID == key.TargetID {
			return errno.ValidationErr.WithMessage("You cannot subscribe to yourself")
		}
		return nil
	}
	if _, ok := key.LikeKind(); !ok {
		return errno.ValidationErr.WithMessage("Invalid like target")
	}
	return nil
}

func (k Key) LikeKind() (model.LikeKind, bool) { return k.Kind.LikeKind() }

// Toggle deletes the row for key when present and creates it when absent.
// Two racing toggles on an absent key both end active: the loser's insert
// hits the unique key and is reported as already active. Two racing on a
// present key both end inactive.
func Toggle(ctx context.Context, store Store, key Key) (Result, error) {
	if err := CheckKey(key); err != nil {
		return Result{}, err
	}

	found, err := store.Exists(ctx, key)
	if err != nil {
		return Result{}, errors.WithMessagef(err, "lookup %s %s", key.Kind, key.TargetID)
	}
	if found {
		if _, err := store.Delete(ctx, key); err != nil {
			return Result{}, errors.WithMessagef(err, "delete %s %s", key.Kind, key.TargetID)
		}
		return Result{Active: false}, nil
	}

	if _, err := store.Insert(ctx, key); err != nil {
		return Result{}, errors.WithMessagef(err, "insert %s %s", key.Kind, key.TargetID)
	}
	return Result{Active: true}, nil
}
