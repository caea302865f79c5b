package service

import (
	"context"

	"github.com/pkg/errors"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
	"mytube.com/pkg/aggregate"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/guard"
	"mytube.com/pkg/paginate"
	"mytube.com/pkg/utils"
)

type TweetService struct {
	ctx context.Context
}

func NewTweetService(ctx context.Context) *TweetService {
	return &TweetService{ctx: ctx}
}

func (s *TweetService) CreateTweet(principalID, content string) (*model.Tweet, error) {
	if principalID == "" {
		return nil, errno.AuthenticationErr
	}
	content, err := checkContent(content)
	if err != nil {
		return nil, err
	}
	t := &model.Tweet{OwnerID: principalID, Content: content}
	if err := db.Create(s.ctx, t); err != nil {
		return nil, errors.WithMessage(err, "dao.CreateTweet failed")
	}
	return t, nil
}

// UserTweets 一个未知用户的推文列表为空，而不是404
func (s *TweetService) UserTweets(userID, viewerID string, params paginate.Params) (*paginate.Page[model.TweetRow], error) {
	p, err := aggregate.Tweets(userID, viewerID)
	if err != nil {
		return nil, err
	}
	return paginate.Paginate[model.TweetRow](s.ctx, db.PipelineRunner{}, p, params)
}

func (s *TweetService) ownedTweet(tweetID, principalID, action string) error {
	if err := utils.CheckID(tweetID, "tweet"); err != nil {
		return err
	}
	t, err := db.FindByID[model.Tweet](s.ctx, tweetID)
	if err != nil {
		return err
	}
	return guard.Explain(guard.AssertOwner(t, principalID), "You are not authorized to "+action+" this tweet")
}

func (s *TweetService) UpdateTweet(tweetID, principalID, content string) (*model.Tweet, error) {
	content, err := checkContent(content)
	if err != nil {
		return nil, err
	}
	if err := s.ownedTweet(tweetID, principalID, "update"); err != nil {
		return nil, err
	}
	return db.UpdateByID[model.Tweet](s.ctx, tweetID, map[string]any{"content": content})
}

func (s *TweetService) DeleteTweet(tweetID, principalID string) error {
	if err := s.ownedTweet(tweetID, principalID, "delete"); err != nil {
		return err
	}
	if err := db.DeleteTweet(s.ctx, tweetID); err != nil {
		return errors.WithMessage(err, "dao.DeleteTweet failed")
	}
	return nil
}
