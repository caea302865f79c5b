package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"mytube.com/pkg/aggregate"
	"mytube.com/pkg/errno"
)

// Pipelines run against table alias t. Joined tables get their own short
// aliases; every derived column is selected under the name the row structs
// in cmd/model scan by.

type compiled struct {
	tx       *gorm.DB
	selects  []string
	args     []any
	project  []string
	sortable map[string]string
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func compile(ctx context.Context, p aggregate.Pipeline, stages []aggregate.Stage) (*compiled, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c := &compiled{
		tx:       DB.WithContext(ctx).Table(string(p.Collection) + " AS t"),
		sortable: map[string]string{},
	}
	for _, s := range stages {
		if err := c.apply(p.Collection, s); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *compiled) selectExpr(sql string, args ...any) {
	c.selects = append(c.selects, sql)
	c.args = append(c.args, args...)
}

func (c *compiled) apply(coll aggregate.Collection, s aggregate.Stage) error {
	switch st := s.(type) {
	case aggregate.Match:
		c.tx = c.tx.Where("t."+st.Field+" = ?", st.Value)

	case aggregate.MatchIn:
		// an empty list renders IN (NULL) and matches nothing
		c.tx = c.tx.Where("t."+st.Field+" IN ?", st.Values)

	case aggregate.Search:
		pattern := "%" + likeEscaper.Replace(strings.ToLower(st.Text)) + "%"
		conds := make([]string, len(st.Fields))
		vars := make([]any, len(st.Fields))
		for i, f := range st.Fields {
			conds[i] = "LOWER(t." + f + ") LIKE ? ESCAPE '!'"
			vars[i] = pattern
		}
		c.tx = c.tx.Where("("+strings.Join(conds, " OR ")+")", vars...)

	case aggregate.Visibility:
		if coll != aggregate.VideoCollection {
			return errno.ServiceErr.WithMessage(fmt.Sprintf("visibility stage on %s", coll))
		}
		if st.ViewerID == "" {
			c.tx = c.tx.Where("t.is_published = ?", true)
		} else {
			c.tx = c.tx.Where("(t.is_published = ? OR t.owner_id = ?)", true, st.ViewerID)
		}

	case aggregate.LikedBy:
		c.tx = c.tx.Where("EXISTS (SELECT 1 FROM likes lb WHERE lb.target_kind = ? AND lb.target_id = t.id AND lb.liked_by = ?)",
			string(st.Kind), st.UserID)

	case aggregate.InPlaylist:
		c.tx = c.tx.Joins("JOIN playlist_videos pv ON pv.video_id = t.id AND pv.playlist_id IN ?", st.PlaylistIDs)
		c.selectExpr("pv.playlist_id AS playlist_id")
		c.selectExpr("pv.position AS position")
		c.sortable["position"] = "pv.position"

	case aggregate.WatchedBy:
		c.tx = c.tx.Joins("JOIN watch_histories wh ON wh.video_id = t.id AND wh.user_id = ?", st.UserID)
		c.selectExpr("wh.watched_at AS watched_at")
		c.sortable["watched_at"] = "wh.watched_at"

	case aggregate.LatestPerOwner:
		c.tx = c.tx.Where(`NOT EXISTS (SELECT 1 FROM videos nv WHERE nv.owner_id = t.owner_id AND nv.is_published = ?
			AND (nv.created_at > t.created_at OR (nv.created_at = t.created_at AND nv.id < t.id)))`, true)

	case aggregate.JoinOwner:
		alias := "j_" + st.As
		c.tx = c.tx.Joins(fmt.Sprintf("LEFT JOIN users %s ON %s.id = t.%s", alias, alias, st.LocalField))
		c.selectExpr(fmt.Sprintf("t.%s AS %s_id", st.LocalField, st.As))
		for _, col := range []string{"username", "full_name", "avatar_url"} {
			c.selectExpr(fmt.Sprintf("COALESCE(%s.%s, '') AS %s_%s", alias, col, st.As, col))
		}

	case aggregate.JoinLikes:
		c.selectExpr("(SELECT COUNT(*) FROM likes lc WHERE lc.target_kind = ? AND lc.target_id = t.id) AS likes_count", string(st.Kind))
		if st.ViewerID == "" {
			c.selectExpr("0 AS is_liked")
		} else {
			c.selectExpr("CASE WHEN EXISTS (SELECT 1 FROM likes lv WHERE lv.target_kind = ? AND lv.target_id = t.id AND lv.liked_by = ?) THEN 1 ELSE 0 END AS is_liked",
				string(st.Kind), st.ViewerID)
		}
		c.sortable["likes_count"] = "likes_count"

	case aggregate.JoinSubscribers:
		f := "t." + st.ChannelField
		c.selectExpr("(SELECT COUNT(*) FROM subscriptions sc WHERE sc.channel_id = " + f + ") AS subscribers_count")
		c.selectExpr("(SELECT COUNT(*) FROM subscriptions sd WHERE sd.subscriber_id = " + f + ") AS channels_subscribed_to_count")
		if st.ViewerID == "" {
			c.selectExpr("0 AS is_subscribed")
		} else {
			c.selectExpr("CASE WHEN EXISTS (SELECT 1 FROM subscriptions sv WHERE sv.channel_id = "+f+" AND sv.subscriber_id = ?) THEN 1 ELSE 0 END AS is_subscribed",
				st.ViewerID)
		}

	case aggregate.JoinPlaylistVideos:
		// an empty viewer id matches no owner, leaving published entries only
		c.selectExpr(`(SELECT COUNT(*) FROM playlist_videos pc JOIN videos pcv ON pcv.id = pc.video_id
			WHERE pc.playlist_id = t.id AND (pcv.is_published = ? OR pcv.owner_id = ?)) AS videos_count`, true, st.ViewerID)

	case aggregate.Sort:
		for _, k := range st.Keys {
			col, ok := c.sortable[k.Field]
			if !ok {
				if err := (aggregate.Pipeline{Collection: coll, Stages: []aggregate.Stage{aggregate.Match{Field: k.Field}}}).Validate(); err != nil {
					return err
				}
				col = "t." + k.Field
			}
			if k.Desc {
				col += " DESC"
			}
			c.tx = c.tx.Order(col)
		}

	case aggregate.Project:
		for _, col := range st.Columns {
			as := col.As
			if as == "" {
				as = col.Name
			}
			c.project = append(c.project, fmt.Sprintf("t.%s AS %s", col.Name, as))
		}

	default:
		return errno.ServiceErr.WithMessage(fmt.Sprintf("unsupported stage %T", s))
	}
	return nil
}

// Window is the skip/take applied after sorting. A zero Limit takes every row.
type Window struct {
	Offset int
	Limit  int
}

// RunPipeline executes p and scans the rows into dest, a pointer to a slice of row structs.
func RunPipeline(ctx context.Context, p aggregate.Pipeline, w Window, dest any) error {
	c, err := compile(ctx, p, p.Stages)
	if err != nil {
		return err
	}
	if len(c.project) == 0 {
		return errno.ServiceErr.WithMessage(fmt.Sprintf("pipeline over %s has no projection", p.Collection))
	}
	tx := c.tx.Select(strings.Join(append(c.project, c.selects...), ", "), c.args...)
	if w.Limit > 0 {
		tx = tx.Offset(w.Offset).Limit(w.Limit)
	}
	if err := tx.Scan(dest).Error; err != nil {
		return errors.Wrapf(err, "run pipeline over %s failed", p.Collection)
	}
	return nil
}

// CountPipeline counts the rows matched by the filter and visibility stages of p.
func CountPipeline(ctx context.Context, p aggregate.Pipeline) (int64, error) {
	c, err := compile(ctx, p, p.CountStages())
	if err != nil {
		return 0, err
	}
	var n int64
	if err := c.tx.Count(&n).Error; err != nil {
		return 0, errors.Wrapf(err, "count pipeline over %s failed", p.Collection)
	}
	return n, nil
}

// RunOne returns the first row of p, or a NotFoundErr carrying msg.
func RunOne[T any](ctx context.Context, p aggregate.Pipeline, msg string) (*T, error) {
	var rows []T
	if err := RunPipeline(ctx, p, Window{Limit: 1}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errno.NotFoundErr.WithMessage(msg)
	}
	return &rows[0], nil
}

// PipelineRunner plugs RunPipeline and CountPipeline into the paginator.
type PipelineRunner struct{}

func (PipelineRunner) Run(ctx context.Context, p aggregate.Pipeline, offset, limit int, dest any) error {
	return RunPipeline(ctx, p, Window{Offset: offset, Limit: limit}, dest)
}

func (PipelineRunner) Count(ctx context.Context, p aggregate.Pipeline) (int64, error) {
	return CountPipeline(ctx, p)
}
