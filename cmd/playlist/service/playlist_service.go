package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
	"mytube.com/pkg/aggregate"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/guard"
	"mytube.com/pkg/paginate"
	"mytube.com/pkg/utils"
)

type PlaylistService struct {
	ctx context.Context
}

func NewPlaylistService(ctx context.Context) *PlaylistService {
	return &PlaylistService{ctx: ctx}
}

func (s *PlaylistService) CreatePlaylist(principalID, name, description string) (*model.Playlist, error) {
	if principalID == "" {
		return nil, errno.AuthenticationErr
	}
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, errno.ValidationErr.WithMessage("Name and description are required")
	}
	p := &model.Playlist{OwnerID: principalID, Name: name, Description: description}
	if err := db.Create(s.ctx, p); err != nil {
		return nil, errors.WithMessage(err, "dao.CreatePlaylist failed")
	}
	return p, nil
}

func (s *PlaylistService) UserPlaylists(userID, viewerID string, params paginate.Params) (*paginate.Page[model.PlaylistRow], error) {
	p, err := aggregate.Playlists(userID, viewerID)
	if err != nil {
		return nil, err
	}
	page, err := paginate.Paginate[model.PlaylistRow](s.ctx, db.PipelineRunner{}, p, params)
	if err != nil {
		return nil, err
	}
	if err := s.attachVideos(page.Items, viewerID); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *PlaylistService) GetPlaylist(playlistID, viewerID string) (*model.PlaylistRow, error) {
	p, err := aggregate.PlaylistByID(playlistID, viewerID)
	if err != nil {
		return nil, err
	}
	row, err := db.RunOne[model.PlaylistRow](s.ctx, p, "Playlist not found")
	if err != nil {
		return nil, err
	}
	rows := []model.PlaylistRow{*row}
	if err := s.attachVideos(rows, viewerID); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// attachVideos 一次查询取出所有播放列表中对viewer可见的视频，再按播放列表分组
func (s *PlaylistService) attachVideos(rows []model.PlaylistRow, viewerID string) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
		rows[i].Videos = []model.VideoRow{}
	}
	var videos []model.VideoRow
	if err := db.RunPipeline(s.ctx, aggregate.PlaylistVideos(ids, viewerID), db.Window{}, &videos); err != nil {
		return errors.WithMessage(err, "dao.PlaylistVideos failed")
	}
	byPlaylist := make(map[string][]model.VideoRow, len(rows))
	for _, v := range videos {
		byPlaylist[v.PlaylistID] = append(byPlaylist[v.PlaylistID], v)
	}
	for i := range rows {
		if vs, ok := byPlaylist[rows[i].ID]; ok {
			rows[i].Videos = vs
		}
	}
	return nil
}

func (s *PlaylistService) ownedPlaylist(playlistID, principalID, action string) (*model.Playlist, error) {
	if err := utils.CheckID(playlistID, "playlist"); err != nil {
		return nil, err
	}
	p, err := db.FindByID[model.Playlist](s.ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := guard.AssertOwner(p, principalID); err != nil {
		return nil, guard.Explain(err, "You are not authorized to "+action+" this playlist")
	}
	return p, nil
}

func (s *PlaylistService) UpdatePlaylist(playlistID, principalID, name, description string) (*model.Playlist, error) {
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if name == "" && description == "" {
		return nil, errno.ValidationErr.WithMessage("At least one field is required to update")
	}
	if _, err := s.ownedPlaylist(playlistID, principalID, "update"); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if name != "" {
		fields["name"] = name
	}
	if description != "" {
		fields["description"] = description
	}
	return db.UpdateByID[model.Playlist](s.ctx, playlistID, fields)
}

func (s *PlaylistService) DeletePlaylist(playlistID, principalID string) error {
	if _, err := s.ownedPlaylist(playlistID, principalID, "delete"); err != nil {
		return err
	}
	return db.DeletePlaylist(s.ctx, playlistID)
}

func (s *PlaylistService) checkEntryIDs(playlistID, videoID string) error {
	if utils.CheckID(playlistID, "playlist") != nil || utils.CheckID(videoID, "video") != nil {
		return errno.ValidationErr.WithMessage("Invalid playlist or video id")
	}
	return nil
}

// AddVideo appends a video the principal can see to one of their playlists.
func (s *PlaylistService) AddVideo(playlistID, videoID, principalID string) (*model.PlaylistRow, error) {
	if err := s.checkEntryIDs(playlistID, videoID); err != nil {
		return nil, err
	}
	if _, err := s.ownedPlaylist(playlistID, principalID, "modify"); err != nil {
		return nil, err
	}
	ok, err := db.Exists[model.Video](s.ctx, "id = ? AND (is_published = ? OR owner_id = ?)", videoID, true, principalID)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.VideoExists failed")
	}
	if !ok {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}
	if err := db.AddPlaylistVideo(s.ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.GetPlaylist(playlistID, principalID)
}

func (s *PlaylistService) RemoveVideo(playlistID, videoID, principalID string) (*model.PlaylistRow, error) {
	if err := s.checkEntryIDs(playlistID, videoID); err != nil {
		return nil, err
	}
	if _, err := s.ownedPlaylist(playlistID, principalID, "modify"); err != nil {
		return nil, err
	}
	if err := db.RemovePlaylistVideo(s.ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.GetPlaylist(playlistID, principalID)
}
