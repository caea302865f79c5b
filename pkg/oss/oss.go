package oss

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"mytube.com/pkg/errno"
)

// Kind decides the object prefix inside the bucket.
type Kind string

const (
	KindVideo     Kind = "video"
	KindThumbnail Kind = "thumbnail"
	KindAvatar    Kind = "avatar"
	KindCover     Kind = "cover-image"
)

// Object is an uploaded file. DurationSeconds is only filled for videos.
type Object struct {
	URL             string
	DurationSeconds float64
}

type Storage interface {
	// Upload moves the local file into storage; the local copy is removed either way.
	Upload(ctx context.Context, localPath string, kind Kind) (Object, error)
	Delete(ctx context.Context, url string) error
}

type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	probe     func(path string) (float64, error)
}

const location = "us-east-1" // MinIO默认区域

func (s *MinioStorage) ensureBucket(ctx context.Context) error {
	// 检查存储桶是否存在，不存在则创建
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.Wrap(err, "check bucket error")
	}
	if exists {
		return nil
	}
	if err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: location}); err != nil {
		return errors.Wrap(err, "create bucket error")
	}
	return nil
}

func (s *MinioStorage) Upload(ctx context.Context, localPath string, kind Kind) (Object, error) {
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			hlog.CtxWarnf(ctx, "remove temp file %s: %v", localPath, err)
		}
	}()

	var obj Object
	if kind == KindVideo && s.probe != nil {
		d, err := s.probe(localPath)
		if err != nil {
			hlog.CtxErrorf(ctx, "probe video %s failed: %v", localPath, err)
			return obj, errno.UploadErr.WithMessage("Error while uploading video")
		}
		obj.DurationSeconds = d
	}

	if err := s.ensureBucket(ctx); err != nil {
		hlog.CtxErrorf(ctx, "%v", err)
		return obj, errno.UploadErr
	}
	ext := strings.ToLower(filepath.Ext(localPath))
	key := string(kind) + "/" + uuid.NewString() + ext
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		hlog.CtxErrorf(ctx, "upload %s to minio failed: %v", key, err)
		return obj, errno.UploadErr
	}
	obj.URL = objectURL(s.publicURL, s.bucket, key)
	return obj, nil
}

func (s *MinioStorage) Delete(ctx context.Context, url string) error {
	key, ok := objectKey(s.publicURL, s.bucket, url)
	if !ok {
		return errors.Errorf("url %q is not in bucket %s", url, s.bucket)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrapf(err, "remove object %s failed", key)
	}
	return nil
}

func objectURL(publicURL, bucket, key string) string {
	return strings.TrimRight(publicURL, "/") + "/" + bucket + "/" + key
}

// objectKey is the inverse of objectURL.
func objectKey(publicURL, bucket, url string) (string, bool) {
	prefix := strings.TrimRight(publicURL, "/") + "/" + bucket + "/"
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
