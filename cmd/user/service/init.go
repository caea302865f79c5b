package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"mytube.com/pkg/errno"
	"mytube.com/pkg/oss"
)

var objectStorage oss.Storage

// Init wires the object storage holding avatars and cover images.
func Init(s oss.Storage) {
	objectStorage = s
}

func upload(ctx context.Context, path string, kind oss.Kind) (oss.Object, error) {
	if objectStorage == nil {
		return oss.Object{}, errno.UploadErr.WithMessage("Object storage is not configured")
	}
	return objectStorage.Upload(ctx, path, kind)
}

func removeObjects(ctx context.Context, urls ...string) {
	if objectStorage == nil {
		return
	}
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := objectStorage.Delete(ctx, url); err != nil {
			hlog.CtxWarnf(ctx, "remove object %s failed: %v", url, err)
		}
	}
}
