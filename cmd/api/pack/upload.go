package pack

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"

	"mytube.com/pkg/errno"
)

// UploadDir holds multipart files until object storage takes them.
var UploadDir = filepath.Join(os.TempDir(), "mytube")

// SaveFormFile stores the multipart field under UploadDir. A missing field
// yields "" and no error; callers decide whether the file is required.
func SaveFormFile(c *app.RequestContext, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return "", nil
	}
	if err := os.MkdirAll(UploadDir, 0o755); err != nil {
		return "", errno.UploadErr.WithMessage("Failed to store " + field)
	}
	// 原始文件名不可信，只保留扩展名
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	path := filepath.Join(UploadDir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(fh, path); err != nil {
		return "", errno.UploadErr.WithMessage("Failed to store " + field)
	}
	return path, nil
}

// RemoveTemp drops temp files a request left behind. Storage uploads already
// remove theirs, so a missing file is expected.
func RemoveTemp(ctx context.Context, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			hlog.CtxWarnf(ctx, "remove temp file %s: %v", p, err)
		}
	}
}
