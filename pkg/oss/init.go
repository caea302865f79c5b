package oss

import (
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"mytube.com/config"
	"mytube.com/pkg/utils"
)

// InitMinio connects to the configured MinIO endpoint and returns the storage
// every upload and cleanup goes through.
func InitMinio() (*MinioStorage, error) {
	conf := config.ConfigInfo.Minio
	hlog.Infof("Initializing MinIO client with endpoint: %s, accessKey: %s", conf.Endpoint, conf.AccessKey)

	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKey, conf.SecretKey, ""),
		Secure: conf.UseSSL,
	})
	if err != nil {
		hlog.Errorf("Failed to create MinIO client: %v", err)
		return nil, err
	}

	publicURL := conf.PublicURL
	if publicURL == "" {
		scheme := "http://"
		if conf.UseSSL {
			scheme = "https://"
		}
		publicURL = scheme + conf.Endpoint
	}

	hlog.Info("Connect Minio Success")
	return &MinioStorage{
		client:    client,
		bucket:    conf.Bucket,
		publicURL: publicURL,
		probe:     utils.ProbeDuration,
	}, nil
}
