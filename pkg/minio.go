package pkg

import (
	"github.com/formpilot/formbuilder-service/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func NewMinioClient(cfg *config.Config) (*minio.Client, error) {
	return minio.New(cfg.Assets.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Assets.MinioAccessKey, cfg.Assets.MinioSecretKey, ""),
		Secure: cfg.Assets.MinioUseSSL,
	})
}
