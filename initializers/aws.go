package initializers

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	S3Client    *s3.Client
	S3Bucket    string
	S3PublicURL string
)

func InitAWS() {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")),
	)
	if err != nil {
		log.Fatalf("unable to load AWS SDK config: %v", err)
	}

	S3Client = s3.NewFromConfig(cfg)
	S3Bucket = os.Getenv("AWS_BUCKET_NAME")
	if S3Bucket == "" {
		log.Fatal("AWS_BUCKET_NAME is not set in environment variables")
	}

	// Base URL file records point at, e.g. a CDN or the bucket website
	// endpoint.
	S3PublicURL = os.Getenv("PUBLIC_STORAGE_URL")
	if S3PublicURL == "" {
		S3PublicURL = "https://" + S3Bucket + ".s3.amazonaws.com"
	}
}
