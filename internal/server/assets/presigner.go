// Package assets presigns read access to the assets bucket so clients can
// load promotion banners without the bucket being public.
package assets

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/bobadragon/storefront/internal/server/config"
)

// Seams for testing the AWS SDK wiring.
var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig
var newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
	return s3.NewFromConfig(cfg, optFns...)
}
var newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
	return s3.NewPresignClient(c)
}

type Presigner struct {
	config *sc.Config
}

func NewPresigner(config *sc.Config) *Presigner {
	return &Presigner{config: config}
}

func (p *Presigner) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(p.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.config.S3RootUser,
			p.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(p.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// PresignedGetURL returns a time-limited download URL for the given object
// key in the assets bucket.
func (p *Presigner) PresignedGetURL(ctx context.Context, key string) (string, error) {

	presignClient, err := p.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := p.config.S3Bucket

	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(p.config.PresignTTL))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
