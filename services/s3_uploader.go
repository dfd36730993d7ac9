package services

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pvn-digital/initiative-catalog/errs"
)

// ObjectPutter is the part of the S3 client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores attachments in a bucket under a random prefix.
type S3Uploader struct {
	client        ObjectPutter
	bucket        string
	region        string
	keyPrefix     string
	publicBaseURL string
	newID         func() string
}

// NewS3Uploader builds object URLs from publicBaseURL when set, otherwise
// from the bucket's virtual-hosted endpoint.
func NewS3Uploader(client ObjectPutter, bucket, region, keyPrefix, publicBaseURL string) *S3Uploader {
	return &S3Uploader{
		client:        client,
		bucket:        bucket,
		region:        region,
		keyPrefix:     strings.Trim(keyPrefix, "/"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		newID:         func() string { return uuid.NewString() },
	}
}

func (u *S3Uploader) Upload(ctx context.Context, file File) (string, error) {
	key := u.newID() + "/" + safeName(file.Name)
	if u.keyPrefix != "" {
		key = u.keyPrefix + "/" + key
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file.Data),
		ContentLength: aws.Int64(int64(len(file.Data))),
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", errs.NewUploadError(file.Name, err)
	}
	return u.objectURL(key), nil
}

func (u *S3Uploader) objectURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	if u.publicBaseURL != "" {
		return u.publicBaseURL + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, escaped)
}
