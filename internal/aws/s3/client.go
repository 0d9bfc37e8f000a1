package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"tasnim.dev/iam-audit/internal/utils"
)

const reportContentType = "application/json"

type S3API interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

type Client struct {
	api S3API
}

func NewClient(api S3API) *Client {
	return &Client{api: api}
}

// PutReport uploads a JSON report body to bucket/key.
func (c *Client) PutReport(ctx context.Context, bucket, key string, body []byte) (ReportObject, error) {
	out, err := c.api.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(reportContentType),
	})
	if err != nil {
		return ReportObject{}, fmt.Errorf("PutObject(%s/%s): %w", bucket, key, err)
	}

	return ReportObject{
		Bucket: bucket,
		Key:    key,
		ETag:   aws.ToString(out.ETag),
		Size:   int64(len(body)),
	}, nil
}

// ReportKey builds <prefix>/<accountID>/<YYYY-MM-DD>/users.json. An empty
// account ID is recorded as "unknown".
func ReportKey(prefix, accountID string, t time.Time) string {
	if accountID == "" {
		accountID = "unknown"
	}
	return path.Join(prefix, accountID, t.UTC().Format(utils.DateOnly), "users.json")
}
