package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	awsiam "tasnim.dev/iam-audit/internal/aws/iam"
	awss3 "tasnim.dev/iam-audit/internal/aws/s3"
	"tasnim.dev/iam-audit/internal/utils"
)

type UserLister interface {
	ListUsersWithPolicies(ctx context.Context) (*awsiam.Report, error)
}

type ReportStore interface {
	PutReport(ctx context.Context, bucket, key string, body []byte) (awss3.ReportObject, error)
}

type Option func(*Collector)

// WithUpload stores every collected report under bucket/prefix.
func WithUpload(store ReportStore, bucket, prefix string) Option {
	return func(c *Collector) {
		c.store = store
		c.bucket = bucket
		c.prefix = prefix
	}
}

// WithAccountID sets the account used in report keys. Without it the account
// is taken from the first user's ARN.
func WithAccountID(accountID string) Option {
	return func(c *Collector) {
		c.accountID = accountID
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		c.now = now
	}
}

// Collector runs the IAM user collection for the Lambda runtime and the CLI.
type Collector struct {
	users     UserLister
	logger    *zap.Logger
	store     ReportStore
	bucket    string
	prefix    string
	accountID string
	now       func() time.Time
}

func NewCollector(users UserLister, logger *zap.Logger, opts ...Option) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Collector{users: users, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is one collection run.
type Result struct {
	Report *awsiam.Report
	Body   []byte
	Upload *awss3.ReportObject
}

// Collect lists users with their policies, encodes the report and, when an
// upload bucket is configured, stores it.
func (c *Collector) Collect(ctx context.Context) (*Result, error) {
	report, err := c.users.ListUsersWithPolicies(ctx)
	if err != nil {
		c.logger.Error("collecting IAM users failed",
			zap.String("code", awsiam.ErrorCode(err)), zap.Error(err))
		return nil, err
	}

	body, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}

	c.logger.Info("collected IAM users",
		zap.Int("users", len(report.UserDetailList)),
		zap.Int("bytes", len(body)))

	result := &Result{Report: report, Body: body}
	if c.store == nil || c.bucket == "" {
		return result, nil
	}

	key := awss3.ReportKey(c.prefix, c.reportAccount(report), c.now())
	obj, err := c.store.PutReport(ctx, c.bucket, key, body)
	if err != nil {
		c.logger.Error("uploading report failed", zap.String("bucket", c.bucket), zap.String("key", key), zap.Error(err))
		return nil, err
	}
	c.logger.Info("uploaded report", zap.String("bucket", obj.Bucket), zap.String("key", obj.Key))
	result.Upload = &obj

	return result, nil
}

// Handle is the Lambda entrypoint. The event payload is ignored.
func (c *Collector) Handle(ctx context.Context, _ json.RawMessage) (events.APIGatewayProxyResponse, error) {
	result, err := c.Collect(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Body:       string(result.Body),
	}, nil
}

func (c *Collector) reportAccount(report *awsiam.Report) string {
	if c.accountID != "" {
		return c.accountID
	}
	if len(report.UserDetailList) > 0 {
		return utils.AccountID(report.UserDetailList[0].UserARN)
	}
	return ""
}
