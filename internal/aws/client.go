package aws

import (
	"context"
	"fmt"

	awsiamsdk "github.com/aws/aws-sdk-go-v2/service/iam"
	awss3sdk "github.com/aws/aws-sdk-go-v2/service/s3"

	awsiam "tasnim.dev/iam-audit/internal/aws/iam"
	awss3 "tasnim.dev/iam-audit/internal/aws/s3"
)

type ServiceClient struct {
	IAM       *awsiam.Client
	S3        *awss3.Client
	AccountID string
}

// NewServiceClient builds every client from one shared AWS config. The account
// ID is looked up once; it is empty when STS is unreachable.
func NewServiceClient(ctx context.Context, profile, region string) (*ServiceClient, error) {
	cfg, err := LoadConfig(ctx, profile, region)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &ServiceClient{
		IAM:       awsiam.NewClient(awsiamsdk.NewFromConfig(cfg)),
		S3:        awss3.NewClient(awss3sdk.NewFromConfig(cfg)),
		AccountID: GetAccountID(ctx, cfg),
	}, nil
}
