package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// IAM is a global service; any commercial region signs requests for it.
const defaultRegion = "us-east-1"

type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// LoadConfig loads an AWS config with optional profile and region overrides.
// When no region is configured anywhere, us-east-1 is used.
func LoadConfig(ctx context.Context, profile, region string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading AWS config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	return cfg, nil
}

// GetAccountID returns the AWS account ID for the given config.
func GetAccountID(ctx context.Context, cfg aws.Config) string {
	return AccountID(ctx, sts.NewFromConfig(cfg))
}

// AccountID asks STS who the caller is. Returns empty string on error
// (non-fatal): report keys fall back to the account in user ARNs.
func AccountID(ctx context.Context, api STSAPI) string {
	out, err := api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return ""
	}
	return aws.ToString(out.Account)
}
