package iam

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsiam "github.com/aws/aws-sdk-go-v2/service/iam"
)

type IAMAPI interface {
	ListUsers(ctx context.Context, params *awsiam.ListUsersInput, optFns ...func(*awsiam.Options)) (*awsiam.ListUsersOutput, error)
	ListGroupsForUser(ctx context.Context, params *awsiam.ListGroupsForUserInput, optFns ...func(*awsiam.Options)) (*awsiam.ListGroupsForUserOutput, error)
	ListUserPolicies(ctx context.Context, params *awsiam.ListUserPoliciesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListUserPoliciesOutput, error)
	GetUserPolicy(ctx context.Context, params *awsiam.GetUserPolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.GetUserPolicyOutput, error)
	ListAttachedUserPolicies(ctx context.Context, params *awsiam.ListAttachedUserPoliciesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListAttachedUserPoliciesOutput, error)
	ListPolicyVersions(ctx context.Context, params *awsiam.ListPolicyVersionsInput, optFns ...func(*awsiam.Options)) (*awsiam.ListPolicyVersionsOutput, error)
	GetPolicyVersion(ctx context.Context, params *awsiam.GetPolicyVersionInput, optFns ...func(*awsiam.Options)) (*awsiam.GetPolicyVersionOutput, error)
}

type Client struct {
	api IAMAPI
}

func NewClient(api IAMAPI) *Client {
	return &Client{api: api}
}

func (c *Client) ListUsers(ctx context.Context) ([]IAMUser, error) {
	var users []IAMUser
	var marker *string

	for {
		out, err := c.api.ListUsers(ctx, &awsiam.ListUsersInput{
			Marker: marker,
		})
		if err != nil {
			return nil, callErr("ListUsers", "", err)
		}

		for _, u := range out.Users {
			users = append(users, IAMUser{
				Name: aws.ToString(u.UserName),
				ARN:  aws.ToString(u.Arn),
			})
		}

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return users, nil
}

// ListGroupsForUser never returns a nil slice on success.
func (c *Client) ListGroupsForUser(ctx context.Context, userName string) ([]Group, error) {
	groups := []Group{}
	var marker *string

	for {
		out, err := c.api.ListGroupsForUser(ctx, &awsiam.ListGroupsForUserInput{
			UserName: aws.String(userName),
			Marker:   marker,
		})
		if err != nil {
			return nil, callErr("ListGroupsForUser", userName, err)
		}

		for _, g := range out.Groups {
			groups = append(groups, Group{
				Name: aws.ToString(g.GroupName),
				ARN:  aws.ToString(g.Arn),
			})
		}

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return groups, nil
}

func (c *Client) ListUserPolicyNames(ctx context.Context, userName string) ([]string, error) {
	var names []string
	var marker *string

	for {
		out, err := c.api.ListUserPolicies(ctx, &awsiam.ListUserPoliciesInput{
			UserName: aws.String(userName),
			Marker:   marker,
		})
		if err != nil {
			return nil, callErr("ListUserPolicies", userName, err)
		}

		names = append(names, out.PolicyNames...)

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return names, nil
}

// GetUserPolicy fetches one inline policy document.
func (c *Client) GetUserPolicy(ctx context.Context, userName, policyName string) (Policy, error) {
	out, err := c.api.GetUserPolicy(ctx, &awsiam.GetUserPolicyInput{
		UserName:   aws.String(userName),
		PolicyName: aws.String(policyName),
	})
	if err != nil {
		return Policy{}, callErr("GetUserPolicy", userName+"/"+policyName, err)
	}

	return Policy{
		Name:     policyName,
		Document: decodeDocument(aws.ToString(out.PolicyDocument)),
	}, nil
}

func (c *Client) ListAttachedUserPolicies(ctx context.Context, userName string) ([]IAMAttachedPolicy, error) {
	var policies []IAMAttachedPolicy
	var marker *string

	for {
		out, err := c.api.ListAttachedUserPolicies(ctx, &awsiam.ListAttachedUserPoliciesInput{
			UserName: aws.String(userName),
			Marker:   marker,
		})
		if err != nil {
			return nil, callErr("ListAttachedUserPolicies", userName, err)
		}

		for _, p := range out.AttachedPolicies {
			policies = append(policies, IAMAttachedPolicy{
				Name: aws.ToString(p.PolicyName),
				ARN:  aws.ToString(p.PolicyArn),
			})
		}

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return policies, nil
}

// LatestPolicyVersion returns the version ID listed first by
// ListPolicyVersions. The service's ordering is taken as-is; versions are not
// compared or sorted here.
func (c *Client) LatestPolicyVersion(ctx context.Context, policyARN string) (string, error) {
	out, err := c.api.ListPolicyVersions(ctx, &awsiam.ListPolicyVersionsInput{
		PolicyArn: aws.String(policyARN),
	})
	if err != nil {
		return "", callErr("ListPolicyVersions", policyARN, err)
	}
	if len(out.Versions) == 0 {
		return "", callErr("ListPolicyVersions", policyARN, ErrNoPolicyVersions)
	}
	return aws.ToString(out.Versions[0].VersionId), nil
}

// GetManagedPolicy resolves an attached policy to its document at the latest
// version.
func (c *Client) GetManagedPolicy(ctx context.Context, attached IAMAttachedPolicy) (Policy, error) {
	versionID, err := c.LatestPolicyVersion(ctx, attached.ARN)
	if err != nil {
		return Policy{}, err
	}

	out, err := c.api.GetPolicyVersion(ctx, &awsiam.GetPolicyVersionInput{
		PolicyArn: aws.String(attached.ARN),
		VersionId: aws.String(versionID),
	})
	if err != nil {
		return Policy{}, callErr("GetPolicyVersion", attached.ARN+"@"+versionID, err)
	}

	var doc string
	if out.PolicyVersion != nil {
		doc = aws.ToString(out.PolicyVersion.Document)
	}

	return Policy{
		Name:     attached.Name,
		ARN:      attached.ARN,
		Document: decodeDocument(doc),
	}, nil
}

// decodeDocument turns the URL-encoded policy document returned by IAM into
// a JSON value. Documents that are not valid JSON are kept as a JSON string.
func decodeDocument(raw string) json.RawMessage {
	doc := raw
	if decoded, err := url.PathUnescape(raw); err == nil {
		doc = decoded
	}
	if json.Valid([]byte(doc)) {
		return json.RawMessage(doc)
	}
	quoted, _ := json.Marshal(doc)
	return quoted
}
