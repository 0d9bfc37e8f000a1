package iam

import "context"

// ListUsersWithPolicies walks every IAM user in listing order and collects
// groups, inline policies and managed policies for each. The first failed
// call aborts the walk; no partial report is returned.
func (c *Client) ListUsersWithPolicies(ctx context.Context) (*Report, error) {
	users, err := c.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{UserDetailList: make([]UserDetail, 0, len(users))}
	for _, u := range users {
		detail, err := c.DescribeUser(ctx, u)
		if err != nil {
			return nil, err
		}
		report.UserDetailList = append(report.UserDetailList, detail)
	}

	return report, nil
}

// DescribeUser builds the record for a single user. Inline policies come
// first, then managed policies, each in the order IAM returned them.
func (c *Client) DescribeUser(ctx context.Context, u IAMUser) (UserDetail, error) {
	groups, err := c.ListGroupsForUser(ctx, u.Name)
	if err != nil {
		return UserDetail{}, err
	}

	inline, err := c.userInlinePolicies(ctx, u.Name)
	if err != nil {
		return UserDetail{}, err
	}

	managed, err := c.userManagedPolicies(ctx, u.Name)
	if err != nil {
		return UserDetail{}, err
	}

	policies := make([]Policy, 0, len(inline)+len(managed))
	policies = append(policies, inline...)
	policies = append(policies, managed...)

	return UserDetail{
		UserName: u.Name,
		UserARN:  u.ARN,
		Groups:   groups,
		Policies: policies,
	}, nil
}

func (c *Client) userInlinePolicies(ctx context.Context, userName string) ([]Policy, error) {
	names, err := c.ListUserPolicyNames(ctx, userName)
	if err != nil {
		return nil, err
	}

	policies := make([]Policy, 0, len(names))
	for _, name := range names {
		p, err := c.GetUserPolicy(ctx, userName, name)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}

func (c *Client) userManagedPolicies(ctx context.Context, userName string) ([]Policy, error) {
	attached, err := c.ListAttachedUserPolicies(ctx, userName)
	if err != nil {
		return nil, err
	}

	policies := make([]Policy, 0, len(attached))
	for _, a := range attached {
		p, err := c.GetManagedPolicy(ctx, a)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}
