package iam

import "encoding/json"

// Report is the aggregated output of ListUsersWithPolicies.
type Report struct {
	UserDetailList []UserDetail `json:"UserDetailList"`
}

type UserDetail struct {
	UserName string   `json:"userName"`
	UserARN  string   `json:"userArn"`
	Groups   []Group  `json:"groupName"`
	Policies []Policy `json:"policy"`
}

type Group struct {
	Name string `json:"GroupName"`
	ARN  string `json:"GroupArn"`
}

// Policy is either an inline policy (ARN empty) or a managed policy.
type Policy struct {
	Name     string          `json:"PolicyName"`
	ARN      string          `json:"PolicyArn,omitempty"`
	Document json.RawMessage `json:"PolicyJSON"`
}

type IAMUser struct {
	Name string
	ARN  string
}

type IAMAttachedPolicy struct {
	Name string
	ARN  string
}
