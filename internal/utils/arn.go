package utils

import "strings"

// AccountID returns the account field of an ARN
// (arn:partition:service:region:account:resource), or "" if arn is malformed.
// AWS-managed policies ("arn:aws:iam::aws:policy/...") yield "aws".
func AccountID(arn string) string {
	parts := strings.SplitN(arn, ":", 6)
	if len(parts) < 6 || parts[0] != "arn" {
		return ""
	}
	return parts[4]
}
