package utils

import "testing"

func TestAccountID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"arn:aws:iam::123456789012:user/alice", "123456789012"},
		{"arn:aws:iam::aws:policy/AdministratorAccess", "aws"},
		{"arn:aws-cn:iam::210987654321:group/ops", "210987654321"},
		{"not-an-arn", ""},
		{"arn:aws:iam", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := AccountID(tt.input)
		if got != tt.want {
			t.Errorf("AccountID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
