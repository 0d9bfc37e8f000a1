package s3

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

type mockS3API struct {
	putObjectFunc func(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

func (m *mockS3API) PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	return m.putObjectFunc(ctx, params, optFns...)
}

func TestPutReport(t *testing.T) {
	var gotBody []byte
	mock := &mockS3API{
		putObjectFunc: func(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
			if awssdk.ToString(params.Bucket) != "audit-bucket" {
				t.Errorf("Bucket = %s, want audit-bucket", awssdk.ToString(params.Bucket))
			}
			if awssdk.ToString(params.ContentType) != "application/json" {
				t.Errorf("ContentType = %s, want application/json", awssdk.ToString(params.ContentType))
			}
			b, err := io.ReadAll(params.Body)
			if err != nil {
				t.Fatalf("reading body: %v", err)
			}
			gotBody = b
			return &awss3.PutObjectOutput{ETag: awssdk.String(`"abc123"`)}, nil
		},
	}

	body := []byte(`{"UserDetailList":[]}`)
	obj, err := NewClient(mock).PutReport(context.Background(), "audit-bucket", "iam/123/2025-01-10/users.json", body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %s, want %s", gotBody, body)
	}
	if obj.ETag != `"abc123"` {
		t.Errorf("ETag = %s", obj.ETag)
	}
	if obj.Size != int64(len(body)) {
		t.Errorf("Size = %d, want %d", obj.Size, len(body))
	}
	if obj.Key != "iam/123/2025-01-10/users.json" {
		t.Errorf("Key = %s", obj.Key)
	}
}

func TestPutReport_Error(t *testing.T) {
	sentinel := errors.New("access denied")
	mock := &mockS3API{
		putObjectFunc: func(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
			return nil, sentinel
		},
	}

	_, err := NewClient(mock).PutReport(context.Background(), "b", "k", nil)
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want wrapped sentinel", err)
	}
	if err.Error() != "PutObject(b/k): access denied" {
		t.Errorf("err = %q", err.Error())
	}
}

func TestReportKey(t *testing.T) {
	ts := time.Date(2025, 6, 20, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		prefix, account string
		want            string
	}{
		{"iam-reports", "123456789012", "iam-reports/123456789012/2025-06-20/users.json"},
		{"", "123456789012", "123456789012/2025-06-20/users.json"},
		{"iam-reports/", "", "iam-reports/unknown/2025-06-20/users.json"},
	}

	for _, tt := range tests {
		got := ReportKey(tt.prefix, tt.account, ts)
		if got != tt.want {
			t.Errorf("ReportKey(%q, %q) = %q, want %q", tt.prefix, tt.account, got, tt.want)
		}
	}
}
