package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	awsclient "tasnim.dev/iam-audit/internal/aws"
	awsiam "tasnim.dev/iam-audit/internal/aws/iam"
	"tasnim.dev/iam-audit/internal/config"
	"tasnim.dev/iam-audit/internal/handler"
	"tasnim.dev/iam-audit/internal/logging"
	"tasnim.dev/iam-audit/internal/utils"
)

func NewCollectCmd() *cobra.Command {
	var profile string
	var region string
	var bucket string
	var prefix string
	var output string
	var summary bool
	var logLevel string

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect IAM users with their groups and policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			profile, region = cfg.Merge(profile, region)
			if bucket == "" {
				bucket = cfg.Report.Bucket
			}
			if prefix == "" {
				prefix = cfg.Report.Prefix
			}

			logger := logging.NewConsole(logLevel, "collect")
			defer logger.Sync()

			ctx := context.Background()
			client, err := awsclient.NewServiceClient(ctx, profile, region)
			if err != nil {
				return fmt.Errorf("initializing AWS client: %w", err)
			}

			collector := handler.NewCollector(client.IAM, logger,
				handler.WithUpload(client.S3, bucket, prefix),
				handler.WithAccountID(client.AccountID))

			result, err := collector.Collect(ctx)
			if err != nil {
				return err
			}
			if result.Upload != nil {
				logger.Info("report stored", zap.String("uri", "s3://"+result.Upload.Bucket+"/"+result.Upload.Key))
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			if summary {
				_, err = io.WriteString(out, renderSummary(result.Report))
				return err
			}
			return writeIndented(out, result.Body)
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region to use")
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket to store the report in")
	cmd.Flags().StringVar(&prefix, "prefix", "", "S3 key prefix for stored reports")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a human-readable summary instead of JSON")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	return cmd
}

func writeIndented(w io.Writer, body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

func renderSummary(report *awsiam.Report) string {
	d := utils.NewDetailBuilder(10, lipgloss.NewStyle().Bold(true))
	for _, u := range report.UserDetailList {
		d.Section(u.UserName)
		d.Row("ARN", u.UserARN)
		d.Row("Account", utils.AccountID(u.UserARN))

		groups := make([]string, 0, len(u.Groups))
		for _, g := range u.Groups {
			groups = append(groups, g.Name)
		}
		d.Row("Groups", strings.Join(groups, ", "))

		var inline, managed []string
		for _, p := range u.Policies {
			if p.ARN == "" {
				inline = append(inline, p.Name)
			} else {
				managed = append(managed, p.Name+" ("+p.ARN+")")
			}
		}
		d.List("Inline", inline)
		d.List("Managed", managed)
		d.Blank()
	}
	return d.String()
}
