package app

import (
	"context"
	"fmt"

	"DomainW/config"
	"DomainW/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/acm"
)

// ACMCollector 把 ACM 证书覆盖的域名纳入检测。
// 证书自带 NotAfter，直接作为预填到期时间，省去一次 WHOIS 查询。
type ACMCollector struct {
	Cfg config.ACM
}

func (c *ACMCollector) Collect(ctx context.Context) ([]domain.DomainSource, error) {
	if c.Cfg.Region == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(c.Cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.Cfg.AccessKeyID, c.Cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("加载 AWS 配置失败: %w", err)
	}

	client := acm.NewFromConfig(awsCfg)
	source := "acm:" + c.Cfg.Label

	var sources []domain.DomainSource
	var token *string
	for {
		out, err := client.ListCertificates(ctx, &acm.ListCertificatesInput{NextToken: token})
		if err != nil {
			return nil, fmt.Errorf("列出 ACM 证书失败: %w", err)
		}
		for _, cert := range out.CertificateSummaryList {
			name := aws.ToString(cert.DomainName)
			if name == "" {
				continue
			}
			ds := domain.DomainSource{Domain: name, Source: source}
			if cert.NotAfter != nil {
				ds.Expiry = cert.NotAfter.UTC().Format("2006-01-02")
			}
			sources = append(sources, ds)
		}
		token = out.NextToken
		if token == nil {
			break
		}
	}
	return sources, nil
}
