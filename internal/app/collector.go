package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"DomainW/config"
	"DomainW/domain"
	"DomainW/tools"
)

// Collector 汇总多个来源的域名：Cloudflare 账号、本地域名清单、ACM 证书。
// 同一域名出现多次时只保留先收集到的。
type Collector struct {
	Service  *domain.Service
	Accounts []config.CF
	Files    []string
	ACM      *ACMCollector
}

func (c *Collector) Collect(ctx context.Context) ([]domain.DomainSource, error) {
	var sources []domain.DomainSource

	if c.Service != nil {
		cfSources, err := c.Service.CollectActiveNotPaused(ctx, c.Accounts)
		if err != nil {
			return nil, err
		}
		sources = append(sources, cfSources...)
	}

	for _, path := range c.Files {
		fileSources, err := collectFromFile(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fileSources...)
	}

	if c.ACM != nil {
		acmSources, err := c.ACM.Collect(ctx)
		if err != nil {
			return nil, err
		}
		sources = append(sources, acmSources...)
	}

	return tools.FilterRepeatBy(sources, func(ds domain.DomainSource) string {
		return strings.ToLower(ds.Domain)
	}), nil
}

// collectFromFile 读取域名清单文件，一行一个域名，支持 # 注释。
func collectFromFile(path string) ([]domain.DomainSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开域名清单失败: %w", err)
	}
	defer file.Close()

	var sources []domain.DomainSource
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sources = append(sources, domain.DomainSource{Domain: strings.ToLower(line), Source: "file:" + path})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取域名清单失败: %w", err)
	}
	return sources, nil
}
