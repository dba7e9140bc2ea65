package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"DomainW/domain"
	"DomainW/tools"
)

// WhoisClient 执行一次 WHOIS 查询，所有失败都体现在结果信封里。
type WhoisClient interface {
	Query(ctx context.Context, domain string) tools.LookupResult
}

// RDAPQuerier 是 WHOIS 失败时的兜底查询。
type RDAPQuerier interface {
	Query(ctx context.Context, domain string) (*tools.WhoisRecord, error)
}

// ExpiryCheckerService 逐个查询域名到期时间，筛出临近到期的。
// RateLimit 控制查询间隔，避免被上游限流。
type ExpiryCheckerService struct {
	Whois        WhoisClient
	RDAP         RDAPQuerier
	Repo         domain.Repository
	AlertWithin  time.Duration
	RateLimit    time.Duration
	QueryTimeout time.Duration
}

func (c *ExpiryCheckerService) Check(ctx context.Context, domains []domain.DomainSource) ([]domain.DomainSource, []domain.FailureRecord, error) {
	if c.Whois == nil {
		return nil, nil, ErrMissingDependencies
	}
	if c.AlertWithin == 0 {
		c.AlertWithin = 24 * time.Hour
	}
	var ticker *time.Ticker
	if c.RateLimit > 0 {
		ticker = time.NewTicker(c.RateLimit)
		defer ticker.Stop()
	}

	var expiring []domain.DomainSource
	var failures []domain.FailureRecord
	var reports []domain.LookupReport
	queried := 0
	for _, ds := range domains {
		if expiryStr := strings.TrimSpace(ds.Expiry); expiryStr != "" {
			expiryTime, err := time.Parse("2006-01-02", expiryStr)
			if err != nil {
				failures = append(failures, domain.FailureRecord{Domain: ds.Domain, Source: ds.Source, Reason: fmt.Sprintf("解析失败: %v", err)})
				continue
			}

			if time.Until(expiryTime) <= c.AlertWithin {
				ds.Expiry = expiryTime.Format("2006-01-02")
				expiring = append(expiring, ds)
			}
			continue
		}

		if queried > 0 && ticker != nil {
			select {
			case <-ctx.Done():
				return expiring, failures, ctx.Err()
			case <-ticker.C:
			}
		}
		queried++

		record, elapsed, reason := c.lookup(ctx, ds.Domain)
		if record == nil {
			failures = append(failures, domain.FailureRecord{Domain: ds.Domain, Source: ds.Source, Reason: reason})
			continue
		}
		reports = append(reports, domain.LookupReport{Domain: ds.Domain, Time: elapsed, Record: record})

		expiry, ok := expiryFromRecord(record)
		if !ok {
			failures = append(failures, domain.FailureRecord{Domain: ds.Domain, Source: ds.Source, Reason: "未找到到期时间字段"})
			continue
		}
		expiryTime, err := time.Parse("2006-01-02", expiry)
		if err != nil {
			log.Printf("解析到期时间失败 [%s]: %v", ds.Domain, err)
			failures = append(failures, domain.FailureRecord{Domain: ds.Domain, Source: ds.Source, Reason: fmt.Sprintf("解析失败: %v", err)})
			continue
		}

		if time.Until(expiryTime) <= c.AlertWithin {
			ds.Expiry = expiry
			expiring = append(expiring, ds)
		}
	}

	if c.Repo != nil {
		if err := c.Repo.SaveExpiring(expiring); err != nil {
			return expiring, failures, err
		}
		if err := c.Repo.SaveFailures(failures); err != nil {
			return expiring, failures, err
		}
		if err := c.Repo.SaveReports(reports); err != nil {
			return expiring, failures, err
		}
	}
	return expiring, failures, nil
}

// lookup 先走 WHOIS，失败时尝试 RDAP 兜底。返回 nil 时附带失败原因。
func (c *ExpiryCheckerService) lookup(ctx context.Context, name string) (*tools.WhoisRecord, float64, string) {
	lookupCtx := ctx
	cancel := func() {}
	if c.QueryTimeout > 0 {
		lookupCtx, cancel = context.WithTimeout(ctx, c.QueryTimeout)
	}
	res := c.Whois.Query(lookupCtx, name)
	cancel()
	if res.Status {
		return res.Result, res.Time, ""
	}

	log.Printf("WHOIS 查询失败 (%s): %s", name, res.Error)
	if c.RDAP == nil {
		return nil, res.Time, res.Error
	}

	rdapCtx := ctx
	cancel = func() {}
	if c.QueryTimeout > 0 {
		rdapCtx, cancel = context.WithTimeout(ctx, c.QueryTimeout)
	}
	start := time.Now()
	record, err := c.RDAP.Query(rdapCtx, name)
	cancel()
	if err != nil {
		log.Printf("RDAP 兜底查询失败 (%s): %v", name, err)
		return nil, res.Time, fmt.Sprintf("%s; rdap: %v", res.Error, err)
	}
	return record, time.Since(start).Seconds(), ""
}

// expiryFromRecord 把解析出的到期时间归一成 yyyy-mm-dd。
func expiryFromRecord(record *tools.WhoisRecord) (string, bool) {
	value := record.ExpirationDate
	if value == "" || value == "Unknown" {
		return "", false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC().Format("2006-01-02"), true
	}
	return value, true
}
