package app

import (
	"context"
	"time"

	"DomainW/tools"
)

// DefaultWhoisClient 把同步的 WHOIS 查询包装成可取消的调用。
type DefaultWhoisClient struct {
	Lookup        *tools.WhoisLookup
	DisableFollow bool
}

func NewDefaultWhoisClient(maxFollow int, timeout time.Duration, disableFollow bool) *DefaultWhoisClient {
	return &DefaultWhoisClient{
		Lookup:        tools.NewWhoisLookup(maxFollow, timeout),
		DisableFollow: disableFollow,
	}
}

func (c *DefaultWhoisClient) Query(ctx context.Context, domain string) tools.LookupResult {
	ch := make(chan tools.LookupResult, 1)
	go func() {
		ch <- c.Lookup.Lookup(domain, c.DisableFollow)
	}()

	select {
	case <-ctx.Done():
		return tools.LookupResult{Status: false, Error: ctx.Err().Error()}
	case res := <-ch:
		return res
	}
}
