package domain

import (
	"context"

	"DomainW/cfclient"
	"DomainW/config"
)

// Service 从 Cloudflare 账号收集域名。
type Service struct {
	CF cfclient.Client
}

func NewService(cf cfclient.Client) *Service {
	return &Service{CF: cf}
}

// CollectActiveNotPaused 收集所有账号下状态为 active 且未暂停的域名。
func (s *Service) CollectActiveNotPaused(ctx context.Context, accounts []config.CF) ([]DomainSource, error) {
	var sources []DomainSource
	for _, acc := range accounts {
		zones, err := s.CF.ListZones(ctx, acc)
		if err != nil {
			return nil, err
		}
		for _, zone := range zones {
			if zone.Status != "active" || zone.Paused {
				continue
			}
			sources = append(sources, DomainSource{Domain: zone.Name, Source: "cloudflare:" + acc.Label})
		}
	}
	return sources, nil
}
