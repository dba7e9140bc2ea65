package cfclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"DomainW/config"

	cloudflare "github.com/cloudflare/cloudflare-go"
)

var ErrZoneNotFound = errors.New("zone not found")

// ZoneDetail 是命令和收集器需要的 Zone 字段子集。
type ZoneDetail struct {
	ID          string
	Name        string
	Status      string
	Paused      bool
	NameServers []string
}

// Client 抽象 Cloudflare 操作，便于测试替换。
type Client interface {
	ListZones(ctx context.Context, acc config.CF) ([]ZoneDetail, error)
	GetZoneDetails(ctx context.Context, acc config.CF, domain string) (ZoneDetail, error)
	PauseDomain(ctx context.Context, acc config.CF, domain string, paused bool) error
}

type apiClient struct {
	mu   sync.Mutex
	apis map[string]*cloudflare.API
}

func NewClient() Client {
	return &apiClient{apis: make(map[string]*cloudflare.API)}
}

func (c *apiClient) api(acc config.CF) (*cloudflare.API, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if api, ok := c.apis[acc.Label]; ok {
		return api, nil
	}
	api, err := cloudflare.NewWithAPIToken(acc.APIToken)
	if err != nil {
		return nil, fmt.Errorf("创建 Cloudflare 客户端失败 (%s): %w", acc.Label, err)
	}
	c.apis[acc.Label] = api
	return api, nil
}

func (c *apiClient) ListZones(ctx context.Context, acc config.CF) ([]ZoneDetail, error) {
	api, err := c.api(acc)
	if err != nil {
		return nil, err
	}
	zones, err := api.ListZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("列出 Zone 失败 (%s): %w", acc.Label, err)
	}
	details := make([]ZoneDetail, 0, len(zones))
	for _, z := range zones {
		details = append(details, toZoneDetail(z))
	}
	return details, nil
}

func (c *apiClient) GetZoneDetails(ctx context.Context, acc config.CF, domain string) (ZoneDetail, error) {
	api, err := c.api(acc)
	if err != nil {
		return ZoneDetail{}, err
	}
	id, err := api.ZoneIDByName(domain)
	if err != nil {
		return ZoneDetail{}, ErrZoneNotFound
	}
	zone, err := api.ZoneDetails(ctx, id)
	if err != nil {
		return ZoneDetail{}, fmt.Errorf("获取 Zone 详情失败 (%s): %w", domain, err)
	}
	return toZoneDetail(zone), nil
}

func (c *apiClient) PauseDomain(ctx context.Context, acc config.CF, domain string, paused bool) error {
	api, err := c.api(acc)
	if err != nil {
		return err
	}
	id, err := api.ZoneIDByName(domain)
	if err != nil {
		return ErrZoneNotFound
	}
	if _, err := api.ZoneSetPaused(ctx, id, paused); err != nil {
		return fmt.Errorf("切换 Zone 暂停状态失败 (%s): %w", domain, err)
	}
	return nil
}

func toZoneDetail(z cloudflare.Zone) ZoneDetail {
	return ZoneDetail{
		ID:          z.ID,
		Name:        z.Name,
		Status:      z.Status,
		Paused:      z.Paused,
		NameServers: z.NameServers,
	}
}

var (
	accountsMu sync.RWMutex
	accounts   []config.CF
)

// SetAccounts 注册全局账号列表，供回调处理按标签检索。
func SetAccounts(list []config.CF) {
	accountsMu.Lock()
	defer accountsMu.Unlock()
	accounts = append([]config.CF(nil), list...)
}

// GetAccountByLabel 按标签查找账号（忽略大小写），未找到返回 nil。
func GetAccountByLabel(label string) *config.CF {
	accountsMu.RLock()
	defer accountsMu.RUnlock()
	for i := range accounts {
		if strings.EqualFold(strings.TrimSpace(accounts[i].Label), strings.TrimSpace(label)) {
			acc := accounts[i]
			return &acc
		}
	}
	return nil
}
