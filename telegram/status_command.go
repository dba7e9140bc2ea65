package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"DomainW/cfclient"
	"DomainW/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleStatusCommand 查询域名在 Cloudflare 的托管状态。
func (h *CommandHandler) handleStatusCommand(args []string, from *tgbotapi.User) {
	if len(args) < 1 {
		h.sendText("用法: /status <domain.com>")
		return
	}
	domain := strings.ToLower(args[0])

	account, zone, err := h.findZone(domain)
	if err != nil {
		if errors.Is(err, cfclient.ErrZoneNotFound) {
			h.sendText(fmt.Sprintf("域名 %s 不属于任何 Cloudflare 账号。", domain))
			return
		}
		h.sendText(fmt.Sprintf("查询状态失败: %v", err))
		return
	}

	operator := formatOperator(from)
	h.sendText(fmt.Sprintf("域名 %s 状态: %s (暂停: %v)\n账号: %s\n操作人: %s", zone.Name, zone.Status, zone.Paused, account.Label, operator))
}

func (h *CommandHandler) findZone(domain string) (*config.CF, cfclient.ZoneDetail, error) {
	var lastErr error
	for i := range h.Accounts {
		acc := h.Accounts[i]
		zone, err := h.CFClient.GetZoneDetails(context.Background(), acc, domain)
		if err != nil {
			if errors.Is(err, cfclient.ErrZoneNotFound) {
				lastErr = err
				continue
			}
			return nil, cfclient.ZoneDetail{}, err
		}
		return &acc, zone, nil
	}
	if lastErr == nil {
		lastErr = cfclient.ErrZoneNotFound
	}
	return nil, cfclient.ZoneDetail{}, lastErr
}
