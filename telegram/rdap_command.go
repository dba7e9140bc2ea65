package telegram

import (
	"context"
	"fmt"
	"strings"
)

func (h *CommandHandler) handleRDAPCommand(args []string) {
	if len(args) < 1 {
		h.sendText("用法: /rdap <domain.com>")
		return
	}
	if h.RDAP == nil {
		h.sendText("RDAP 查询未启用。")
		return
	}
	domain := strings.ToLower(args[0])

	record, err := h.RDAP.Query(context.Background(), domain)
	if err != nil {
		h.sendText(fmt.Sprintf("RDAP 查询失败: %s (%v)", domain, err))
		return
	}
	h.sendText("【RDAP】\n" + FormatRecord(record))
}
