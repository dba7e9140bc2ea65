package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"DomainW/cfclient"
	"DomainW/config"
	"DomainW/tools"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// RDAPQuerier 供 /rdap 命令使用。
type RDAPQuerier interface {
	Query(ctx context.Context, domain string) (*tools.WhoisRecord, error)
}

// CommandHandler 处理群组中的命令消息。
type CommandHandler struct {
	Whois    *tools.WhoisLookup
	RDAP     RDAPQuerier
	CFClient cfclient.Client
	Accounts []config.CF
	Sender   Sender
	ChatID   int64
}

func NewCommandHandler(lookup *tools.WhoisLookup, rdap RDAPQuerier, cf cfclient.Client, sender Sender, accounts []config.CF, chatID int64) *CommandHandler {
	if lookup == nil {
		lookup = tools.NewWhoisLookup(0, 30*time.Second)
	}
	if cf == nil {
		cf = cfclient.NewClient()
	}
	if sender == nil {
		sender = DefaultSender()
	}
	return &CommandHandler{Whois: lookup, RDAP: rdap, CFClient: cf, Accounts: accounts, Sender: sender, ChatID: chatID}
}

// HandleMessage 分发 Telegram 文本命令
func (h *CommandHandler) HandleMessage(msg *tgbotapi.Message) {
	if msg == nil || msg.Text == "" {
		return
	}
	if h.ChatID != 0 && msg.Chat != nil && msg.Chat.ID != h.ChatID {
		return
	}
	if !msg.IsCommand() {
		return
	}
	// 操作人随消息传递，命令 goroutine 之间不共享状态
	from := msg.From
	args := strings.Fields(msg.CommandArguments())
	switch msg.Command() {
	case "whois":
		go h.handleWhoisCommand(args, true)
	case "whoisfull":
		go h.handleWhoisCommand(args, false)
	case "rdap":
		go h.handleRDAPCommand(args)
	case "status":
		go h.handleStatusCommand(args, from)
	}
}

func (h *CommandHandler) handleWhoisCommand(args []string, disableFollow bool) {
	if len(args) < 1 {
		h.sendText("用法: /whois <domain.com>（/whoisfull 会跟随转发服务器，更慢但更全）")
		return
	}
	domain := strings.ToLower(args[0])

	res := h.Whois.Lookup(domain, disableFollow)
	if !res.Status {
		h.sendText(fmt.Sprintf("WHOIS 查询失败: %s\n原因: %s (耗时 %.2fs)", domain, res.Error, res.Time))
		return
	}

	text := fmt.Sprintf("%s\n耗时: %.2fs", FormatRecord(res.Result), res.Time)
	if disableFollow {
		buttons := [][]Button{{
			{Text: "🔎 深度查询", CallbackData: "whois_follow|" + domain},
			{Text: "🌐 RDAP", CallbackData: "rdap|" + domain},
		}}
		_ = h.Sender.SendWithButtons(context.Background(), text, buttons)
		return
	}
	h.sendText(text)
}

func (h *CommandHandler) sendText(msg string) {
	_ = h.Sender.Send(context.Background(), msg)
}

func formatOperator(u *tgbotapi.User) string {
	if u == nil {
		return "unknown"
	}
	if u.UserName != "" {
		return "@" + u.UserName
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	return fmt.Sprintf("id:%d", u.ID)
}
