package telegram

import (
	"context"
	"fmt"
	"strings"

	"DomainW/domain"
)

// ExpiryNotifier 把检测结果发到 Telegram 群。
type ExpiryNotifier struct {
	Sender Sender
}

func NewExpiryNotifier(sender Sender) *ExpiryNotifier {
	if sender == nil {
		sender = DefaultSender()
	}
	return &ExpiryNotifier{Sender: sender}
}

// Notify 逐个发送临近到期的域名，附带深度查询按钮。
func (n *ExpiryNotifier) Notify(ctx context.Context, domains []domain.DomainSource) error {
	for _, ds := range domains {
		msg := fmt.Sprintf("⚠️【域名即将到期】\n域名: %s\n来源: %s\n到期时间: %s", ds.Domain, ds.Source, ds.Expiry)

		buttons := [][]Button{{
			{Text: "🔎 深度查询", CallbackData: "whois_follow|" + ds.Domain},
			{Text: "🌐 RDAP", CallbackData: "rdap|" + ds.Domain},
		}}
		if label, ok := cloudflareLabel(ds.Source); ok {
			buttons = append(buttons, []Button{
				{Text: "⏸ 暂停解析", CallbackData: fmt.Sprintf("pause|%s|%s|yes", label, ds.Domain)},
			})
		}

		if err := n.Sender.SendWithButtons(ctx, msg, buttons); err != nil {
			return err
		}
	}
	return nil
}

// NotifyFailures 汇总一条失败报告。
func (n *ExpiryNotifier) NotifyFailures(ctx context.Context, failures []domain.FailureRecord) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("【检测失败】共 %d 个域名:\n", len(failures)))
	for _, f := range failures {
		sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", f.Domain, f.Source, f.Reason))
	}
	return n.Sender.Send(ctx, sb.String())
}

// cloudflareLabel 从来源串 cloudflare:<label> 里取出账号标签。
func cloudflareLabel(source string) (string, bool) {
	label, ok := strings.CutPrefix(source, "cloudflare:")
	if !ok || label == "" {
		return "", false
	}
	return label, true
}
