package telegram

import (
	"fmt"
	"strings"

	"DomainW/tools"
)

// FormatRecord 把解析后的 WHOIS 记录渲染成消息文本。
func FormatRecord(record *tools.WhoisRecord) string {
	if record == nil {
		return "无数据"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("【WHOIS】%s\n", record.Domain))
	sb.WriteString(fmt.Sprintf("注册商: %s (IANA ID: %s)\n", record.Registrar, record.RegistrarIANAID))
	sb.WriteString(fmt.Sprintf("注册商链接: %s\n", record.RegistrarURL))
	sb.WriteString(fmt.Sprintf("WHOIS 服务器: %s\n", record.WhoisServer))
	sb.WriteString(fmt.Sprintf("创建时间: %s\n", record.CreationDate))
	sb.WriteString(fmt.Sprintf("更新时间: %s\n", record.UpdatedDate))
	sb.WriteString(fmt.Sprintf("到期时间: %s\n", record.ExpirationDate))

	if len(record.Status) > 0 {
		sb.WriteString("状态:\n")
		for _, s := range record.Status {
			if s.URL != "" {
				sb.WriteString(fmt.Sprintf("- %s (%s)\n", s.Status, s.URL))
			} else {
				sb.WriteString(fmt.Sprintf("- %s\n", s.Status))
			}
		}
	}

	sb.WriteString(fmt.Sprintf("注册人: %s\n", record.RegistrantOrg))
	sb.WriteString(fmt.Sprintf("地区: %s / %s\n", record.RegistrantProvince, record.RegistrantCountry))
	sb.WriteString(fmt.Sprintf("电话: %s\n", record.RegistrantPhone))
	sb.WriteString(fmt.Sprintf("邮箱: %s", record.RegistrantEmail))
	return sb.String()
}
