package callback

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"DomainW/cfclient"
	"DomainW/internal/app"
	"DomainW/telegram"
	"DomainW/tools"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// HandleCallback 处理内联按钮回调。
// callbackData 格式：action|参数...，具体见各分支。
func HandleCallback(callbackData string, user *tgbotapi.User) {
	parts := strings.Split(callbackData, "|")
	if len(parts) < 2 {
		log.Printf("无效的回调数据: %s", callbackData)
		return
	}

	action := parts[0]
	operator := "unknown"
	if user != nil && user.UserName != "" {
		operator = user.UserName
	}

	log.Printf("处理回调: action=%s, data=%s, user=%s", action, callbackData, operator)

	switch action {
	case "whois_follow":
		// whois_follow|domain
		domain := strings.ToLower(parts[1])
		go func() {
			res := tools.NewWhoisLookup(0, 60*time.Second).Lookup(domain, false)
			if !res.Status {
				telegram.SendTelegramAlert(fmt.Sprintf("深度查询失败: %s\n原因: %s", domain, res.Error))
				return
			}
			telegram.SendTelegramAlert(fmt.Sprintf("%s\n耗时: %.2fs", telegram.FormatRecord(res.Result), res.Time))
		}()

	case "rdap":
		// rdap|domain
		domain := strings.ToLower(parts[1])
		go func() {
			record, err := app.NewRDAPClient().Query(context.Background(), domain)
			if err != nil {
				telegram.SendTelegramAlert(fmt.Sprintf("RDAP 查询失败: %s (%v)", domain, err))
				return
			}
			telegram.SendTelegramAlert("【RDAP】\n" + telegram.FormatRecord(record))
		}()

	case "pause":
		// pause|accountLabel|domain|yes/no
		if len(parts) < 4 {
			log.Printf("无效的暂停回调: %s", callbackData)
			return
		}
		accountLabel := parts[1]
		domain := strings.ToLower(parts[2])
		paused := parts[3] == "yes"

		account := cfclient.GetAccountByLabel(accountLabel)
		if account == nil {
			log.Printf("未找到账号标签: %s", accountLabel)
			telegram.SendTelegramAlert(fmt.Sprintf("操作失败：未找到账号 %s", accountLabel))
			return
		}

		go func() {
			err := cfclient.NewClient().PauseDomain(context.Background(), *account, domain, paused)
			verb := "暂停解析"
			if !paused {
				verb = "恢复解析"
			}
			if err != nil {
				telegram.SendTelegramAlert(fmt.Sprintf("%s %s失败: %s --- %s (%v)", operator, verb, domain, accountLabel, err))
				return
			}
			telegram.SendTelegramAlert(fmt.Sprintf("%s %s成功: %s --- %s", operator, verb, domain, accountLabel))
		}()
	}
}
