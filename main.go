package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"DomainW/callback"
	"DomainW/cfclient"
	"DomainW/config"
	"DomainW/domain"
	"DomainW/internal/app"
	"DomainW/scheduler"
	"DomainW/telegram"
	"DomainW/tools"
)

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	cfg := config.Cfg
	cfclient.SetAccounts(cfg.CloudflareAccounts)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var sender telegram.Sender
	if cfg.Telegram.BotToken != "" {
		botSender, err := telegram.NewBotSender(cfg.Telegram.BotToken, cfg.Telegram.ChatID, 3, time.Second, 30*time.Second)
		if err != nil {
			log.Fatalf("初始化 Telegram 失败: %v", err)
		}
		defer botSender.Close()
		sender = botSender
	} else {
		sender = telegram.NoopSender{}
		log.Printf("未配置 Telegram，通知将被丢弃")
	}

	cf := cfclient.NewClient()
	whoisTimeout := time.Duration(cfg.Whois.TimeoutSeconds) * time.Second
	rdapClient := app.NewRDAPClient()

	var repo domain.Repository
	if cfg.ResultFile != "" {
		repo = domain.NewFileRepository(cfg.ResultFile)
	}

	checker := &app.ExpiryCheckerService{
		Whois:        app.NewDefaultWhoisClient(cfg.Whois.MaxFollow, whoisTimeout, true),
		RDAP:         rdapClient,
		Repo:         repo,
		AlertWithin:  app.AlertDaysDuration(cfg.AlertDays),
		RateLimit:    time.Duration(cfg.Whois.RateLimitMs) * time.Millisecond,
		QueryTimeout: whoisTimeout,
	}

	collector := &app.Collector{
		Service:  domain.NewService(cf),
		Accounts: cfg.CloudflareAccounts,
		Files:    cfg.DomainFiles,
		ACM:      &app.ACMCollector{Cfg: cfg.ACM},
	}

	commands := telegram.NewCommandHandler(
		tools.NewWhoisLookup(cfg.Whois.MaxFollow, whoisTimeout),
		rdapClient, cf, sender, cfg.CloudflareAccounts, cfg.Telegram.ChatID,
	)

	go func() {
		if err := sender.StartListener(ctx, callback.HandleCallback, commands.HandleMessage); err != nil && ctx.Err() == nil {
			log.Printf("Telegram 监听退出: %v", err)
		}
	}()

	application := &app.App{
		Collector: collector,
		Checker:   checker,
		Notifier:  telegram.NewExpiryNotifier(sender),
		Scheduler: scheduler.NewDailyScheduler(),
		AlertHour: cfg.AlertHour,
		AlertMin:  cfg.AlertMin,
	}
	if err := application.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("运行失败: %v", err)
	}
	log.Printf("已退出")
}
