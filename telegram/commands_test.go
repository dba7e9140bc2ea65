package telegram

import (
	"context"
	"strings"
	"testing"
	"time"

	"DomainW/cfclient"
	"DomainW/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeZoneClient struct {
	zone cfclient.ZoneDetail
}

func (f *fakeZoneClient) ListZones(ctx context.Context, acc config.CF) ([]cfclient.ZoneDetail, error) {
	return []cfclient.ZoneDetail{f.zone}, nil
}

func (f *fakeZoneClient) GetZoneDetails(ctx context.Context, acc config.CF, name string) (cfclient.ZoneDetail, error) {
	if name == f.zone.Name {
		return f.zone, nil
	}
	return cfclient.ZoneDetail{}, cfclient.ErrZoneNotFound
}

func (f *fakeZoneClient) PauseDomain(ctx context.Context, acc config.CF, name string, paused bool) error {
	return nil
}

func TestStatusCommandAttributesOperatorPerMessage(t *testing.T) {
	sender := &captureSender{}
	h := &CommandHandler{
		CFClient: &fakeZoneClient{zone: cfclient.ZoneDetail{Name: "example.com", Status: "active"}},
		Accounts: []config.CF{{Label: "main"}},
		Sender:   sender,
	}

	h.handleStatusCommand([]string{"example.com"}, &tgbotapi.User{UserName: "alice"})
	h.handleStatusCommand([]string{"example.com"}, &tgbotapi.User{UserName: "bob"})

	if len(sender.messages) != 2 {
		t.Fatalf("messages = %+v, want 2", sender.messages)
	}
	if !strings.Contains(sender.messages[0], "@alice") {
		t.Errorf("first message = %q, want @alice", sender.messages[0])
	}
	if !strings.Contains(sender.messages[1], "@bob") {
		t.Errorf("second message = %q, want @bob", sender.messages[1])
	}
}

func TestStatusCommandZoneNotFound(t *testing.T) {
	sender := &captureSender{}
	h := &CommandHandler{
		CFClient: &fakeZoneClient{zone: cfclient.ZoneDetail{Name: "example.com", Status: "active"}},
		Accounts: []config.CF{{Label: "main"}},
		Sender:   sender,
	}

	h.handleStatusCommand([]string{"other.example.org"}, &tgbotapi.User{UserName: "alice"})

	if len(sender.messages) != 1 || !strings.Contains(sender.messages[0], "不属于任何") {
		t.Errorf("messages = %+v", sender.messages)
	}
}

func TestFormatOperator(t *testing.T) {
	cases := []struct {
		name string
		user *tgbotapi.User
		want string
	}{
		{"nil", nil, "unknown"},
		{"username", &tgbotapi.User{UserName: "alice"}, "@alice"},
		{"full name", &tgbotapi.User{FirstName: "Alice", LastName: "Liu"}, "Alice Liu"},
		{"id only", &tgbotapi.User{ID: 42}, "id:42"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatOperator(tt.user); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBotSenderClose(t *testing.T) {
	sender := &BotSender{rate: time.NewTicker(time.Millisecond)}
	sender.Close()

	// Stop 前可能已有一次 tick 入队，排空后不应再有新 tick
	select {
	case <-sender.rate.C:
	default:
	}
	time.Sleep(10 * time.Millisecond)
	select {
	case <-sender.rate.C:
		t.Error("ticker still firing after Close")
	default:
	}
}
