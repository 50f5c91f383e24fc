package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"construtora/internal/logging"
	"construtora/internal/models"
)

type TelegramChannel struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramChannel authenticates the bot token against the Bot API.
func NewTelegramChannel(botToken string) (*TelegramChannel, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	logging.Logger.Infof("[tg][init] authorized as @%s", bot.Self.UserName)
	return &TelegramChannel{bot: bot}, nil
}

func (t *TelegramChannel) Name() string { return "telegram" }

func (t *TelegramChannel) Send(_ context.Context, to *models.User, n Notice) error {
	if t == nil || t.bot == nil || to.TelegramChatID == nil || *to.TelegramChatID == 0 {
		logging.Logger.Debugf("[tg][skip] user=%d has no chat id", to.ID)
		return nil
	}
	msg := tgbotapi.NewMessage(*to.TelegramChatID, telegramBody(n))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	return nil
}

// telegramBody renders n for parse_mode=HTML, which has no block tags, so
// lines are separated by newlines.
func telegramBody(n Notice) string {
	var b strings.Builder
	b.WriteString("📌 " + html.EscapeString(n.Heading) + "\n")
	b.WriteString("• <b>" + html.EscapeString(n.Title) + "</b>")
	for _, f := range n.Fields {
		b.WriteString("\n• " + html.EscapeString(f.Label) + ": <code>" + html.EscapeString(f.Value) + "</code>")
	}
	return b.String()
}
