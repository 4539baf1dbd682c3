package reporter

import (
	"fmt"

	"go-empleo-scraper/internal/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(cfg *config.Config) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{
		bot:    bot,
		chatID: cfg.TelegramChatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

// SendRunSummary posts a one-message digest of a finished scrape run.
func (t *TelegramReporter) SendRunSummary(keyword string, countries []string, found, persisted, failed int) error {
	text := fmt.Sprintf(
		"🏁 <b>Scrape finished</b>\n"+
			"🔍 %s (%d countries)\n"+
			"📦 %d jobs found\n"+
			"💾 %d persisted, %d failed",
		keyword, len(countries), found, persisted, failed)
	return t.SendMessage(text)
}
