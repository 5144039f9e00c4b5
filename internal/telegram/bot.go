package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot pushes operator notifications: challenge alerts while the crawl is
// parked on manual intervention, and a summary when a run finishes.
type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

// SendChallengeAlert pings the operator that the login flow is waiting on
// a human.
func (b *Bot) SendChallengeAlert() error {
	msg := tgbotapi.NewMessage(b.chatID,
		"🧩 Login hit a challenge. Solve the CAPTCHA in the browser window, then press Enter in the console to resume.")
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
