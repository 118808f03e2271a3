package telegram

import (
	"fmt"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/rs/zerolog/log"
)

const (
	telegramBotToken = "TELEGRAM_BOT_TOKEN"
	telegramChatID   = "TELEGRAM_CHAT_ID"
)

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot pushes fraud alerts to a telegram chat.
type Bot struct {
	bot    botAPI
	chatID int64
}

// NewBot creates a bot from the environment token and chat id.
func NewBot() (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(os.Getenv(telegramBotToken))
	if err != nil {
		return nil, fmt.Errorf("error creating bot: %w", err)
	}
	chatIDProperty := os.Getenv(telegramChatID)
	chatID, err := strconv.ParseInt(chatIDProperty, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("error parsing chat ID: %w", err)
	}
	bot.Buffer = 0
	return &Bot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Send pushes the message to the configured chat.
func (b *Bot) Send(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, message)
	sent, err := b.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("could not send message: %w", err)
	}
	log.Debug().Int("message", sent.MessageID).Msg("sent alert")
	return nil
}
