package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/stretchr/testify/assert"
)

type mockAPI struct {
	sent []tgbotapi.Chattable
}

func (m *mockAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.sent = append(m.sent, c)
	return tgbotapi.Message{MessageID: len(m.sent)}, nil
}

func TestBot_Send(t *testing.T) {

	api := &mockAPI{}
	bot := &Bot{
		bot:    api,
		chatID: 42,
	}

	assert.NoError(t, bot.Send("blocked transaction"))
	assert.Equal(t, 1, len(api.sent))

	message, ok := api.sent[0].(tgbotapi.MessageConfig)
	assert.True(t, ok)
	assert.Equal(t, int64(42), message.ChatID)
	assert.Equal(t, "blocked transaction", message.Text)
}
