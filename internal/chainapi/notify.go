package chainapi

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/PaulSonOfLars/gotgbot/v2"
)

func EscapeMarkdownV2(text string) string {
	specialChars := []string{"_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "-", "=", "|", "{", "}", ".", "!"}
	for _, char := range specialChars {
		text = strings.ReplaceAll(text, char, "\\"+char)
	}
	return text
}

// notifyFinance posts privileged-operation notices to the finance chat.
// Best effort: a missing token or a Telegram outage must never fail a write
// that already confirmed on chain.
func (app *App) notifyFinance(msg string) {
	if err := sendTelegramMessage(msg); err != nil {
		fmt.Println("[[Notify]]", err.Error())
	}
}

func sendTelegramMessage(msg string) error {
	token := os.Getenv("TELEGRAM_TOKEN")
	if token == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is not set")
	}
	chatId := os.Getenv("FINANCE_CHAT_ID")
	if chatId == "" {
		return fmt.Errorf("FINANCE_CHAT_ID is not set")
	}
	chatIdInt, err := strconv.ParseInt(chatId, 10, 64)
	if err != nil {
		return err
	}
	bot, err := gotgbot.NewBot(token, nil)
	if err != nil {
		return err
	}
	_, err = bot.SendMessage(chatIdInt, EscapeMarkdownV2(msg), &gotgbot.SendMessageOpts{
		ParseMode: "MarkdownV2",
		LinkPreviewOptions: &gotgbot.LinkPreviewOptions{
			IsDisabled: true,
		},
	})
	return err
}
