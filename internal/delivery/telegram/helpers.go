package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func newHTMLEdit(chatID int64, msgID int, text string, kb *tgbotapi.InlineKeyboardMarkup) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	if kb != nil {
		edit.ReplyMarkup = kb
	}
	return edit
}

func newAudio(chatID int64, path, title string) tgbotapi.AudioConfig {
	a := tgbotapi.NewAudio(chatID, tgbotapi.FilePath(path))
	a.Title = title
	a.Caption = title
	return a
}

// optionLabel is the 1-based label shown for an option.
func optionLabel(index int) string {
	return strconv.Itoa(index + 1)
}
