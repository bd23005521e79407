package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
)

// buildQuestionKeyboard builds the select and listen rows for a question.
func buildQuestionKeyboard(s entities.QuizSession) tgbotapi.InlineKeyboardMarkup {
	var selectRow, audioRow []tgbotapi.InlineKeyboardButton
	for i := range s.Question.Options {
		selectRow = append(selectRow, tgbotapi.NewInlineKeyboardButtonData(
			"Select "+optionLabel(i), buildAnswerCallback(s.ID, s.Round, i)))
		audioRow = append(audioRow, tgbotapi.NewInlineKeyboardButtonData(
			"🔊 "+optionLabel(i), buildAudioCallback(s.ID, s.Round, i)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(selectRow, audioRow)
}

// buildAnsweredKeyboard keeps only the listen row once the question is answered.
func buildAnsweredKeyboard(s entities.QuizSession) tgbotapi.InlineKeyboardMarkup {
	var audioRow []tgbotapi.InlineKeyboardButton
	for i := range s.Question.Options {
		audioRow = append(audioRow, tgbotapi.NewInlineKeyboardButtonData(
			"🔊 "+optionLabel(i), buildAudioCallback(s.ID, s.Round, i)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(audioRow)
}

// buildNextKeyboard builds the keyboard shown under the answer feedback.
func buildNextKeyboard(s entities.QuizSession) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Next question ▶️", buildNextCallback(s.ID)),
		),
	)
}

// buildLanguageKeyboard builds the language picker.
func buildLanguageKeyboard(current string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, lang := range entities.Languages() {
		label := lang.DisplayName
		if lang.Code == current {
			label = "✅ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildLanguageCallback(lang.Code)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
