// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
)

// Error messages.
const (
	msgInternalError    = "Something went wrong. Please try again."
	msgUnknownCommand   = "Unknown command. Send /help to see what I can do."
	msgUseButtons       = "Use the buttons under the question, or send /help."
	msgStartFirst       = "Send /start to begin the quiz."
	msgChatNotAllowed   = "This quiz is already being played in another chat."
	msgQuestionExpired  = "This question has expired."
	msgAlreadyAnswered  = "You have already answered this question."
	msgAnswerFirst      = "Pick an image first, then move on to the next question."
	msgSoundUnavailable = "Sorry, the pronunciation is not available right now."
	msgFeedbackUsage    = "Tell me what you think: /feedback your message"
	msgFeedbackThanks   = "Thank you for your feedback!"
)

const msgHelp = `<b>Sight Words Quiz</b>

A word is shown with a few pictures. Tap <b>Select</b> under the picture that matches the word, or 🔊 to hear it.

/start - start a new quiz
/next - next question
/language - change the word list language
/score - show your score
/feedback <i>text</i> - send feedback
/help - this message`

const msgWelcome = "👋 <b>Sight Words Quiz</b>\n\nFind the picture that matches the word."

const msgChooseLanguage = "Select language:"

// formatCard renders the word card: the word with the running counters.
func formatCard(s entities.QuizSession) string {
	var sb strings.Builder

	if s.Question != nil {
		sb.WriteString(fmt.Sprintf("<b>%s</b>\n\n", html.EscapeString(s.Question.Target.Text)))
	}
	sb.WriteString(fmt.Sprintf("Score: %d | Attempts: %d", s.Score, s.Attempts))

	return sb.String()
}

// formatAnsweredCard renders the card after an answer, with the chosen option.
func formatAnsweredCard(s entities.QuizSession, optionIndex int) string {
	return fmt.Sprintf("%s\n\nYour choice: %d", formatCard(s), optionIndex+1)
}

// formatAnswer renders the feedback for an answer.
func formatAnswer(a entities.Answer) string {
	if a.Correct {
		return "🎉 " + html.EscapeString(a.Message)
	}
	return "😢 " + html.EscapeString(a.Message)
}

func formatScore(s entities.QuizSession) string {
	return fmt.Sprintf("<b>%s</b>\nScore: %d\nAttempts: %d",
		html.EscapeString(s.Language.DisplayName), s.Score, s.Attempts)
}

func formatLanguageChanged(lang entities.Language) string {
	return fmt.Sprintf("Language: <b>%s</b>", html.EscapeString(lang.DisplayName))
}
