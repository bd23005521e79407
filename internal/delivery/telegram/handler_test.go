package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap/zaptest"

	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
	"github.com/aliskhannn/sight-words-bot/internal/service"
	"github.com/aliskhannn/sight-words-bot/internal/storage"
)

const testChatID int64 = 100

type fakeBot struct {
	nextID   int
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	albums   []tgbotapi.MediaGroupConfig
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.nextID++
	b.sent = append(b.sent, c)
	return tgbotapi.Message{MessageID: b.nextID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) SendMediaGroup(config tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error) {
	b.albums = append(b.albums, config)
	return make([]tgbotapi.Message, len(config.Media)), nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	ch := make(chan tgbotapi.Update)
	close(ch)
	return ch
}

func (b *fakeBot) reset() {
	b.sent, b.requests, b.albums = nil, nil, nil
}

// lastNotice returns the text of the last callback answer.
func (b *fakeBot) lastNotice(t *testing.T) string {
	t.Helper()
	if len(b.requests) == 0 {
		t.Fatal("Callback was not answered")
	}
	cb, ok := b.requests[len(b.requests)-1].(tgbotapi.CallbackConfig)
	if !ok {
		t.Fatalf("Expected CallbackConfig, got %T", b.requests[len(b.requests)-1])
	}
	return cb.Text
}

func (b *fakeBot) messages() []tgbotapi.MessageConfig {
	var out []tgbotapi.MessageConfig
	for _, c := range b.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

func (b *fakeBot) audios() []tgbotapi.AudioConfig {
	var out []tgbotapi.AudioConfig
	for _, c := range b.sent {
		if a, ok := c.(tgbotapi.AudioConfig); ok {
			out = append(out, a)
		}
	}
	return out
}

type fakeWords map[string][]entities.Word

func (f fakeWords) GetByLanguage(_ context.Context, lang entities.Language) ([]entities.Word, error) {
	return f[lang.Code], nil
}

type fakeSounds struct {
	err error
}

func (f fakeSounds) ImagePath(w entities.Word) string {
	return "images/" + w.Image
}

func (f fakeSounds) EnsureWordSound(_ context.Context, lang entities.Language, w entities.Word) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "sounds/" + lang.Code + "/" + w.Text + ".mp3", nil
}

func (f fakeSounds) EnsurePhraseSound(_ context.Context, _ entities.Language, text string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "sounds/" + text + ".mp3", nil
}

func newTestHandler(t *testing.T, sounds fakeSounds) (*Handler, *fakeBot, *storage.SessionStorage) {
	t.Helper()

	words := fakeWords{"en": nil, "el": nil}
	for i := 0; i < 6; i++ {
		words["en"] = append(words["en"], entities.Word{
			Text:       fmt.Sprintf("word%d", i),
			Image:      fmt.Sprintf("word%d.png", i),
			Definition: fmt.Sprintf("definition %d", i),
		})
		words["el"] = append(words["el"], entities.Word{
			Text:  fmt.Sprintf("λέξη%d", i),
			Image: fmt.Sprintf("word%d.png", i),
		})
	}

	logger := zaptest.NewLogger(t)
	bot := &fakeBot{}
	sessions := storage.NewSessionStorage(0)
	quiz := service.NewQuizService(words, service.NewQuestionSelector(3, 1), logger)

	return NewHandler(bot, logger, quiz, sounds, sessions, "en"), bot, sessions
}

func commandUpdate(chatID int64, text string) tgbotapi.Update {
	cmd := strings.Fields(text)[0]
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 1,
			From:      &tgbotapi.User{ID: chatID, UserName: "learner"},
			Chat:      &tgbotapi.Chat{ID: chatID},
			Text:      text,
			Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
		},
	}
}

func callbackUpdate(chatID int64, messageID int, data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb",
			From: &tgbotapi.User{ID: chatID},
			Message: &tgbotapi.Message{
				MessageID: messageID,
				Chat:      &tgbotapi.Chat{ID: chatID},
			},
			Data: data,
		},
	}
}

func currentSession(t *testing.T, sessions *storage.SessionStorage) entities.QuizSession {
	t.Helper()
	s, ok := sessions.Get()
	if !ok {
		t.Fatal("Expected a stored session")
	}
	return s
}

func wrongIndex(s entities.QuizSession) int {
	for i, o := range s.Question.Options {
		if !o.Equal(s.Question.Target) {
			return i
		}
	}
	return -1
}

func TestHandlerStart(t *testing.T) {
	h, bot, sessions := newTestHandler(t, fakeSounds{})
	ctx := context.Background()

	h.handleUpdate(ctx, commandUpdate(testChatID, "/start"))

	s := currentSession(t, sessions)
	if s.Language.Code != "en" || s.Round != 1 || s.State != entities.QuizStateQuestionShown {
		t.Fatalf("Unexpected session after /start: %+v", s)
	}

	if len(bot.albums) != 1 {
		t.Fatalf("Expected one media group, got %d", len(bot.albums))
	}
	if got := len(bot.albums[0].Media); got != len(s.Question.Options) {
		t.Errorf("Expected %d images, got %d", len(s.Question.Options), got)
	}

	msgs := bot.messages()
	if len(msgs) != 2 {
		t.Fatalf("Expected welcome and word card, got %d messages", len(msgs))
	}

	card := msgs[1]
	if !strings.Contains(card.Text, "<b>"+s.Question.Target.Text+"</b>") {
		t.Errorf("Card does not show the word: %q", card.Text)
	}
	if !strings.Contains(card.Text, "Score: 0 | Attempts: 0") {
		t.Errorf("Card does not show the counters: %q", card.Text)
	}

	kb, ok := card.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("Expected inline keyboard, got %T", card.ReplyMarkup)
	}
	if len(kb.InlineKeyboard) != 2 || len(kb.InlineKeyboard[0]) != len(s.Question.Options) {
		t.Errorf("Unexpected keyboard layout: %+v", kb.InlineKeyboard)
	}
}

func TestHandlerOtherChatRejected(t *testing.T) {
	h, bot, _ := newTestHandler(t, fakeSounds{})
	ctx := context.Background()

	h.handleUpdate(ctx, commandUpdate(testChatID, "/start"))
	bot.reset()

	h.handleUpdate(ctx, commandUpdate(testChatID+1, "/start"))
	msgs := bot.messages()
	if len(msgs) != 1 || msgs[0].Text != msgChatNotAllowed {
		t.Errorf("Expected rejection, got %+v", msgs)
	}

	bot.reset()
	h.handleUpdate(ctx, commandUpdate(testChatID+1, "/score"))
	msgs = bot.messages()
	if len(msgs) != 1 || msgs[0].Text != msgStartFirst {
		t.Errorf("Expected start hint, got %+v", msgs)
	}
}

func TestHandlerAnswerFlow(t *testing.T) {
	h, bot, sessions := newTestHandler(t, fakeSounds{})
	ctx := context.Background()

	h.handleUpdate(ctx, commandUpdate(testChatID, "/start"))
	s := currentSession(t, sessions)
	bot.reset()

	correct := s.Question.CorrectIndex()
	h.handleUpdate(ctx, callbackUpdate(testChatID, 42, buildAnswerCallback(s.ID, s.Round, correct)))

	answered := currentSession(t, sessions)
	if answered.Score != 1 || answered.Attempts != 1 || !answered.Answered() {
		t.Fatalf("Expected 1/1 answered, got %d/%d %q", answered.Score, answered.Attempts, answered.State)
	}
	if notice := bot.lastNotice(t); notice != "" {
		t.Errorf("Unexpected notice %q", notice)
	}

	var edit tgbotapi.EditMessageTextConfig
	for _, c := range bot.sent {
		if e, ok := c.(tgbotapi.EditMessageTextConfig); ok {
			edit = e
		}
	}
	if edit.MessageID != 42 || !strings.Contains(edit.Text, "Score: 1 | Attempts: 1") {
		t.Errorf("Card not updated: %+v", edit)
	}

	msgs := bot.messages()
	if len(msgs) != 1 || !strings.HasPrefix(msgs[0].Text, "🎉 That's correct!") {
		t.Fatalf("Expected success feedback, got %+v", msgs)
	}
	if !strings.Contains(msgs[0].Text, s.Question.Target.Definition) {
		t.Errorf("Feedback lacks the definition: %q", msgs[0].Text)
	}

	audios := bot.audios()
	if len(audios) != 1 || audios[0].Title != service.PhraseCorrect {
		t.Errorf("Expected spoken feedback, got %+v", audios)
	}

	t.Run("Second answer is rejected", func(t *testing.T) {
		bot.reset()
		h.handleUpdate(ctx, callbackUpdate(testChatID, 42, buildAnswerCallback(s.ID, s.Round, wrongIndex(s))))

		if notice := bot.lastNotice(t); notice != msgAlreadyAnswered {
			t.Errorf("Expected %q, got %q", msgAlreadyAnswered, notice)
		}
		after := currentSession(t, sessions)
		if after.Score != 1 || after.Attempts != 1 {
			t.Errorf("Counters changed: %d/%d", after.Score, after.Attempts)
		}
	})

	t.Run("Stale round is ignored", func(t *testing.T) {
		bot.reset()
		h.handleUpdate(ctx, callbackUpdate(testChatID, 42, buildAnswerCallback(s.ID, s.Round+5, 0)))

		if notice := bot.lastNotice(t); notice != msgQuestionExpired {
			t.Errorf("Expected %q, got %q", msgQuestionExpired, notice)
		}
		if len(bot.sent) != 0 {
			t.Errorf("Expected nothing sent, got %d", len(bot.sent))
		}
	})

	t.Run("Next question", func(t *testing.T) {
		bot.reset()
		h.handleUpdate(ctx, callbackUpdate(testChatID, 43, buildNextCallback(s.ID)))

		next := currentSession(t, sessions)
		if next.Round != 2 || next.State != entities.QuizStateQuestionShown {
			t.Fatalf("Expected round 2 shown, got round %d %q", next.Round, next.State)
		}
		if next.Score != 1 || next.Attempts != 1 {
			t.Errorf("Counters changed: %d/%d", next.Score, next.Attempts)
		}
		if len(bot.albums) != 1 {
			t.Errorf("Expected new option images, got %d albums", len(bot.albums))
		}
	})
}

func TestHandlerWrongAnswer(t *testing.T) {
	h, bot, sessions := newTestHandler(t, fakeSounds{})
	ctx := context.Background()

	h.handleUpdate(ctx, commandUpdate(testChatID, "/start"))
	s := currentSession(t, sessions)
	bot.reset()

	h.handleUpdate(ctx, callbackUpdate(testChatID, 5, buildAnswerCallback(s.ID, s.Round, wrongIndex(s))))

	after := currentSession(t, sessions)
	if after.Score != 0 || after.Attempts != 1 {
		t.Errorf("Expected 0/1, got %d/%d", after.Score, after.Attempts)
	}

	msgs := bot.messages()
	want := "😢 Sorry, that&#39;s incorrect. The correct answer was " + s.Question.Target.Text + "."
	if len(msgs) != 1 || !strings.HasPrefix(msgs[0].Text, want) {
		t.Errorf("Expected failure feedback %q, got %+v", want, msgs)
	}
}

func TestHandlerNextRequiresAnswer(t *testing.T) {
	h, bot, sessions := newTestHandler(t, fakeSounds{})
	ctx := context.Background()

	h.handleUpdate(ctx, commandUpdate(testChatID, "/start"))
	s := currentSession(t, sessions)
	bot.reset()

	h.handleUpdate(ctx, commandUpdate(testChatID, "/next"))
	msgs := bot.messages()
	if len(msgs) != 1 || msgs[0].Text != msgAnswerFirst {
		t.Errorf("Expected %q, got %+v", msgAnswerFirst, msgs)
	}

	bot.reset()
	h.handleUpdate(ctx, callbackUpdate(testChatID, 9, buildNextCallback(s.ID)))
	if notice := bot.lastNotice(t); notice != msgAnswerFirst {
		t.Errorf("Expected %q, got %q", msgAnswerFirst, notice)
	}
	if currentSession(t, sessions).Round != 1 {
		t.Error("Round advanced without an answer")
	}
}

func TestHandlerAudio(t *testing.T) {
	t.Run("Sends pronunciation", func(t *testing.T) {
		h, bot, sessions := newTestHandler(t, fakeSounds{})
		ctx := context.Background()

		h.handleUpdate(ctx, commandUpdate(testChatID, "/start"))
		s := currentSession(t, sessions)
		bot.reset()

		h.handleUpdate(ctx, callbackUpdate(testChatID, 3, buildAudioCallback(s.ID, s.Round, 0)))

		audios := bot.audios()
		if len(audios) != 1 {
			t.Fatalf("Expected one audio, got %d", len(audios))
		}
		want := "sounds/en/" + s.Question.Options[0].Text + ".mp3"
		if path := audios[0].File.(tgbotapi.FilePath); string(path) != want {
			t.Errorf("Expected %q, got %q", want, path)
		}
	})

	t.Run("Unavailable sound", func(t *testing.T) {
		h, bot, sessions := newTestHandler(t, fakeSounds{err: errors.New("offline")})
		ctx := context.Background()

		h.handleUpdate(ctx, commandUpdate(testChatID, "/start"))
		s := currentSession(t, sessions)
		bot.reset()

		h.handleUpdate(ctx, callbackUpdate(testChatID, 3, buildAudioCallback(s.ID, s.Round, 0)))

		if notice := bot.lastNotice(t); notice != msgSoundUnavailable {
			t.Errorf("Expected %q, got %q", msgSoundUnavailable, notice)
		}
		if len(bot.audios()) != 0 {
			t.Error("Expected no audio")
		}
	})
}

func TestHandlerLanguageChange(t *testing.T) {
	h, bot, sessions := newTestHandler(t, fakeSounds{})
	ctx := context.Background()

	h.handleUpdate(ctx, commandUpdate(testChatID, "/start"))
	s := currentSession(t, sessions)
	h.handleUpdate(ctx, callbackUpdate(testChatID, 2, buildAnswerCallback(s.ID, s.Round, s.Question.CorrectIndex())))
	bot.reset()

	h.handleUpdate(ctx, callbackUpdate(testChatID, 7, buildLanguageCallback("el")))

	changed := currentSession(t, sessions)
	if changed.Language.Code != "el" {
		t.Fatalf("Expected el, got %q", changed.Language.Code)
	}
	if changed.ID == s.ID {
		t.Error("Expected a fresh session")
	}
	if changed.Score != 0 || changed.Attempts != 0 {
		t.Errorf("Expected reset counters, got %d/%d", changed.Score, changed.Attempts)
	}
	if len(bot.albums) != 1 {
		t.Errorf("Expected the first question to be shown, got %d albums", len(bot.albums))
	}

	t.Run("Old buttons expire", func(t *testing.T) {
		bot.reset()
		h.handleUpdate(ctx, callbackUpdate(testChatID, 2, buildNextCallback(s.ID)))
		if notice := bot.lastNotice(t); notice != msgQuestionExpired {
			t.Errorf("Expected %q, got %q", msgQuestionExpired, notice)
		}
	})

	t.Run("Restart keeps the language", func(t *testing.T) {
		h.handleUpdate(ctx, commandUpdate(testChatID, "/start"))
		if got := currentSession(t, sessions).Language.Code; got != "el" {
			t.Errorf("Expected el after /start, got %q", got)
		}
	})
}

func TestHandlerFeedback(t *testing.T) {
	h, bot, _ := newTestHandler(t, fakeSounds{})
	ctx := context.Background()

	h.handleUpdate(ctx, commandUpdate(testChatID, "/feedback"))
	if msgs := bot.messages(); len(msgs) != 1 || msgs[0].Text != msgFeedbackUsage {
		t.Errorf("Expected usage hint, got %+v", msgs)
	}

	bot.reset()
	h.handleUpdate(ctx, commandUpdate(testChatID, "/feedback more animals please"))
	if msgs := bot.messages(); len(msgs) != 1 || msgs[0].Text != msgFeedbackThanks {
		t.Errorf("Expected thanks, got %+v", msgs)
	}
}

func TestHandlerRunStopsWhenUpdatesClose(t *testing.T) {
	h, _, _ := newTestHandler(t, fakeSounds{})
	if err := h.Run(context.Background()); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
