package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
)

const (
	imagesDir = "word_images"
	soundsDir = "word_sounds"
)

// SoundService resolves asset paths and keeps the pronunciation cache filled.
type SoundService struct {
	rootDir string
	synth   Synthesizer
	logger  *zap.Logger
}

// NewSoundService creates a new SoundService rooted at the assets directory.
func NewSoundService(rootDir string, synth Synthesizer, logger *zap.Logger) *SoundService {
	return &SoundService{
		rootDir: rootDir,
		synth:   synth,
		logger:  logger,
	}
}

// ImagePath returns the image file of a word.
func (s *SoundService) ImagePath(w entities.Word) string {
	return filepath.Join(s.rootDir, imagesDir, w.Image)
}

// WordSoundPath returns where the pronunciation of w is cached.
// Words naming their own sound file use it, the rest get a file derived
// from the word text in a per-language directory.
func (s *SoundService) WordSoundPath(lang entities.Language, w entities.Word) string {
	if w.Sound != "" {
		return filepath.Join(s.rootDir, soundsDir, w.Sound)
	}
	return filepath.Join(s.rootDir, soundsDir, lang.Code, SafeName(w.Text, lang.Code)+".mp3")
}

// PhraseSoundPath returns where a spoken phrase is cached.
func (s *SoundService) PhraseSoundPath(lang entities.Language, text string) string {
	return filepath.Join(s.rootDir, soundsDir, SafeName(text, lang.Code)+".mp3")
}

// EnsureWordSound returns the pronunciation file of w, synthesizing it when missing.
func (s *SoundService) EnsureWordSound(ctx context.Context, lang entities.Language, w entities.Word) (string, error) {
	path := s.WordSoundPath(lang, w)
	if err := s.generateIfNotFound(ctx, lang.Code, w.Text, path); err != nil {
		return "", err
	}
	return path, nil
}

// EnsurePhraseSound returns the audio file of a phrase, synthesizing it when missing.
func (s *SoundService) EnsurePhraseSound(ctx context.Context, lang entities.Language, text string) (string, error) {
	path := s.PhraseSoundPath(lang, text)
	if err := s.generateIfNotFound(ctx, lang.Code, text, path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *SoundService) generateIfNotFound(ctx context.Context, languageCode, text, path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	s.logger.Info("generating missing sound",
		zap.String("language", languageCode),
		zap.String("text", text),
		zap.String("path", path),
	)

	audio, err := s.synth.Synthesize(ctx, text, languageCode)
	if err != nil {
		return fmt.Errorf("synthesize %q: %w", text, err)
	}

	return writeFileAtomic(path, audio)
}

// writeFileAtomic writes data next to path and renames it into place,
// so a failed write never leaves a truncated cache entry behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".sound-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}

	return nil
}

// SafeName turns text into a file name: every rune that is not a letter or
// digit becomes an underscore and the result is lower-cased using the
// casing rules of the given language.
func SafeName(text, languageCode string) string {
	replaced := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, text)

	tag, err := language.Parse(languageCode)
	if err != nil {
		tag = language.Und
	}

	return cases.Lower(tag).String(replaced)
}
