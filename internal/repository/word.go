package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
)

var (
	ErrEmptyWordList = errors.New("word list is empty")
	ErrMissingColumn = errors.New("missing column")
)

// CSV header names.
const (
	columnWord       = "Word"
	columnImage      = "Image"
	columnSound      = "Sound"
	columnDefinition = "Definition"
)

// WordRepository provides access to the word lists stored as CSV files
// in the assets root directory. Lists are read once per language.
type WordRepository struct {
	rootDir string

	mu    sync.RWMutex
	cache map[string][]entities.Word
}

// NewWordRepository creates a new WordRepository reading from rootDir.
func NewWordRepository(rootDir string) *WordRepository {
	return &WordRepository{
		rootDir: rootDir,
		cache:   make(map[string][]entities.Word),
	}
}

// GetByLanguage returns the words of a language in file order.
func (r *WordRepository) GetByLanguage(_ context.Context, lang entities.Language) ([]entities.Word, error) {
	r.mu.RLock()
	words, ok := r.cache[lang.Code]
	r.mu.RUnlock()
	if ok {
		return words, nil
	}

	path := filepath.Join(r.rootDir, lang.WordsFile)
	words, err := LoadWords(path, lang.WordColumn)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[lang.Code] = words
	r.mu.Unlock()

	return words, nil
}

// LoadWords reads a word list CSV. The word text is taken from wordColumn;
// image, sound and definition are looked up by header name. The sound
// column names a recording of the Word column, so it is only kept when
// the word text comes from that column.
func LoadWords(path string, wordColumn int) ([]entities.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	words, err := parseWords(f, wordColumn)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return words, nil
}

func parseWords(src io.Reader, wordColumn int) ([]entities.Word, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyWordList
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	for _, name := range []string{columnWord, columnImage, columnSound, columnDefinition} {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	if wordColumn < 0 || wordColumn >= len(header) {
		return nil, fmt.Errorf("%w: word column %d", ErrMissingColumn, wordColumn)
	}

	keepSound := wordColumn == columns[columnWord]

	var words []entities.Word
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		text := normalize(field(record, wordColumn))
		if text == "" {
			continue
		}

		w := entities.Word{
			Text:       text,
			Image:      strings.TrimSpace(field(record, columns[columnImage])),
			Definition: strings.TrimSpace(field(record, columns[columnDefinition])),
		}
		if keepSound {
			w.Sound = strings.TrimSpace(field(record, columns[columnSound]))
		}

		words = append(words, w)
	}

	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}

	return words, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// normalize brings word text to NFC and collapses whitespace, so the same
// word typed with different Unicode forms compares equal.
func normalize(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}
