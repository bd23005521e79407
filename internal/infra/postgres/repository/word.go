package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
	"github.com/aliskhannn/sight-words-bot/internal/infra/postgres"
)

var ErrNoWords = errors.New("no words stored for language")

const schema = `
	CREATE TABLE IF NOT EXISTS words (
		language   TEXT    NOT NULL,
		position   INTEGER NOT NULL,
		word       TEXT    NOT NULL,
		image      TEXT    NOT NULL DEFAULT '',
		sound      TEXT    NOT NULL DEFAULT '',
		definition TEXT    NOT NULL DEFAULT '',
		PRIMARY KEY (language, position)
	)
`

var wordColumns = []string{"language", "position", "word", "image", "sound", "definition"}

// WordRepository stores word lists in PostgreSQL.
type WordRepository struct {
	db postgres.DBTX
}

// NewWordRepository creates a new WordRepository with the provided database pool.
func NewWordRepository(db postgres.DBTX) *WordRepository {
	return &WordRepository{db: db}
}

// EnsureSchema creates the words table when it does not exist.
func (r *WordRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create words table: %w", err)
	}
	return nil
}

// GetByLanguage returns the words of a language in list order.
func (r *WordRepository) GetByLanguage(ctx context.Context, lang entities.Language) ([]entities.Word, error) {
	query := `
		SELECT word, image, sound, definition
		FROM words
		WHERE language = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, lang.Code)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var words []entities.Word
	for rows.Next() {
		var w entities.Word
		if err := rows.Scan(&w.Text, &w.Image, &w.Sound, &w.Definition); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoWords, lang.Code)
	}

	return words, nil
}

// ReplaceLanguageWithTx replaces all words of a language within a transaction.
func (r *WordRepository) ReplaceLanguageWithTx(
	ctx context.Context,
	tx pgx.Tx,
	lang entities.Language,
	words []entities.Word,
) (int64, error) {
	if _, err := tx.Exec(ctx, `DELETE FROM words WHERE language = $1`, lang.Code); err != nil {
		return 0, fmt.Errorf("delete words: %w", err)
	}

	rows := make([][]any, 0, len(words))
	for i, w := range words {
		rows = append(rows, []any{lang.Code, i, w.Text, w.Image, w.Sound, w.Definition})
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"words"}, wordColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy words: %w", err)
	}

	return n, nil
}
