// Package tts synthesizes pronunciation audio with the Google Translate
// text-to-speech endpoint.
package tts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/text/language"
)

const (
	DefaultBaseURL = "https://translate.google.com/translate_tts"
	DefaultTimeout = 10 * time.Second

	// maxTextLength is the longest text the endpoint accepts in one request.
	maxTextLength = 200

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

var (
	ErrTextTooLong      = errors.New("text too long for synthesis")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrInvalidLanguage  = errors.New("invalid language code")
)

// Client requests MP3 audio for short texts.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Client. Empty baseURL and zero timeout fall back to defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Synthesize returns MP3 audio of text spoken in the given language.
func (c *Client) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	if len([]rune(text)) > maxTextLength {
		return nil, fmt.Errorf("%w: %d runes", ErrTextTooLong, len([]rune(text)))
	}

	tag, err := language.Parse(languageCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLanguage, languageCode)
	}
	base, _ := tag.Base()

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", base.String())
	params.Set("client", "tw-ob")
	params.Set("textlen", strconv.Itoa(len([]rune(text))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// The endpoint rejects requests without a browser user agent.
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	return audio, nil
}
