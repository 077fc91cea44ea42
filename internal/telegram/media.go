package telegram

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MaxMediaSize caps inbound voice notes and photos
const MaxMediaSize = 20 * 1024 * 1024 // 20MB

// DownloadFile fetches a file's bytes from the Telegram file server
func (b *Bot) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	if file.FileSize > MaxMediaSize {
		return nil, fmt.Errorf("file size %d exceeds maximum %d", file.FileSize, MaxMediaSize)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxMediaSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	b.logger.Debug().
		Str("file_id", fileID).
		Int("size", len(data)).
		Msg("File downloaded")

	return data, nil
}

// photoDataURL wraps photo bytes as a base64 data URL for the vision API
func photoDataURL(data []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
}

// largestPhoto returns the file ID of the highest-resolution variant.
// Telegram orders the sizes smallest first.
func largestPhoto(photos []tgbotapi.PhotoSize) string {
	if len(photos) == 0 {
		return ""
	}
	return photos[len(photos)-1].FileID
}
