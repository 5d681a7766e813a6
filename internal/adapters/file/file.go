package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/rs/zerolog/log"
)

// DefaultMaxSize caps attachment downloads at 1 MiB.
const DefaultMaxSize = 1 << 20

var (
	ErrTooLarge        = errors.New("attachment is too large")
	ErrUnsupportedType = errors.New("attachment is not a text file")
)

// Downloader fetches attachment content over HTTP.
type Downloader struct {
	client  *http.Client
	maxSize int
}

func NewDownloader(maxSize int) *Downloader {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	return &Downloader{client: &http.Client{}, maxSize: maxSize}
}

// FetchText returns the content of a text attachment.
func (d *Downloader) FetchText(ctx context.Context, attachment *domain.Attachment) (string, error) {
	if attachment.ContentType != "" && !strings.HasPrefix(attachment.ContentType, "text/") {
		return "", fmt.Errorf("%s (%s): %w", attachment.Filename, attachment.ContentType, ErrUnsupportedType)
	}

	if attachment.Size > d.maxSize {
		return "", fmt.Errorf("%s (%d bytes): %w", attachment.Filename, attachment.Size, ErrTooLarge)
	}

	buf, err := d.download(ctx, attachment.URL)
	if err != nil {
		return "", err
	}

	return string(buf), nil
}

// download returns the byte content of a file on a provided URL.
func (d *Downloader) download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		err = fmt.Errorf("error creating request %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	res, err := d.client.Do(req)
	if err != nil {
		err = fmt.Errorf("error executing request %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected status code on download: %d", res.StatusCode)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, int64(d.maxSize)+1))
	if err != nil {
		err = fmt.Errorf("error reading response %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	if len(buf) > d.maxSize {
		return nil, ErrTooLarge
	}

	return buf, nil
}
