package file

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloader_FetchText(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		status      int
		contentType string
		size        int
		want        string
		wantErr     error
	}{
		{
			name:        "success",
			body:        "test\n",
			status:      http.StatusOK,
			contentType: "text/plain; charset=utf-8",
			size:        5,
			want:        "test\n",
		},
		{
			name:   "unknown content type is fetched",
			body:   "notes",
			status: http.StatusOK,
			size:   5,
			want:   "notes",
		},
		{
			name:    "not found",
			body:    "not found",
			status:  http.StatusNotFound,
			wantErr: assert.AnError,
		},
		{
			name:        "image",
			contentType: "image/png",
			wantErr:     ErrUnsupportedType,
		},
		{
			name:    "declared size over limit",
			size:    11,
			wantErr: ErrTooLarge,
		},
		{
			name:    "body over limit",
			body:    strings.Repeat("x", 11),
			status:  http.StatusOK,
			size:    1,
			wantErr: ErrTooLarge,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, err := w.Write([]byte(tc.body))
				assert.NoError(t, err)
			}))
			defer srv.Close()

			d := NewDownloader(10)
			res, err := d.FetchText(t.Context(), &domain.Attachment{
				Filename:    "a.txt",
				URL:         srv.URL,
				ContentType: tc.contentType,
				Size:        tc.size,
			})

			switch {
			case tc.wantErr == assert.AnError:
				require.Error(t, err)
			case tc.wantErr != nil:
				require.ErrorIs(t, err, tc.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.want, res)
			}
		})
	}
}

func TestNewDownloader_DefaultSize(t *testing.T) {
	assert.Equal(t, DefaultMaxSize, NewDownloader(0).maxSize)
}
