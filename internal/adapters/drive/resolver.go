// Package drive resolves Google Drive share links into attachment bytes.
package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/postroom/postroom/internal/domain/model"
)

// extByContentType maps download content types to attachment file extensions.
// Unknown types fall back to .pdf, the dominant attachment kind.
var extByContentType = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       ".xlsx",
}

const defaultExt = ".pdf"

// Config captures the resolver's knobs.
type Config struct {
	// BaseURL is the direct-download endpoint root. Override for testing;
	// defaults to Google Drive's uc endpoint.
	BaseURL string

	// Timeout bounds the whole download.
	Timeout time.Duration

	// MaxBytes caps the attachment size; larger downloads fail.
	MaxBytes int64

	// FilePrefix names downloaded attachments: <prefix><ext>.
	FilePrefix string

	Client *http.Client
}

// Resolver downloads share-linked files over HTTP.
type Resolver struct {
	baseURL    string
	maxBytes   int64
	filePrefix string
	client     *http.Client
}

// NewResolver builds a Resolver. Callers should pass a validated config.
func NewResolver(cfg Config) *Resolver {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://drive.google.com/uc"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 20 << 20
	}

	prefix := strings.TrimSpace(cfg.FilePrefix)
	if prefix == "" {
		prefix = "attachment"
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Resolver{
		baseURL:    baseURL,
		maxBytes:   maxBytes,
		filePrefix: prefix,
		client:     hc,
	}
}

// Resolve extracts the file id from the share link and downloads the file
// through the direct-download endpoint.
func (r *Resolver) Resolve(ctx context.Context, link string) (*model.Attachment, error) {
	fileID := model.ShareLinkFileID(link)
	if fileID == "" {
		return nil, fmt.Errorf("no file id in link %q", link)
	}

	downloadURL := r.baseURL + "?export=download&id=" + fileID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download attachment: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download attachment: %s", resp.Status)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read attachment body: %w", err)
	}
	if int64(len(content)) > r.maxBytes {
		return nil, fmt.Errorf("attachment exceeds %d bytes", r.maxBytes)
	}
	if len(content) == 0 {
		return nil, errors.New("attachment is empty")
	}

	return &model.Attachment{
		Name:    r.filePrefix + extensionFor(resp.Header.Get("Content-Type")),
		Content: content,
	}, nil
}

func extensionFor(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return defaultExt
	}
	if ext, ok := extByContentType[mediaType]; ok {
		return ext
	}
	return defaultExt
}
