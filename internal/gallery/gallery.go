// Package gallery turns media store listings into renderable image URLs.
package gallery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/housefest/board-service/internal/domain/board"
)

const (
	DefaultPreviewTemplate = "https://drive.google.com/thumbnail?id=%s&sz=w1000"
	DefaultDownloadSize    = "w4000"

	sizeParam = "sz"
)

// Resolver maps media file ids onto preview and download URLs.
type Resolver struct {
	// PreviewTemplate is a fmt template with a single %s verb for the file id.
	PreviewTemplate string
	DownloadSize    string
}

// NewResolver returns a Resolver with defaults filled in for empty values.
func NewResolver(previewTemplate, downloadSize string) Resolver {
	if strings.TrimSpace(previewTemplate) == "" {
		previewTemplate = DefaultPreviewTemplate
	}
	if strings.TrimSpace(downloadSize) == "" {
		downloadSize = DefaultDownloadSize
	}
	return Resolver{PreviewTemplate: previewTemplate, DownloadSize: downloadSize}
}

// Resolve maps files in order. Files without an id are skipped.
func (r Resolver) Resolve(files []board.MediaFile) []board.GalleryImage {
	out := make([]board.GalleryImage, 0, len(files))
	for _, f := range files {
		id := strings.TrimSpace(f.ID)
		if id == "" {
			continue
		}
		name := strings.TrimSpace(f.Name)
		if name == "" {
			name = id
		}
		preview := r.PreviewURL(id)
		out = append(out, board.GalleryImage{
			ID:          id,
			URL:         preview,
			DisplayName: name,
			DownloadURL: r.DownloadURL(preview),
		})
	}
	return out
}

// PreviewURL renders the preview template for id.
func (r Resolver) PreviewURL(id string) string {
	tmpl := r.PreviewTemplate
	if tmpl == "" {
		tmpl = DefaultPreviewTemplate
	}
	return fmt.Sprintf(tmpl, url.QueryEscape(id))
}

// DownloadURL swaps the size parameter of a preview URL for the download size.
// URLs that cannot be parsed are returned unchanged.
func (r Resolver) DownloadURL(preview string) string {
	u, err := url.Parse(preview)
	if err != nil || u.RawQuery == "" {
		return preview
	}
	size := r.DownloadSize
	if size == "" {
		size = DefaultDownloadSize
	}
	q := u.Query()
	if _, ok := q[sizeParam]; !ok {
		return preview
	}
	q.Set(sizeParam, size)
	u.RawQuery = q.Encode()
	return u.String()
}
