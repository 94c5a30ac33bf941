// Package googlesheets reads the board ranges from Google Sheets and the photo
// listing from Google Drive using a service account.
package googlesheets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/oauth2"

	"github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/logging"
	"github.com/housefest/board-service/internal/providers"
	"github.com/housefest/board-service/internal/sheet"
)

// Ranges names the A1 ranges read every cycle.
type Ranges struct {
	MatchResults  string
	Overall       string
	Announcements string
	Schedule      string
}

// Config controls how the client reaches the Google APIs.
type Config struct {
	SpreadsheetID   string
	GalleryFolderID string
	ClientEmail     string
	PrivateKey      string
	SheetsBaseURL   string
	DriveBaseURL    string
	TokenURL        string
	Ranges          Ranges
	// HTTPClient replaces the service-account client when set.
	HTTPClient *http.Client
}

// Client fetches all board ranges and the gallery listing in one cycle.
type Client struct {
	spreadsheetID string
	folderID      string
	hasCreds      bool
	sheetsBase    string
	driveBase     string
	ranges        Ranges
	httpClient    httpDoer
	logger        *slog.Logger
}

// NewClient constructs a client. Credentials are only checked when fetching, so a
// misconfigured deployment still boots and serves the empty board.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	c := &Client{
		spreadsheetID: strings.TrimSpace(cfg.SpreadsheetID),
		folderID:      strings.TrimSpace(cfg.GalleryFolderID),
		hasCreds:      cfg.ClientEmail != "" && cfg.PrivateKey != "",
		sheetsBase:    normalizeBaseURL(cfg.SheetsBaseURL, defaultSheetsBaseURL),
		driveBase:     normalizeBaseURL(cfg.DriveBaseURL, defaultDriveBaseURL),
		ranges: Ranges{
			MatchResults:  orDefault(cfg.Ranges.MatchResults, DefaultMatchResultsRange),
			Overall:       orDefault(cfg.Ranges.Overall, DefaultOverallRange),
			Announcements: orDefault(cfg.Ranges.Announcements, DefaultAnnouncementsRange),
			Schedule:      orDefault(cfg.Ranges.Schedule, DefaultScheduleRange),
		},
		logger: logger,
	}
	if c.hasCreds {
		c.httpClient = resolveHTTPClient(cfg)
	}
	return c
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string {
	return providerName
}

// FetchRaw runs the five sub-fetches concurrently and returns only when all of them
// settled. Any failure fails the whole cycle.
func (c *Client) FetchRaw(ctx context.Context, hint time.Time) (board.RawData, error) {
	_ = hint
	if !c.hasCreds {
		return board.RawData{}, crerr.Wrap(providers.ErrMissingCredentials, "googlesheets: GOOGLE_CLIENT_EMAIL and GOOGLE_PRIVATE_KEY are required")
	}
	if c.spreadsheetID == "" {
		return board.RawData{}, crerr.Wrap(providers.ErrMissingCredentials, "googlesheets: GOOGLE_SPREADSHEET_ID is required")
	}

	var raw board.RawData
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) (err error) {
		raw.MatchRows, err = c.fetchRange(ctx, c.ranges.MatchResults)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		raw.OverallRows, err = c.fetchRange(ctx, c.ranges.Overall)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		raw.Announcements, err = c.fetchRange(ctx, c.ranges.Announcements)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		raw.ScheduleRows, err = c.fetchRange(ctx, c.ranges.Schedule)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		raw.Files, err = c.listGallery(ctx)
		return err
	})
	if err := p.Wait(); err != nil {
		return board.RawData{}, err
	}

	logging.Debug(c.logger, "googlesheets fetch complete",
		slog.Int("match_rows", len(raw.MatchRows)),
		slog.Int("schedule_rows", len(raw.ScheduleRows)),
		slog.Int("files", len(raw.Files)),
	)
	return raw, nil
}

func (c *Client) fetchRange(ctx context.Context, a1 string) ([]sheet.Row, error) {
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s",
		c.sheetsBase, url.PathEscape(c.spreadsheetID), url.PathEscape(a1))

	var payload valueRange
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, crerr.Wrapf(err, "googlesheets: read %s", a1)
	}

	rows := make([]sheet.Row, len(payload.Values))
	for i, cells := range payload.Values {
		rows[i] = sheet.Row(cells)
	}
	return rows, nil
}

func (c *Client) listGallery(ctx context.Context) ([]board.MediaFile, error) {
	if c.folderID == "" {
		return []board.MediaFile{}, nil
	}

	q := url.Values{}
	q.Set("q", fmt.Sprintf("'%s' in parents and mimeType contains 'image/' and trashed = false",
		strings.ReplaceAll(c.folderID, "'", `\'`)))
	q.Set("orderBy", galleryOrderBy)
	q.Set("pageSize", strconv.Itoa(galleryPageSize))
	q.Set("fields", galleryFields)

	var payload fileList
	if err := c.getJSON(ctx, c.driveBase+"/files?"+q.Encode(), &payload); err != nil {
		return nil, crerr.Wrap(err, "googlesheets: list gallery")
	}

	files := make([]board.MediaFile, 0, len(payload.Files))
	for _, f := range payload.Files {
		files = append(files, board.MediaFile{ID: f.ID, Name: f.Name, MimeType: f.MimeType})
	}
	return files, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(body, dest)
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(body))
	var envelope apiError
	if sonic.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
		msg = envelope.Error.Message
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Message:    msg,
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		return crerr.Wrapf(providers.ErrUnauthorized, "status %d: %s", resp.StatusCode, msg)
	default:
		return crerr.Newf("unexpected status %d: %s", resp.StatusCode, msg)
	}
}

// classifyTransportError maps token endpoint rejections onto ErrUnauthorized.
func classifyTransportError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if crerr.As(err, &retrieveErr) {
		return crerr.Wrap(providers.ErrUnauthorized, retrieveErr.Error())
	}
	return err
}

func parseRetryAfter(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
