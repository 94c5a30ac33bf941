package server

import (
	"log/slog"
	"strings"

	"github.com/housefest/board-service/internal/config"
	"github.com/housefest/board-service/internal/providers"
	"github.com/housefest/board-service/internal/providers/fixture"
	"github.com/housefest/board-service/internal/providers/googlesheets"
	"github.com/housefest/board-service/internal/providers/workbook"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.SourceProvider {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case config.ProviderFixture, "":
		return fixture.New()
	case config.ProviderGoogleSheets:
		return googlesheets.NewClient(googlesheets.Config{
			SpreadsheetID:   cfg.Google.SpreadsheetID,
			GalleryFolderID: cfg.Google.GalleryFolderID,
			ClientEmail:     cfg.Google.ClientEmail,
			PrivateKey:      cfg.Google.PrivateKey,
			SheetsBaseURL:   cfg.Google.SheetsBaseURL,
			DriveBaseURL:    cfg.Google.DriveBaseURL,
		}, logger)
	case config.ProviderWorkbook:
		return workbook.New(cfg.Workbook.Path)
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
