package config

import "strings"

const (
	envSpreadsheetID   = "GOOGLE_SPREADSHEET_ID"
	envGalleryFolderID = "GOOGLE_GALLERY_FOLDER_ID"
	envClientEmail     = "GOOGLE_CLIENT_EMAIL"
	envPrivateKey      = "GOOGLE_PRIVATE_KEY"
	envSheetsBaseURL   = "GOOGLE_SHEETS_BASE_URL"
	envDriveBaseURL    = "GOOGLE_DRIVE_BASE_URL"

	defaultSheetsBaseURL = "https://sheets.googleapis.com/v4"
	defaultDriveBaseURL  = "https://www.googleapis.com/drive/v3"
)

// GoogleConfig controls how we talk to the Sheets and Drive APIs.
type GoogleConfig struct {
	SpreadsheetID   string
	GalleryFolderID string
	ClientEmail     string
	PrivateKey      string
	SheetsBaseURL   string
	DriveBaseURL    string
}

// HasCredentials reports whether a service account is configured.
func (g GoogleConfig) HasCredentials() bool {
	return g.ClientEmail != "" && g.PrivateKey != ""
}

func loadGoogle() GoogleConfig {
	return GoogleConfig{
		SpreadsheetID:   envOrDefault(envSpreadsheetID, ""),
		GalleryFolderID: envOrDefault(envGalleryFolderID, ""),
		ClientEmail:     strings.TrimSpace(envOrDefault(envClientEmail, "")),
		PrivateKey:      UnescapePrivateKey(envOrDefault(envPrivateKey, "")),
		SheetsBaseURL:   envOrDefault(envSheetsBaseURL, defaultSheetsBaseURL),
		DriveBaseURL:    envOrDefault(envDriveBaseURL, defaultDriveBaseURL),
	}
}

// UnescapePrivateKey turns literal "\n" sequences (common in env files) into newlines.
func UnescapePrivateKey(raw string) string {
	return strings.ReplaceAll(raw, `\n`, "\n")
}
