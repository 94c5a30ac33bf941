package googlesheets

import "time"

const (
	providerName = "googlesheets"

	defaultSheetsBaseURL = "https://sheets.googleapis.com/v4"
	defaultDriveBaseURL  = "https://www.googleapis.com/drive/v3"
	defaultTokenURL      = "https://oauth2.googleapis.com/token"
	defaultHTTPTimeout   = 10 * time.Second

	scopeSheetsReadOnly = "https://www.googleapis.com/auth/spreadsheets.readonly"
	scopeDriveReadOnly  = "https://www.googleapis.com/auth/drive.readonly"

	galleryPageSize = 50
	galleryOrderBy  = "createdTime desc"
	galleryFields   = "files(id,name,mimeType)"

	maxErrorBody = 512
)

// Default A1 ranges of the board spreadsheet.
const (
	DefaultMatchResultsRange  = "Match_Results!A2:F"
	DefaultOverallRange       = "Overall_Standings!A2:C"
	DefaultAnnouncementsRange = "Announcements!A2:D"
	DefaultScheduleRange      = "Schedule!A:H"
)
