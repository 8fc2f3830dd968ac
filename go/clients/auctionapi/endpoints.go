package auctionapi

const (
	// Read endpoints
	PlayersEndpoint = "/players"
	TeamsEndpoint   = "/teams"
	StatsEndpoint   = "/auction/stats"

	// Player management
	RegisterPlayerEndpoint = "/players/register"
	BulkUploadEndpoint     = "/players/bulk-upload"

	// Admin operations
	GenerateTeamsEndpoint = "/admin/generate-teams"
	CreateCaptainEndpoint = "/admin/create-captain"
	ResetAuctionEndpoint  = "/admin/reset"
	ClearAllDataEndpoint  = "/admin/clear-all-data"

	// Form field names for multipart uploads
	CSVFileField = "csvFile"
	PhotoField   = "photo"
	LogoField    = "logo"
)
