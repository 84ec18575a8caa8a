package routes

const (
	// Health
	Health = "/health"

	// Property endpoints
	Properties   = "/api/v1/properties"
	PropertyByID = "/api/v1/properties/{id}"

	// Report lifecycle
	Reports      = "/api/v1/reports"
	ReportByID   = "/api/v1/reports/{id}"
	ReportRooms  = "/api/v1/reports/{id}/rooms"
	ReportStatus = "/api/v1/reports/{id}/status"
	ReportPaid   = "/api/v1/reports/{id}/paid"

	// Room capture
	RoomItem  = "/api/v1/rooms/{id}/items/{categoryId}"
	RoomItems = "/api/v1/rooms/{id}/items"
	RoomVideo = "/api/v1/rooms/{id}/video"

	// Media
	Uploads     = "/api/v1/uploads"
	MediaPrefix = "/media/"

	// Unauthenticated QR-code landing endpoint
	PublicReport = "/public/reports/{id}"

	// Document rendering (optional auth)
	GeneratePDF = "/generate-pdf"
)
