package dtos

// UploadResponse returns the public URL of a stored media object so
// the client can reference it from inspection items and videos.
type UploadResponse struct {
	URL string `json:"url"`
}
