// Package storage is the object-storage collaborator boundary: media
// binaries live behind this interface, the data model only keeps their
// URLs. The disk implementation serves local and single-node
// deployments; an S3-compatible implementation slots in without
// touching callers.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectStorage stores a binary under a path and returns a stable,
// publicly fetchable URL for it.
type ObjectStorage interface {
	Put(ctx context.Context, data []byte, path string) (url string, err error)
}

// ObjectPath builds the canonical storage path
// {userId}/{reportId}/{ownerId}/{timestamp}.{ext}, where ownerId is
// the item or room the media belongs to.
func ObjectPath(userID, reportID, ownerID uuid.UUID, ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	return fmt.Sprintf("%s/%s/%s/%d.%s",
		userID, reportID, ownerID, time.Now().UnixNano(), ext)
}
