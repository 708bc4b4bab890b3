package store

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// filterChunkSize mirrors the 10-value ceiling document stores put on
// equality-set filters; larger barber-id sets are split into chunks of
// this size and queried separately.
const filterChunkSize = 10

// ErrBadCursor reports a cursor that did not come from a previous page.
var ErrBadCursor = errors.New("malformed cursor")

// A cursor is the (date, id) position of the last item of the previous
// page, opaque to callers.
func encodeCursor(date time.Time, id uuid.UUID) string {
	raw := fmt.Sprintf("%s|%s", date.Format(time.RFC3339Nano), id)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (time.Time, uuid.UUID, error) {
	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, ErrBadCursor
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, uuid.Nil, ErrBadCursor
	}
	date, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, uuid.Nil, ErrBadCursor
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return time.Time{}, uuid.Nil, ErrBadCursor
	}
	return date, id, nil
}

func chunkIDs(ids []uuid.UUID, size int) [][]uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	var chunks [][]uuid.UUID
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
