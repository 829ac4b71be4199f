package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// Cursor is the position of the last item of a page in (date desc, id asc) order.
type Cursor struct {
	Date time.Time
	ID   string
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	return base64.URLEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}

// EncodeCursor serialises a cursor into an opaque page token.
func EncodeCursor(c Cursor) string {
	return EncodeMultiFieldToken(c.Date.UTC().Format(timeFormat), c.ID)
}

// DecodeCursor parses a page token produced by EncodeCursor.
func DecodeCursor(token string) (Cursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return Cursor{}, err
	}
	if len(parts) != 2 || parts[1] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}
	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	return Cursor{Date: date, ID: parts[1]}, nil
}

// Follows reports whether an item at (date, id) comes strictly after c.
func (c Cursor) Follows(date time.Time, id string) bool {
	if !date.Equal(c.Date) {
		return date.Before(c.Date)
	}
	return id > c.ID
}

// Page cuts the slice that follows token, at most size items long. keyOf
// returns the ordering key of an item; items must already be ordered.
// The returned token is empty on the last page.
func Page[T any](items []T, token string, size int, keyOf func(T) Cursor) ([]T, string, error) {
	start := 0
	if token != "" {
		cursor, err := DecodeCursor(token)
		if err != nil {
			return nil, "", err
		}
		start = len(items)
		for i, item := range items {
			k := keyOf(item)
			if cursor.Follows(k.Date, k.ID) {
				start = i
				break
			}
		}
	}
	end := start + size
	if size <= 0 || end >= len(items) {
		return items[start:], "", nil
	}
	return items[start:end], EncodeCursor(keyOf(items[end-1])), nil
}
