package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// timeLayout is the storage encoding for all timestamp columns. RFC3339 in
// UTC keeps the TEXT columns sortable and location-independent.
const timeLayout = time.RFC3339

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func decodeTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad timestamp %q: %w", ErrScanningRow, s, err)
	}
	return t, nil
}

// encodeTags stores the plaintext tag list as a JSON array so tags may
// contain any characters. An empty list stores as the empty string.
func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(raw), nil
}

func decodeTags(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, fmt.Errorf("%w: bad tags column: %w", ErrScanningRow, err)
	}
	return tags, nil
}
