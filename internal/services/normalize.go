package services

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeTimestamp normalizes a user-supplied timestamp to hh:mm:ss.
// It accepts "mm:ss", "hh:mm:ss" or plain seconds; an empty input stays empty.
func NormalizeTimestamp(ts string) string {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return ""
	}

	if secs, err := strconv.Atoi(ts); err == nil && secs >= 0 {
		return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
	}

	parts := strings.Split(ts, ":")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) < 2 {
			p = strings.Repeat("0", 2-len(p)) + p
		}
		parts[i] = p
	}
	if len(parts) == 2 {
		parts = append([]string{"00"}, parts...)
	}
	if len(parts) > 3 {
		parts = parts[len(parts)-3:]
	}
	return strings.Join(parts, ":")
}

// NormalizeTags trims tags, drops empty ones and deduplicates
// case-insensitively while keeping the first-seen casing and order
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, t)
	}
	if len(normalized) == 0 {
		return nil
	}
	return normalized
}
