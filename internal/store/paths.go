package store

import (
	"strings"
)

const recordExt = ".json"

var segmentEscaper = strings.NewReplacer(
	"%", "%25",
	"/", "%2F",
	"\\", "%5C",
	"\x00", "%00",
)

var segmentUnescaper = strings.NewReplacer(
	"%2F", "/",
	"%5C", "\\",
	"%00", "\x00",
	"%25", "%",
)

// escapeSegment makes a model name or word safe to use as one path segment.
// Non-ASCII text is kept as-is.
func escapeSegment(value string) string {
	escaped := segmentEscaper.Replace(value)
	switch escaped {
	case "":
		return "%"
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	}
	return escaped
}

func unescapeSegment(value string) string {
	switch value {
	case "%":
		return ""
	case "%2E":
		return "."
	case "%2E%2E":
		return ".."
	}
	return segmentUnescaper.Replace(value)
}
