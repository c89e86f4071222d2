package utils

import (
	"path"
	"regexp"
	"strings"
)

// ImagePathKind classifies a stored image reference
type ImagePathKind int

const (
	ImagePathEmpty    ImagePathKind = iota
	ImagePathAbsolute               // http(s)://…, protocol-relative //… or a data URI
	ImagePathRooted                 // /images/x.png
	ImagePathLegacy                 // uploads/2021/05/x.png
	ImagePathBare                   // x.png
)

var absoluteURLRegex = regexp.MustCompile(`(?i)^((https?:)?//|data:image/)`)

// ClassifyImagePath reports which kind of reference value is.
// Order matters: absolute URLs also start with a slash when protocol-relative.
func ClassifyImagePath(value string) ImagePathKind {
	v := strings.TrimSpace(value)
	switch {
	case v == "":
		return ImagePathEmpty
	case absoluteURLRegex.MatchString(v):
		return ImagePathAbsolute
	case strings.HasPrefix(v, "/"):
		return ImagePathRooted
	case strings.Contains(v, "/"):
		return ImagePathLegacy
	default:
		return ImagePathBare
	}
}

// NormalizeImagePath strips leading slashes and cleans the remaining relative path.
// ok is false for empty paths and paths that climb out of their root.
func NormalizeImagePath(imagePath string) (string, bool) {
	p := strings.TrimLeft(strings.TrimSpace(imagePath), "/")
	if p == "" {
		return "", false
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	return cleaned, true
}

// ImageBaseName returns the file name part of a reference, ignoring any query string.
func ImageBaseName(value string) string {
	v := strings.TrimSpace(value)
	if i := strings.IndexAny(v, "?#"); i >= 0 {
		v = v[:i]
	}
	base := path.Base(v)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
