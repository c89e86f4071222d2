package service

import (
	"net/url"
	"strings"

	"boutique-backoffice/models"
	"boutique-backoffice/utils"
)

const defaultImageDir = "/images"

// entityImageDirs are the local directories where each entity's images are published
var entityImageDirs = map[string]string{
	"products":    "/images/products",
	"categories":  "/images/categories",
	"brands":      "/images/brands",
	"blogs":       "/images/blogs",
	"services":    "/images/services",
	"coordinates": "/images/coordinates",
	"slides":      "/images/slides",
}

// alternateImageFields pairs an image field with the sibling field tried after it
var alternateImageFields = map[string]map[string]string{
	"brands":      {"logo": "image", "image": "logo"},
	"slides":      {"image": "image_mobile", "image_mobile": "image"},
	"products":    {"image": "thumbnail", "thumbnail": "image"},
	"categories":  {"image": "icon", "icon": "image"},
	"blogs":       {"image": "cover", "cover": "image"},
	"services":    {"image": "icon", "icon": "image"},
	"coordinates": {"logo": "favicon", "favicon": "logo"},
}

// ImageResolver computes display URLs for stored image references.
// Stored values are never modified.
type ImageResolver struct {
	placeholder string
}

// NewImageResolver creates a new ImageResolver
func NewImageResolver(placeholderURL string) *ImageResolver {
	if placeholderURL == "" {
		placeholderURL = defaultPlaceholderURL
	}
	return &ImageResolver{placeholder: placeholderURL}
}

// EntityImageDir returns the default image directory of an entity, /images when unknown
func EntityImageDir(entity string) string {
	if dir, ok := entityImageDirs[strings.ToLower(strings.TrimSpace(entity))]; ok {
		return dir
	}
	return defaultImageDir
}

// ResolveValue returns the candidate chain for a single stored reference
func (r *ImageResolver) ResolveValue(entity, value string) models.ImageCandidates {
	primary, fallback := r.tiers(entity, value)
	return models.ImageCandidates{
		Primary:     primary,
		Fallback:    fallback,
		Placeholder: r.placeholder,
		Candidates:  r.chain(primary, fallback),
	}
}

// Resolve returns the candidate chain for record[field], with the entity's alternate
// field appended before the placeholder. An empty field is replaced by its alternate.
func (r *ImageResolver) Resolve(entity string, record map[string]any, field string) models.ImageCandidates {
	value := strings.TrimSpace(models.Order(record).String(field))
	altValue := ""
	if alt, ok := alternateImageFields[strings.ToLower(entity)][field]; ok {
		altValue = strings.TrimSpace(models.Order(record).String(alt))
	}

	if value == "" {
		return r.ResolveValue(entity, altValue)
	}

	resolved := r.ResolveValue(entity, value)
	if altValue == "" {
		return resolved
	}
	altPrimary, altFallback := r.tiers(entity, altValue)
	resolved.Candidates = r.chain(resolved.Primary, resolved.Fallback, altPrimary, altFallback)
	return resolved
}

// tiers returns the primary and fallback URL for value
func (r *ImageResolver) tiers(entity, value string) (string, string) {
	v := strings.TrimSpace(value)
	name := utils.ImageBaseName(v)
	dir := EntityImageDir(entity)

	switch utils.ClassifyImagePath(v) {
	case utils.ImagePathAbsolute:
		return v, r.localCopyOf(v)
	case utils.ImagePathRooted:
		return v, r.inDir(dir, name)
	case utils.ImagePathLegacy:
		return "/" + v, r.inDir(dir, name)
	case utils.ImagePathBare:
		return dir + "/" + name, "/uploads/" + name
	case utils.ImagePathEmpty:
		return r.placeholder, r.placeholder
	}
	return r.placeholder, r.placeholder
}

// localCopyOf maps a remote URL to the path it is materialized under
func (r *ImageResolver) localCopyOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "data" {
		return r.placeholder
	}
	normalized, ok := utils.NormalizeImagePath(u.Path)
	if !ok {
		return r.placeholder
	}
	return "/" + normalized
}

func (r *ImageResolver) inDir(dir, name string) string {
	if name == "" {
		return r.placeholder
	}
	return dir + "/" + name
}

// chain deduplicates candidates and terminates them with the placeholder exactly once
func (r *ImageResolver) chain(candidates ...string) []string {
	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates)+1)
	for _, c := range candidates {
		if c == "" || c == r.placeholder || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return append(out, r.placeholder)
}
