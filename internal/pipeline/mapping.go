package pipeline

import (
	"strings"

	"github.com/adsdash/adsdash/internal/models"
)

// DefaultMapping maps every canonical field to its own literal name, the
// state before any upload has been auto-detected.
func DefaultMapping() models.FieldMapping {
	m := make(models.FieldMapping, len(models.Fields))
	for _, f := range models.Fields {
		m[f] = string(f)
	}
	return m
}

// AutoDetect resolves every canonical field against the ingested headers:
// case-insensitive exact match first, then substring containment, else
// Unmapped. The result replaces the whole mapping.
func AutoDetect(headers []string) models.FieldMapping {
	m := make(models.FieldMapping, len(models.Fields))
	for _, f := range models.Fields {
		m[f] = detectHeader(headers, string(f))
	}
	return m
}

func detectHeader(headers []string, key string) string {
	partial := models.Unmapped
	for _, h := range headers {
		lh := strings.ToLower(strings.TrimSpace(h))
		if lh == key {
			return h
		}
		if partial == models.Unmapped && strings.Contains(lh, key) {
			partial = h
		}
	}
	return partial
}

// ValidField reports whether s names a canonical field.
func ValidField(s string) (models.Field, bool) {
	for _, f := range models.Fields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Dimension reports whether f is a grouping dimension.
func Dimension(f models.Field) bool {
	return f == models.FieldCampaign || f == models.FieldAdset || f == models.FieldAd
}
