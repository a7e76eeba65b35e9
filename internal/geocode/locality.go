package geocode

import (
	"regexp"
	"strings"

	"github.com/shenikar/resqalert/internal/models"
)

var barangayPattern = regexp.MustCompile(`(?i)\b(?:brgy\.?|barangay)\s+[^,]+`)

// Поля адреса в порядке предпочтения
var localityFields = []string{"neighbourhood", "suburb", "town", "city", "municipality", "state"}

// ExtractLocality выбирает название населенного пункта из результата геокодирования:
// барангай, затем поля адреса по приоритету, затем первый сегмент полного адреса
func ExtractLocality(place *Place) string {
	if place == nil {
		return models.UnknownLocality
	}

	if m := barangayPattern.FindString(place.DisplayName); m != "" {
		return strings.TrimSpace(m)
	}
	for _, field := range localityFields {
		if m := barangayPattern.FindString(place.Address[field]); m != "" {
			return strings.TrimSpace(m)
		}
	}

	for _, field := range localityFields {
		if v := strings.TrimSpace(place.Address[field]); v != "" {
			return v
		}
	}

	if first, _, _ := strings.Cut(place.DisplayName, ","); strings.TrimSpace(first) != "" {
		return strings.TrimSpace(first)
	}
	return models.UnknownLocality
}
