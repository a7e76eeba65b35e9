package geocode

import (
	"testing"

	"github.com/shenikar/resqalert/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestExtractLocality(t *testing.T) {
	testCases := []struct {
		name  string
		place *Place
		want  string
	}{
		{
			name:  "barangay in display name",
			place: &Place{DisplayName: "Purok 3, Brgy. San Isidro, Tarlac City, Tarlac, Philippines"},
			want:  "Brgy. San Isidro",
		},
		{
			name:  "barangay spelled out",
			place: &Place{DisplayName: "Rizal Street, Barangay Poblacion, Capas, Tarlac"},
			want:  "Barangay Poblacion",
		},
		{
			name: "barangay in address field",
			place: &Place{
				DisplayName: "Rizal Street, Capas, Tarlac",
				Address:     map[string]string{"suburb": "Brgy. Santo Rosario"},
			},
			want: "Brgy. Santo Rosario",
		},
		{
			name: "neighbourhood wins over city",
			place: &Place{
				DisplayName: "Somewhere, Tarlac City",
				Address:     map[string]string{"neighbourhood": "San Nicolas", "city": "Tarlac City"},
			},
			want: "San Nicolas",
		},
		{
			name: "falls back to state",
			place: &Place{
				DisplayName: "Road, Tarlac",
				Address:     map[string]string{"state": "Central Luzon"},
			},
			want: "Central Luzon",
		},
		{
			name:  "first comma segment",
			place: &Place{DisplayName: "MacArthur Highway, Region III"},
			want:  "MacArthur Highway",
		},
		{
			name:  "nothing usable",
			place: &Place{},
			want:  models.UnknownLocality,
		},
		{
			name:  "nil place",
			place: nil,
			want:  models.UnknownLocality,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractLocality(tc.place))
		})
	}
}
