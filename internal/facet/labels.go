package facet

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Labels is the curated display-label dictionary for known facet ids.
// Unknown ids fall back to a title-cased form of the raw value. An optional
// YAML file can extend or replace entries without a rebuild.
type Labels struct {
	PropertyTypes map[string]string `yaml:"property_types"`
	Facilities    map[string]string `yaml:"facilities"`
	// FacilityOrder fixes the display order of the facilities group.
	FacilityOrder []string `yaml:"facility_order"`
}

// DefaultLabels returns the built-in dictionary.
func DefaultLabels() *Labels {
	return &Labels{
		PropertyTypes: map[string]string{
			"hotel":             "Hotels",
			"apartment":         "Apartments",
			"hostel":            "Hostels",
			"villa":             "Villas",
			"guest house":       "Guest houses",
			"motel":             "Motels",
			"bed and breakfast": "Bed and breakfasts",
			"campsite":          "Campsites",
		},
		Facilities: map[string]string{
			"wifi":             "Free WiFi",
			"parking":          "Parking",
			"pool":             "Swimming pool",
			"spa":              "Spa and wellness centre",
			"gym":              "Fitness centre",
			"restaurant":       "Restaurant",
			"bar":              "Bar",
			"air conditioning": "Air conditioning",
			"pets allowed":     "Pets allowed",
			"room service":     "Room service",
			"beach":            "Beachfront",
			"kitchen":          "Kitchen facilities",
			"washing machine":  "Washing machine",
		},
		FacilityOrder: []string{
			"wifi", "parking", "pool", "spa", "gym", "restaurant", "bar",
			"air conditioning", "pets allowed", "room service", "beach",
			"kitchen", "washing machine",
		},
	}
}

// LoadLabels reads a YAML override file and overlays it on the defaults.
func LoadLabels(path string) (*Labels, error) {
	labels := DefaultLabels()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read labels file: %w", err)
	}
	var overrides Labels
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse labels file: %w", err)
	}
	for id, label := range overrides.PropertyTypes {
		labels.PropertyTypes[id] = label
	}
	for id, label := range overrides.Facilities {
		labels.Facilities[id] = label
		if !contains(labels.FacilityOrder, id) {
			labels.FacilityOrder = append(labels.FacilityOrder, id)
		}
	}
	if len(overrides.FacilityOrder) > 0 {
		labels.FacilityOrder = overrides.FacilityOrder
	}
	return labels, nil
}

// PropertyType returns the display label for a property type id.
func (l *Labels) PropertyType(id string) string {
	if label, ok := l.PropertyTypes[id]; ok {
		return label
	}
	return TitleCase(id)
}

// Facility returns the display label for a facility id.
func (l *Labels) Facility(id string) string {
	if label, ok := l.Facilities[id]; ok {
		return label
	}
	return TitleCase(id)
}

// TitleCase upper-cases the first letter of each word in a raw id.
func TitleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
