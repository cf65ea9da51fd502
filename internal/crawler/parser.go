package crawler

import (
	"strings"

	"linkedin-scraper/internal/models"
)

// Parser extracts structured records from one decoded upstream response.
// Every path access is defensive: a missing or oddly-typed section yields an
// absent value, never an error. Upstream period/date structures pass through
// untouched.
type Parser struct {
	data map[string]interface{}
}

// NewParser creates a Parser over one decoded JSON body
func NewParser(data map[string]interface{}) *Parser {
	return &Parser{data: data}
}

// ProfileRecord extracts the full-profile shape of a profileView response.
// The contact block stays empty; it comes from a separate response.
func (p *Parser) ProfileRecord() models.ProfileRecord {
	profile := getMap(p.data, "profile")

	return models.ProfileRecord{
		PublicID:     getString(getMap(profile, "miniProfile"), "publicIdentifier"),
		FullName:     joinName(getString(profile, "firstName"), getString(profile, "lastName")),
		Headline:     getString(profile, "headline"),
		Summary:      collapseWhitespace(getString(profile, "summary")),
		IndustryName: getString(profile, "industryName"),
		Location:     getString(profile, "geoLocationName"),
		Skills:       p.skills(),
		Experience:   p.experience(),
		Education:    p.education(),
	}
}

// ContactDetails extracts the contact block of a profileContactInfo response
func (p *Parser) ContactDetails() models.Contact {
	contact := models.Contact{
		Email: getString(p.data, "emailAddress"),
	}
	if phones := getSlice(p.data, "phoneNumbers"); len(phones) > 0 {
		if first, ok := phones[0].(map[string]interface{}); ok {
			contact.Phone = getString(first, "number")
		}
	}
	return contact
}

// ConnectionIDs extracts the public identifiers from one connections listing
// page, in upstream order. Entries without a resolved member are skipped.
func (p *Parser) ConnectionIDs() []string {
	elements := getSlice(p.data, "elements")
	ids := make([]string, 0, len(elements))
	for _, raw := range elements {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		id := getString(getMap(item, "connectedMemberResolutionResult"), "publicIdentifier")
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func (p *Parser) skills() []string {
	elements := getSlice(getMap(p.data, "skillView"), "elements")
	skills := make([]string, 0, len(elements))
	for _, raw := range elements {
		if item, ok := raw.(map[string]interface{}); ok {
			if name := getString(item, "name"); name != "" {
				skills = append(skills, name)
			}
		}
	}
	return skills
}

func (p *Parser) experience() []models.Experience {
	elements := getSlice(getMap(p.data, "positionView"), "elements")
	positions := make([]models.Experience, 0, len(elements))
	for _, raw := range elements {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		positions = append(positions, models.Experience{
			JobTitle:    getString(item, "title"),
			CompanyName: getString(item, "companyName"),
			Location:    getString(item, "locationName"),
			Period:      item["timePeriod"],
			Description: getString(item, "description"),
		})
	}
	return positions
}

func (p *Parser) education() []models.Education {
	elements := getSlice(getMap(p.data, "educationView"), "elements")
	schools := make([]models.Education, 0, len(elements))
	for _, raw := range elements {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		schools = append(schools, models.Education{
			SchoolName: getString(item, "schoolName"),
			Degree:     getString(item, "degreeName"),
			Period:     item["timePeriod"],
		})
	}
	return schools
}

// joinName concatenates the name parts with a single space, degrading to
// whichever part is present
func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

// collapseWhitespace collapses internal whitespace runs to single spaces and
// trims the ends
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func getMap(data map[string]interface{}, key string) map[string]interface{} {
	if data == nil {
		return nil
	}
	m, _ := data[key].(map[string]interface{})
	return m
}

func getString(data map[string]interface{}, key string) string {
	if data == nil {
		return ""
	}
	s, _ := data[key].(string)
	return s
}

func getSlice(data map[string]interface{}, key string) []interface{} {
	if data == nil {
		return nil
	}
	s, _ := data[key].([]interface{})
	return s
}
