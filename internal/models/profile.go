package models

// ProfileRecord represents one person's structured profile data, merged
// from the profile view and contact info responses
type ProfileRecord struct {
	PublicID     string       `json:"public_id"`
	FullName     string       `json:"full_name"`
	Headline     string       `json:"headline"`
	Summary      string       `json:"summary"`
	IndustryName string       `json:"industry_name"`
	Location     string       `json:"location"`
	Skills       []string     `json:"skills"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Contact      Contact      `json:"contact"`
}

// Experience represents one position entry from a profile
type Experience struct {
	JobTitle    string      `json:"job_title"`
	CompanyName string      `json:"company_name"`
	Location    string      `json:"location"`
	Period      interface{} `json:"period"`
	Description string      `json:"description"`
}

// Education represents one education entry from a profile
type Education struct {
	SchoolName string      `json:"school_name"`
	Degree     string      `json:"degree"`
	Period     interface{} `json:"period"`
}

// Contact represents the optional contact block of a profile.
// Fields stay empty when the contact info response omits them or when the
// contact fetch was degraded.
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Page is one unit of connections pipeline output: the records for one
// listing page plus the cursor for the next one.
type Page struct {
	Profiles     []ProfileRecord `json:"profiles"`
	PaginationID string          `json:"pagination_id"`
}
