package entity

// LinkedinData is the company profile data gathered from LinkedIn.
// No provider in this service fills it; the slot exists so consumers can
// tell "not enriched" apart from an empty profile.
type LinkedinData struct {
	Home  *LinkedinHome  `json:"home,omitempty"`
	About *LinkedinAbout `json:"about,omitempty"`
}

type LinkedinHome struct {
	LinkedinName  string `json:"linkedin_name,omitempty"`
	Tagline       string `json:"tagline,omitempty"`
	FollowerCount string `json:"follower_count,omitempty"`
	EmployeeCount string `json:"employee_count,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
}

type LinkedinAbout struct {
	Description  string   `json:"description,omitempty"`
	Specialties  []string `json:"specialties,omitempty"`
	Industry     string   `json:"industry,omitempty"`
	CompanySize  string   `json:"company_size,omitempty"`
	Headquarters string   `json:"headquarters,omitempty"`
	Website      string   `json:"website,omitempty"`
	FoundedYear  string   `json:"founded_year,omitempty"`
	Type         string   `json:"type,omitempty"`
}
