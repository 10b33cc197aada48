package entity

// WebsiteData is the sparse aggregate of facets found on a company website.
// A nil facet means the page was not found or had no substantial content.
type WebsiteData struct {
	Home        *HomeFacet        `json:"home,omitempty"`
	About       *AboutFacet       `json:"about,omitempty"`
	Services    *ServicesFacet    `json:"services,omitempty"`
	Products    *ProductsFacet    `json:"products,omitempty"`
	Contact     *ContactFacet     `json:"contact,omitempty"`
	SocialMedia *SocialMediaFacet `json:"social_media,omitempty"`
}

type HomeFacet struct {
	PageTitle       string   `json:"page_title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
	Summary         string   `json:"summary,omitempty"`
	MainHeadings    []string `json:"main_headings,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	HeroText        string   `json:"hero_text,omitempty"`
}

// TeamMember is a leadership entry found on the about page.
type TeamMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type AboutFacet struct {
	CompanyName      string       `json:"company_name,omitempty"`
	MissionStatement string       `json:"mission_statement,omitempty"`
	AboutSummary     string       `json:"about_summary,omitempty"`
	FoundingYear     string       `json:"founding_year,omitempty"`
	LeadershipTeam   []TeamMember `json:"leadership_team,omitempty"`
}

// Offering is a titled service or product with a short description.
type Offering struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ServicesFacet struct {
	ServicesList     []Offering `json:"services_list,omitempty"`
	ServicesSummary  string     `json:"services_summary,omitempty"`
	IndustriesServed []string   `json:"industries_served,omitempty"`
}

type ProductsFacet struct {
	ProductsList    []Offering `json:"products_list,omitempty"`
	ProductsSummary string     `json:"products_summary,omitempty"`
}

type ContactFacet struct {
	EmailAddresses  []string `json:"email_addresses,omitempty"`
	PhoneNumbers    []string `json:"phone_numbers,omitempty"`
	OfficeLocations []string `json:"office_locations,omitempty"`
}

// SocialMediaFacet holds at most one profile URL per platform.
type SocialMediaFacet struct {
	LinkedinURL  string `json:"linkedin_url,omitempty"`
	TwitterURL   string `json:"twitter_url,omitempty"`
	FacebookURL  string `json:"facebook_url,omitempty"`
	YoutubeURL   string `json:"youtube_url,omitempty"`
	InstagramURL string `json:"instagram_url,omitempty"`
}
