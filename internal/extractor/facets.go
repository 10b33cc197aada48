package extractor

import (
	"github.com/user/company-analyzer/internal/entity"
	"github.com/user/company-analyzer/pkg/utils"
)

const (
	maxHeadings     = 10
	maxHeroLength   = 500
	heroSelector    = `.hero, .banner, .jumbotron, [class*="hero"], [class*="banner"]`
	aboutHeadingSel = "h1, h2, h3"
)

// Home builds the homepage facet. Summary is left for the caller.
func Home(doc *Document) *entity.HomeFacet {
	headings := append(doc.Texts("h1"), doc.Texts("h2")...)
	if len(headings) > maxHeadings {
		headings = headings[:maxHeadings]
	}

	return &entity.HomeFacet{
		PageTitle:       doc.Title(),
		MetaDescription: doc.Meta("description"),
		MainHeadings:    headings,
		HeroText:        utils.Truncate(doc.FirstText(heroSelector), maxHeroLength),
		Keywords:        Keywords(doc.AnalysisText()),
	}
}

// About builds the about facet. AboutSummary is left for the caller.
func About(doc *Document) *entity.AboutFacet {
	text := doc.AnalysisText()
	return &entity.AboutFacet{
		CompanyName:      CompanyName(doc.Texts(aboutHeadingSel)),
		FoundingYear:     FoundingYear(text),
		MissionStatement: MissionStatement(text),
		LeadershipTeam:   LeadershipTeam(text),
	}
}

// Services builds the services facet. ServicesSummary is left for the caller.
func Services(doc *Document) *entity.ServicesFacet {
	return &entity.ServicesFacet{
		ServicesList:     ListItems(doc, serviceItemSelector),
		IndustriesServed: Industries(doc.AnalysisText()),
	}
}

// Products builds the products facet. ProductsSummary is left for the caller.
func Products(doc *Document) *entity.ProductsFacet {
	return &entity.ProductsFacet{
		ProductsList: ListItems(doc, productItemSelector),
	}
}

// Contact builds the contact facet from the full body text.
func Contact(doc *Document) *entity.ContactFacet {
	text := doc.BodyText()
	return &entity.ContactFacet{
		EmailAddresses:  Emails(text),
		PhoneNumbers:    Phones(text),
		OfficeLocations: OfficeLocations(text),
	}
}
