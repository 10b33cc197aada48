package extractor

import (
	"github.com/user/company-analyzer/internal/entity"
	"github.com/user/company-analyzer/pkg/utils"
)

const (
	maxListItems         = 10
	maxDescriptionLength = 200
	serviceItemSelector  = "h3, h4, .service, .service-item"
	productItemSelector  = "h3, h4, .product, .product-item"
)

// ListItems turns heading-like elements into titled offerings, using the
// following sibling as the description. Entries without a title are dropped.
func ListItems(doc *Document, selector string) []entity.Offering {
	var items []entity.Offering
	for _, pair := range doc.SiblingPairs(selector, maxListItems) {
		if pair.Text == "" {
			continue
		}
		items = append(items, entity.Offering{
			Title:       pair.Text,
			Description: utils.Truncate(pair.NextText, maxDescriptionLength),
		})
	}
	return items
}
