package extractor

import (
	"strings"

	"github.com/user/company-analyzer/internal/entity"
)

// SocialLinks scans hrefs for known platforms. A later link for the same
// platform replaces an earlier one.
func SocialLinks(links []string) *entity.SocialMediaFacet {
	social := &entity.SocialMediaFacet{}
	for _, href := range links {
		if strings.Contains(href, "linkedin.com") {
			social.LinkedinURL = href
		}
		if strings.Contains(href, "twitter.com") || strings.Contains(href, "x.com") {
			social.TwitterURL = href
		}
		if strings.Contains(href, "facebook.com") {
			social.FacebookURL = href
		}
		if strings.Contains(href, "youtube.com") {
			social.YoutubeURL = href
		}
		if strings.Contains(href, "instagram.com") {
			social.InstagramURL = href
		}
	}
	return social
}
