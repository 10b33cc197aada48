package request

import (
	"errors"
	"strings"

	"github.com/user/company-analyzer/pkg/utils"
)

// ErrMissingURL is returned when the request carries no url.
var ErrMissingURL = errors.New("url is required")

type AnalyzeRequest struct {
	URL string `json:"url"`
}

// Normalize trims the URL and checks that it is an absolute http(s) URL.
func (r *AnalyzeRequest) Normalize() error {
	r.URL = strings.TrimSpace(r.URL)
	if r.URL == "" {
		return ErrMissingURL
	}
	_, err := utils.ParseAbsoluteURL(r.URL)
	return err
}
