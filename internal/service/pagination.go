package service

import (
	"strconv"
	"strings"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
)

// ParsePage reads 1-based page and limit query values. Empty values take the defaults;
// limits above the maximum are clamped.
func ParsePage(pageRaw, limitRaw string) (domain.Page, error) {
	page := domain.Page{Number: domain.DefaultPage, Limit: domain.DefaultLimit}

	if s := strings.TrimSpace(pageRaw); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return domain.Page{}, apperr.Validation("page must be a positive integer")
		}
		page.Number = n
	}
	if s := strings.TrimSpace(limitRaw); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return domain.Page{}, apperr.Validation("limit must be a positive integer")
		}
		page.Limit = min(n, domain.MaxLimit)
	}
	return page, nil
}
