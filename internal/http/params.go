package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
	"vidtube/internal/service"
)

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	return parseID(c.Param(name), name)
}

func parseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return id, nil
}

func pageQuery(c *gin.Context) (domain.Page, error) {
	return service.ParsePage(c.Query("page"), c.Query("limit"))
}

// pageResponse builds the listing payload, e.g. {"videos": [...], "totalVideos": 3}.
func pageResponse(key, totalKey string, items any, total int64, page domain.Page) gin.H {
	return gin.H{
		key:      items,
		totalKey: total,
		"page":   page.Number,
		"limit":  page.Limit,
	}
}
