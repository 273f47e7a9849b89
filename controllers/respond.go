package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/simatwa/tailoring-ms-api/services"
)

// respondDetail writes the uniform response envelope used for feedback
// messages and every error on the /v1 surface.
func respondDetail(c *gin.Context, status int, detail interface{}) {
	c.JSON(status, gin.H{"detail": detail})
}

// abortNotFound rejects with 404. Ownership failures deliberately use the
// same wording as absence so callers cannot probe other users' records.
func abortNotFound(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": detail})
}

// abortValidation rejects malformed input with 422 and the per-field detail
func abortValidation(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": detail})
}

// abortInternal logs the failure and returns a generic 500; internals are
// never leaked to the caller
func abortInternal(c *gin.Context, err error, msg string) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}

// imageURL resolves a stored blob name through the configured image store.
// Resolution failures degrade to an empty URL rather than failing the read.
func imageURL(name string) string {
	url, err := services.GetImageService().GetImageURL(name)
	if err != nil {
		log.Error().Err(err).Str("blob", name).Msg("failed to resolve image URL")
		return ""
	}
	return url
}

// imageURLPtr resolves an optional blob name, substituting fallback (a
// placeholder blob name) when absent
func imageURLPtr(name *string, fallback string) string {
	if name == nil || *name == "" {
		if fallback == "" {
			return ""
		}
		return imageURL(fallback)
	}
	return imageURL(*name)
}
