package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simatwa/tailoring-ms-api/config"
	"github.com/simatwa/tailoring-ms-api/middleware"
	"github.com/simatwa/tailoring-ms-api/models"
)

// GetProfile handles GET /v1/profile - returns the caller's own profile
func GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondDetail(c, http.StatusUnauthorized, "Invalid or missing token")
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

// UpdateProfile handles PATCH /v1/profile - partial update of the editable
// personal fields. Omitted or empty fields keep their previous value.
func UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondDetail(c, http.StatusUnauthorized, "Invalid or missing token")
		return
	}

	var req EditablePersonalData
	if err := c.ShouldBindJSON(&req); err != nil {
		abortValidation(c, err.Error())
		return
	}

	mergeString(&user.FirstName, req.FirstName)
	mergeString(&user.LastName, req.LastName)
	mergeString(&user.PhoneNumber, req.PhoneNumber)
	mergeString(&user.Email, req.Email)
	mergeString(&user.Location, req.Location)

	if err := config.GetDB().Save(user).Error; err != nil {
		abortInternal(c, err, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, EditablePersonalData{
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		Email:       user.Email,
		Location:    user.Location,
	})
}

// UserExists handles GET /v1/user/exists?username= - public probe used by
// the registration form, boolean wrapped in the detail envelope
func UserExists(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		abortValidation(c, "username query parameter is required")
		return
	}

	var count int64
	if err := config.GetDB().Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		abortInternal(c, err, "failed to check username")
		return
	}

	respondDetail(c, http.StatusOK, count > 0)
}

// mergeString overwrites dst only when the incoming value is set and
// non-empty, preserving stored state for omitted fields
func mergeString(dst **string, incoming *string) {
	if incoming != nil && *incoming != "" {
		*dst = incoming
	}
}
