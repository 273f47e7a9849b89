package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simatwa/tailoring-ms-api/config"
	"github.com/simatwa/tailoring-ms-api/models"
	"gorm.io/gorm"
)

// Listing caps for the public marketing surface
const (
	maxServicesListed  = 15
	maxLatestWork      = 15
	maxFeedbacksListed = 6
	maxFAQsListed      = 10
)

// GetAbout handles GET /v1/about - the business information singleton
func GetAbout(c *gin.Context) {
	var about models.About
	if err := config.GetDB().Order("id").First(&about).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c, "Business information is not available.")
			return
		}
		abortInternal(c, err, "failed to fetch business information")
		return
	}

	c.JSON(http.StatusOK, newAboutResponse(&about))
}

// newMessageRequest is the public contact-form payload
type newMessageRequest struct {
	Sender string `json:"sender" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Body   string `json:"body" binding:"required"`
}

// NewMessage handles POST /v1/message - persists a visitor inquiry; no
// public read path exists for messages
func NewMessage(c *gin.Context) {
	var req newMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortValidation(c, err.Error())
		return
	}

	message := models.Message{
		Sender: req.Sender,
		Email:  req.Email,
		Body:   req.Body,
	}
	if err := config.GetDB().Create(&message).Error; err != nil {
		abortInternal(c, err, "failed to save message")
		return
	}

	respondDetail(c, http.StatusOK, "Message received succesfully.")
}

// GetServicesOffered handles GET /v1/services-offered - the catalog in
// creation order, capped
func GetServicesOffered(c *gin.Context) {
	var catalog []models.Service
	err := config.GetDB().
		Order("created_at ASC").
		Limit(maxServicesListed).
		Find(&catalog).Error
	if err != nil {
		abortInternal(c, err, "failed to list services")
		return
	}

	responses := make([]ServiceResponse, 0, len(catalog))
	for i := range catalog {
		responses = append(responses, newServiceResponse(&catalog[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetLatestWork handles GET /v1/latest-work - the newest completed and
// publicly visible orders, reduced to id and picture
func GetLatestWork(c *gin.Context) {
	var orders []models.Order
	err := config.GetDB().
		Where("status = ? AND show_in_index = ?", models.OrderCompleted, true).
		Order("created_at DESC").
		Limit(maxLatestWork).
		Find(&orders).Error
	if err != nil {
		abortInternal(c, err, "failed to list latest work")
		return
	}

	responses := make([]ShallowCompletedOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ShallowCompletedOrderResponse{
			ID:      orders[i].ID,
			Picture: imageURL(orders[i].Picture),
		})
	}
	c.JSON(http.StatusOK, responses)
}

// GetLatestWorkDetail handles GET /v1/latest-work/:id - the public
// projection of one completed, visible order
func GetLatestWorkDetail(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var order models.Order
	err := config.GetDB().
		Preload("Service").
		Where("id = ? AND status = ? AND show_in_index = ?", id, models.OrderCompleted, true).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c, orderNotFoundDetail(id))
			return
		}
		abortInternal(c, err, "failed to fetch latest work")
		return
	}

	c.JSON(http.StatusOK, newCompletedOrderResponse(&order))
}

// GetFeedbacks handles GET /v1/feedbacks - visible testimonials, newest
// first, with a live snapshot of each sender's public display fields
func GetFeedbacks(c *gin.Context) {
	var feedbacks []models.ServiceFeedback
	err := config.GetDB().
		Preload("Sender").
		Where("show_in_index = ?", true).
		Order("created_at DESC").
		Limit(maxFeedbacksListed).
		Find(&feedbacks).Error
	if err != nil {
		abortInternal(c, err, "failed to list feedbacks")
		return
	}

	responses := make([]FeedbackResponse, 0, len(feedbacks))
	for i := range feedbacks {
		responses = append(responses, newFeedbackResponse(&feedbacks[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetFAQs handles GET /v1/faqs - shown FAQs, oldest first, capped
func GetFAQs(c *gin.Context) {
	var faqs []models.FAQ
	err := config.GetDB().
		Where("is_shown = ?", true).
		Order("created_at ASC").
		Limit(maxFAQsListed).
		Find(&faqs).Error
	if err != nil {
		abortInternal(c, err, "failed to list FAQs")
		return
	}

	responses := make([]FAQResponse, 0, len(faqs))
	for _, faq := range faqs {
		responses = append(responses, FAQResponse{Question: faq.Question, Answer: faq.Answer})
	}
	c.JSON(http.StatusOK, responses)
}
