package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/simatwa/tailoring-ms-api/config"
	"github.com/simatwa/tailoring-ms-api/middleware"
	"github.com/simatwa/tailoring-ms-api/models"
	"github.com/simatwa/tailoring-ms-api/services"
	"github.com/simatwa/tailoring-ms-api/utils"
	"gorm.io/gorm"
)

// referenceImageDir is the media subdirectory for order reference uploads
const referenceImageDir = "order_reference"

// orderNotFoundDetail words ownership failures exactly like absence so the
// endpoint cannot be used to probe other clients' orders
func orderNotFoundDetail(id uint64) string {
	return fmt.Sprintf("Order with id %d does not exist.", id)
}

// orderIDParam parses the :id path parameter. Non-numeric ids are rejected
// with 422 before any query runs; the integer column would otherwise choke
// on the raw string at parameter encoding time.
func orderIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		abortValidation(c, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// errServiceNotInCatalog marks a valid service name with no catalog row,
// keeping it distinct from a missing order inside the update transaction
var errServiceNotInCatalog = errors.New("service not in catalog")

// PlaceOrder handles POST /v1/order - places a new order for the caller.
// Multipart form: service_name, details, material_type, fabric_required,
// optional quantity/reference_image/colors/urgency.
func PlaceOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondDetail(c, http.StatusUnauthorized, "Invalid or missing token")
		return
	}

	serviceName := models.ServiceName(c.PostForm("service_name"))
	if !serviceName.Valid() {
		abortValidation(c, fmt.Sprintf("service_name must be one of %v", models.ServiceNames()))
		return
	}

	details := c.PostForm("details")
	if details == "" {
		abortValidation(c, "details is required")
		return
	}

	materialType := models.MaterialType(c.PostForm("material_type"))
	if !materialType.Valid() {
		abortValidation(c, "material_type must be one of Cotton, Silk, Wool, Polyester")
		return
	}

	fabricRequired, err := strconv.ParseBool(c.DefaultPostForm("fabric_required", "false"))
	if err != nil {
		abortValidation(c, "fabric_required must be a boolean")
		return
	}

	quantity := 1
	if raw, provided := c.GetPostForm("quantity"); provided {
		quantity, err = strconv.Atoi(raw)
		if err != nil || quantity <= 0 {
			abortValidation(c, "quantity must be a positive integer")
			return
		}
	}

	urgency := models.UrgencyMedium
	if raw, provided := c.GetPostForm("urgency"); provided {
		urgency = models.OrderUrgency(raw)
		if !urgency.Valid() {
			abortValidation(c, "urgency must be one of Low, Medium, High")
			return
		}
	}

	var colors *string
	if raw, provided := c.GetPostForm("colors"); provided && raw != "" {
		colors = &raw
	}

	db := config.GetDB()

	var service models.Service
	if err := db.Where("name = ?", serviceName).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c, fmt.Sprintf("Service %q does not exist.", serviceName))
			return
		}
		abortInternal(c, err, "failed to resolve service")
		return
	}

	// The upload stream is consumed before the row exists; if the insert
	// fails the stored blob is compensated away below.
	var referenceImage *string
	if fileHeader, err := c.FormFile("reference_image"); err == nil {
		name, err := services.GetImageService().UploadImage(fileHeader, referenceImageDir)
		if err != nil {
			var uploadErr *utils.FileUploadError
			if errors.As(err, &uploadErr) {
				abortValidation(c, err.Error())
				return
			}
			abortInternal(c, err, "failed to store reference image")
			return
		}
		referenceImage = &name
	}

	order := models.Order{
		ClientID:       user.ID,
		ServiceID:      service.ID,
		Details:        details,
		MaterialType:   materialType,
		FabricRequired: fabricRequired,
		Quantity:       quantity,
		Colors:         colors,
		Urgency:        urgency,
		Status:         models.OrderPending,
		Picture:        models.DefaultOrderPicture,
		ReferenceImage: referenceImage,
	}

	if err := db.Create(&order).Error; err != nil {
		if referenceImage != nil {
			if cleanupErr := services.GetImageService().DeleteImage(*referenceImage); cleanupErr != nil {
				log.Error().Err(cleanupErr).Str("blob", *referenceImage).Msg("failed to clean up orphaned reference image")
			}
		}
		abortInternal(c, err, "failed to create order")
		return
	}

	order.Service = service
	c.JSON(http.StatusCreated, newOrderResponse(&order))
}

// ListOrders handles GET /v1/orders - the caller's own orders, newest
// first, in the reduced projection
func ListOrders(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondDetail(c, http.StatusUnauthorized, "Invalid or missing token")
		return
	}

	var orders []models.Order
	err := config.GetDB().
		Preload("Service").
		Where("client_id = ?", user.ID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		abortInternal(c, err, "failed to list orders")
		return
	}

	responses := make([]ShallowOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, newShallowOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetOrder handles GET /v1/order/:id - the full projection of one order,
// scoped to the caller. Absent and foreign orders both return 404.
func GetOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondDetail(c, http.StatusUnauthorized, "Invalid or missing token")
		return
	}

	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var order models.Order
	err := config.GetDB().
		Preload("Service").
		Where("id = ? AND client_id = ?", id, user.ID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c, orderNotFoundDetail(id))
			return
		}
		abortInternal(c, err, "failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, newOrderResponse(&order))
}

// UpdateOrder handles PATCH /v1/order/:id - presence-aware partial update.
// Every supplied form field overwrites; every omitted field keeps its
// stored value. The read-merge-write runs in one transaction.
func UpdateOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondDetail(c, http.StatusUnauthorized, "Invalid or missing token")
		return
	}

	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	db := config.GetDB()

	// Validate everything supplied before touching the row
	var (
		serviceName  *models.ServiceName
		materialType *models.MaterialType
		urgency      *models.OrderUrgency
		quantity     *int
		fabric       *bool
	)

	if raw, provided := c.GetPostForm("service_name"); provided {
		name := models.ServiceName(raw)
		if !name.Valid() {
			abortValidation(c, fmt.Sprintf("service_name must be one of %v", models.ServiceNames()))
			return
		}
		serviceName = &name
	}
	if raw, provided := c.GetPostForm("material_type"); provided {
		mt := models.MaterialType(raw)
		if !mt.Valid() {
			abortValidation(c, "material_type must be one of Cotton, Silk, Wool, Polyester")
			return
		}
		materialType = &mt
	}
	if raw, provided := c.GetPostForm("urgency"); provided {
		u := models.OrderUrgency(raw)
		if !u.Valid() {
			abortValidation(c, "urgency must be one of Low, Medium, High")
			return
		}
		urgency = &u
	}
	if raw, provided := c.GetPostForm("quantity"); provided {
		q, err := strconv.Atoi(raw)
		if err != nil || q <= 0 {
			abortValidation(c, "quantity must be a positive integer")
			return
		}
		quantity = &q
	}
	if raw, provided := c.GetPostForm("fabric_required"); provided {
		f, err := strconv.ParseBool(raw)
		if err != nil {
			abortValidation(c, "fabric_required must be a boolean")
			return
		}
		fabric = &f
	}

	fileHeader, fileErr := c.FormFile("reference_image")

	var order models.Order
	var replacedImage *string

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Service").
			Where("id = ? AND client_id = ?", id, user.ID).
			First(&order).Error; err != nil {
			return err
		}

		if details, provided := c.GetPostForm("details"); provided && details != "" {
			order.Details = details
		}
		if materialType != nil {
			order.MaterialType = *materialType
		}
		if fabric != nil {
			order.FabricRequired = *fabric
		}
		if quantity != nil {
			order.Quantity = *quantity
		}
		if colors, provided := c.GetPostForm("colors"); provided && colors != "" {
			order.Colors = &colors
		}
		if urgency != nil {
			order.Urgency = *urgency
		}
		if serviceName != nil {
			var service models.Service
			if err := tx.Where("name = ?", *serviceName).First(&service).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errServiceNotInCatalog
				}
				return err
			}
			order.ServiceID = service.ID
			order.Service = service
		}
		if fileErr == nil {
			name, err := services.GetImageService().UploadImage(fileHeader, referenceImageDir)
			if err != nil {
				return err
			}
			replacedImage = order.ReferenceImage
			order.ReferenceImage = &name
		}

		return tx.Save(&order).Error
	})
	if err != nil {
		if errors.Is(err, errServiceNotInCatalog) {
			abortNotFound(c, fmt.Sprintf("Service %q does not exist.", *serviceName))
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c, orderNotFoundDetail(id))
			return
		}
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			abortValidation(c, err.Error())
			return
		}
		abortInternal(c, err, "failed to update order")
		return
	}

	// The previous blob is released only after the row write committed
	if replacedImage != nil {
		if err := services.GetImageService().DeleteImage(*replacedImage); err != nil {
			log.Error().Err(err).Str("blob", *replacedImage).Msg("failed to delete replaced reference image")
		}
	}

	c.JSON(http.StatusOK, newOrderResponse(&order))
}

// DeleteOrder handles DELETE /v1/order/:id - permitted only for the owner
// and only while the order is still Pending; both failures surface as 404
func DeleteOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondDetail(c, http.StatusUnauthorized, "Invalid or missing token")
		return
	}

	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	db := config.GetDB()

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND client_id = ? AND status = ?", id, user.ID, models.OrderPending).
			First(&order).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c, fmt.Sprintf("Order with id %d does not exist or is not pending.", id))
			return
		}
		abortInternal(c, err, "failed to delete order")
		return
	}

	// Release the reference image blob tied to the deleted row
	if order.ReferenceImage != nil {
		if err := services.GetImageService().DeleteImage(*order.ReferenceImage); err != nil {
			log.Error().Err(err).Str("blob", *order.ReferenceImage).Msg("failed to delete reference image")
		}
	}

	respondDetail(c, http.StatusOK, "Order deleted succesfully.")
}
