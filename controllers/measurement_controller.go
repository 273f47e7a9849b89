package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/simatwa/tailoring-ms-api/config"
	"github.com/simatwa/tailoring-ms-api/middleware"
	"github.com/simatwa/tailoring-ms-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EditableMeasurements is the PATCH body; nil means "not provided", which
// is distinct from an explicit zero
type EditableMeasurements struct {
	Chest         *float64 `json:"chest"`
	Waist         *float64 `json:"waist"`
	Hips          *float64 `json:"hips"`
	Inseam        *float64 `json:"inseam"`
	Neck          *float64 `json:"neck"`
	SleeveLength  *float64 `json:"sleeve_length"`
	ShoulderWidth *float64 `json:"shoulder_width"`
	Thigh         *float64 `json:"thigh"`
	Calf          *float64 `json:"calf"`
}

// GetMeasurements handles GET /v1/measurements - returns the caller's
// sizing profile, creating an all-zero record on first access. The insert
// uses ON CONFLICT DO NOTHING so concurrent first reads cannot produce a
// second row.
func GetMeasurements(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondDetail(c, http.StatusUnauthorized, "Invalid or missing token")
		return
	}

	db := config.GetDB()
	var measurement models.Measurement

	err := db.Transaction(func(tx *gorm.DB) error {
		fresh := models.Measurement{UserID: user.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", user.ID).First(&measurement).Error
	})
	if err != nil {
		abortInternal(c, err, "failed to load measurements")
		return
	}

	c.JSON(http.StatusOK, newMeasurementResponse(&measurement))
}

// UpdateMeasurements handles PATCH /v1/measurements - merges the provided
// fields over the stored record inside one transaction; omitted fields
// keep their previous value.
func UpdateMeasurements(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondDetail(c, http.StatusUnauthorized, "Invalid or missing token")
		return
	}

	var req EditableMeasurements
	if err := c.ShouldBindJSON(&req); err != nil {
		abortValidation(c, err.Error())
		return
	}

	db := config.GetDB()
	var measurement models.Measurement

	err := db.Transaction(func(tx *gorm.DB) error {
		fresh := models.Measurement{UserID: user.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).First(&measurement).Error; err != nil {
			return err
		}

		mergeDecimal(&measurement.Chest, req.Chest)
		mergeDecimal(&measurement.Waist, req.Waist)
		mergeDecimal(&measurement.Hips, req.Hips)
		mergeDecimal(&measurement.Inseam, req.Inseam)
		mergeDecimal(&measurement.Neck, req.Neck)
		mergeDecimal(&measurement.SleeveLength, req.SleeveLength)
		mergeDecimal(&measurement.ShoulderWidth, req.ShoulderWidth)
		mergeDecimal(&measurement.Thigh, req.Thigh)
		mergeDecimal(&measurement.Calf, req.Calf)

		return tx.Save(&measurement).Error
	})
	if err != nil {
		abortInternal(c, err, "failed to update measurements")
		return
	}

	c.JSON(http.StatusOK, newMeasurementResponse(&measurement))
}

// mergeDecimal overwrites dst only when the field was provided; an
// explicit zero is a real value, unlike an omitted field
func mergeDecimal(dst *decimal.Decimal, incoming *float64) {
	if incoming != nil {
		*dst = decimal.NewFromFloat(*incoming)
	}
}
