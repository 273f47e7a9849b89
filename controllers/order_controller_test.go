package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/simatwa/tailoring-ms-api/models"
	"github.com/simatwa/tailoring-ms-api/services"
	"github.com/simatwa/tailoring-ms-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// pngBytes is a minimal payload for upload parts; validation only looks at
// the extension and size
var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func placeOrderForm() map[string]string {
	return map[string]string{
		"service_name":    "Custom Suits",
		"details":         "navy blazer",
		"material_type":   "Wool",
		"fabric_required": "false",
		"quantity":        "1",
	}
}

func TestPlaceOrder(t *testing.T) {
	db, _ := setupControllerTest(t)
	_, token := testutil.SeedUser(t, db, "wanjiru")
	testutil.SeedService(t, db, models.ServiceCustomSuits)
	router := newAuthedRouter()

	tests := []struct {
		name           string
		fields         map[string]string
		expectedStatus int
		check          func(t *testing.T, body map[string]interface{})
	}{
		{
			name:           "successfully place order",
			fields:         placeOrderForm(),
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "Custom Suits", body["service_name"])
				assert.Equal(t, "navy blazer", body["details"])
				assert.Equal(t, "Wool", body["material_type"])
				assert.Equal(t, false, body["fabric_required"])
				assert.Equal(t, float64(1), body["quantity"])
				assert.Equal(t, "Pending", body["status"])
				assert.Equal(t, "Medium", body["urgency"], "urgency defaults to Medium")
				assert.Nil(t, body["charges"], "charges start null")
				assert.Equal(t, float64(0), body["charges_paid"])
			},
		},
		{
			name: "unknown service name is 422",
			fields: map[string]string{
				"service_name":  "Dry Cleaning",
				"details":       "x",
				"material_type": "Wool",
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "missing details is 422",
			fields: map[string]string{
				"service_name":  "Custom Suits",
				"material_type": "Wool",
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "zero quantity is 422",
			fields: map[string]string{
				"service_name":  "Custom Suits",
				"details":       "x",
				"material_type": "Wool",
				"quantity":      "0",
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown material is 422",
			fields: map[string]string{
				"service_name":  "Custom Suits",
				"details":       "x",
				"material_type": "Denim",
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown urgency is 422",
			fields: map[string]string{
				"service_name":  "Custom Suits",
				"details":       "x",
				"material_type": "Wool",
				"urgency":       "Critical",
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doForm(t, router, http.MethodPost, "/v1/order", token, tt.fields, "", "", nil)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.check != nil {
				var body map[string]interface{}
				decodeBody(t, w, &body)
				tt.check(t, body)
			}
		})
	}
}

func TestPlaceOrderCatalogMiss(t *testing.T) {
	db, _ := setupControllerTest(t)
	_, token := testutil.SeedUser(t, db, "wanjiru")
	// Catalog has no Wedding Attire row even though the name is valid
	testutil.SeedService(t, db, models.ServiceCustomSuits)
	router := newAuthedRouter()

	fields := placeOrderForm()
	fields["service_name"] = "Wedding Attire"
	w := doForm(t, router, http.MethodPost, "/v1/order", token, fields, "", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "does not exist")
}

func TestPlaceOrderWithReferenceImage(t *testing.T) {
	db, images := setupControllerTest(t)
	_, token := testutil.SeedUser(t, db, "wanjiru")
	testutil.SeedService(t, db, models.ServiceCustomSuits)
	router := newAuthedRouter()

	w := doForm(t, router, http.MethodPost, "/v1/order", token,
		placeOrderForm(), "reference_image", "inspiration.png", pngBytes)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.Contains(t, body["reference_image"], "inspiration.png")
	assert.True(t, images.ImageExists("order_reference/mock_inspiration.png"))

	// Stored blob name recorded on the row, not the URL
	var order models.Order
	assert.NoError(t, db.First(&order).Error)
	if assert.NotNil(t, order.ReferenceImage) {
		assert.Equal(t, "order_reference/mock_inspiration.png", *order.ReferenceImage)
	}
}

func TestPlaceOrderRejectsBadUpload(t *testing.T) {
	db, _ := setupControllerTest(t)
	_, token := testutil.SeedUser(t, db, "wanjiru")
	testutil.SeedService(t, db, models.ServiceCustomSuits)
	router := newAuthedRouter()

	w := doForm(t, router, http.MethodPost, "/v1/order", token,
		placeOrderForm(), "reference_image", "design.pdf", []byte("%PDF"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count, "no row may exist after a rejected upload")
}

// brokenImageStore fails every upload with an infrastructure error,
// standing in for a full disk or an unreachable bucket
type brokenImageStore struct{}

func (brokenImageStore) UploadImage(*multipart.FileHeader, string) (string, error) {
	return "", errors.New("disk full")
}

func (brokenImageStore) GetImageURL(name string) (string, error) { return name, nil }

func (brokenImageStore) DeleteImage(string) error { return nil }

func TestPlaceOrderStorageFailureIsInternal(t *testing.T) {
	db, _ := setupControllerTest(t)
	_, token := testutil.SeedUser(t, db, "wanjiru")
	testutil.SeedService(t, db, models.ServiceCustomSuits)
	services.SetImageService(brokenImageStore{})
	router := newAuthedRouter()

	w := doForm(t, router, http.MethodPost, "/v1/order", token,
		placeOrderForm(), "reference_image", "inspiration.png", pngBytes)
	assert.Equal(t, http.StatusInternalServerError, w.Code,
		"storage failures are not the caller's fault")

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestListOrders(t *testing.T) {
	db, _ := setupControllerTest(t)
	owner, token := testutil.SeedUser(t, db, "wanjiru")
	other, _ := testutil.SeedUser(t, db, "njeri")
	service := testutil.SeedService(t, db, models.ServiceCustomSuits)
	router := newAuthedRouter()

	charges := decimal.NewFromInt(4500)
	seedOrder(t, db, owner.ID, service.ID, func(o *models.Order) {
		o.Details = "first"
	})
	seedOrder(t, db, owner.ID, service.ID, func(o *models.Order) {
		o.Details = "second"
		o.Charges = &charges
		o.Status = models.OrderInProgress
	})
	seedOrder(t, db, other.ID, service.ID, func(o *models.Order) {
		o.Details = "foreign"
	})

	w := doJSON(t, router, http.MethodGet, "/v1/orders", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var list []map[string]interface{}
	decodeBody(t, w, &list)
	assert.Len(t, list, 2, "only the caller's own orders are listed")

	for _, entry := range list {
		assert.Equal(t, "Custom Suits", entry["service_name"])
		// Reduced projection has no detail text or reference image
		assert.NotContains(t, entry, "details")
		assert.NotContains(t, entry, "reference_image")
	}
	assert.Equal(t, float64(4500), list[0]["charges"], "newest order first")
	assert.Nil(t, list[1]["charges"])
}

func TestGetOrderOwnershipIsolation(t *testing.T) {
	db, _ := setupControllerTest(t)
	owner, _ := testutil.SeedUser(t, db, "wanjiru")
	_, intruderToken := testutil.SeedUser(t, db, "njeri")
	service := testutil.SeedService(t, db, models.ServiceCustomSuits)
	router := newAuthedRouter()

	order := seedOrder(t, db, owner.ID, service.ID, nil)

	// Foreign order and missing order are indistinguishable 404s
	wForeign := doJSON(t, router, http.MethodGet, fmt.Sprintf("/v1/order/%d", order.ID), intruderToken, nil)
	wMissing := doJSON(t, router, http.MethodGet, "/v1/order/999", intruderToken, nil)

	assert.Equal(t, http.StatusNotFound, wForeign.Code)
	assert.Equal(t, http.StatusNotFound, wMissing.Code)
	assert.NotContains(t, wForeign.Body.String(), "navy", "no order data may leak")

	var foreignBody, missingBody map[string]interface{}
	decodeBody(t, wForeign, &foreignBody)
	decodeBody(t, wMissing, &missingBody)
	assert.Equal(t,
		fmt.Sprintf("Order with id %d does not exist.", order.ID),
		foreignBody["detail"])
	assert.Equal(t, "Order with id 999 does not exist.", missingBody["detail"])
}

func TestUpdateOrderPreservesOmittedFields(t *testing.T) {
	db, _ := setupControllerTest(t)
	owner, token := testutil.SeedUser(t, db, "wanjiru")
	service := testutil.SeedService(t, db, models.ServiceCustomSuits)
	router := newAuthedRouter()

	colors := "charcoal"
	order := seedOrder(t, db, owner.ID, service.ID, func(o *models.Order) {
		o.Colors = &colors
		o.Quantity = 3
		o.Urgency = models.UrgencyHigh
	})

	// PATCH with no fields must change nothing
	w := doForm(t, router, http.MethodPatch, fmt.Sprintf("/v1/order/%d", order.ID), token, nil, "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var after models.Order
	assert.NoError(t, db.First(&after, order.ID).Error)
	assert.Equal(t, order.Details, after.Details)
	assert.Equal(t, order.MaterialType, after.MaterialType)
	assert.Equal(t, order.FabricRequired, after.FabricRequired)
	assert.Equal(t, order.Quantity, after.Quantity)
	assert.Equal(t, *order.Colors, *after.Colors)
	assert.Equal(t, order.Urgency, after.Urgency)
	assert.Equal(t, order.Status, after.Status)
	assert.Equal(t, order.ServiceID, after.ServiceID)
}

func TestUpdateOrderFields(t *testing.T) {
	db, _ := setupControllerTest(t)
	owner, token := testutil.SeedUser(t, db, "wanjiru")
	service := testutil.SeedService(t, db, models.ServiceCustomSuits)
	alterations := testutil.SeedService(t, db, models.ServiceAlterations)
	router := newAuthedRouter()

	order := seedOrder(t, db, owner.ID, service.ID, nil)

	w := doForm(t, router, http.MethodPatch, fmt.Sprintf("/v1/order/%d", order.ID), token,
		map[string]string{
			"details":       "now with pinstripes",
			"service_name":  "Alterations",
			"quantity":      "2",
			"urgency":       "High",
			"material_type": "Silk",
		}, "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.Equal(t, "now with pinstripes", body["details"])
	assert.Equal(t, "Alterations", body["service_name"])
	assert.Equal(t, float64(2), body["quantity"])
	assert.Equal(t, "High", body["urgency"])
	assert.Equal(t, "Silk", body["material_type"])

	var after models.Order
	assert.NoError(t, db.First(&after, order.ID).Error)
	assert.Equal(t, alterations.ID, after.ServiceID)
}

func TestUpdateOrderReplacesReferenceImage(t *testing.T) {
	db, images := setupControllerTest(t)
	owner, token := testutil.SeedUser(t, db, "wanjiru")
	testutil.SeedService(t, db, models.ServiceCustomSuits)
	router := newAuthedRouter()

	// Place with an initial image so the mock store tracks the blob
	w := doForm(t, router, http.MethodPost, "/v1/order", token,
		placeOrderForm(), "reference_image", "old.png", pngBytes)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, images.ImageExists("order_reference/mock_old.png"))

	var order models.Order
	assert.NoError(t, db.Where("client_id = ?", owner.ID).First(&order).Error)

	w = doForm(t, router, http.MethodPatch, fmt.Sprintf("/v1/order/%d", order.ID), token,
		nil, "reference_image", "new.png", pngBytes)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.False(t, images.ImageExists("order_reference/mock_old.png"), "replaced blob is released")
	assert.True(t, images.ImageExists("order_reference/mock_new.png"))

	assert.NoError(t, db.First(&order, order.ID).Error)
	assert.Equal(t, "order_reference/mock_new.png", *order.ReferenceImage)
}

func TestUpdateOrderOwnershipIsolation(t *testing.T) {
	db, _ := setupControllerTest(t)
	owner, _ := testutil.SeedUser(t, db, "wanjiru")
	_, intruderToken := testutil.SeedUser(t, db, "njeri")
	service := testutil.SeedService(t, db, models.ServiceCustomSuits)
	router := newAuthedRouter()

	order := seedOrder(t, db, owner.ID, service.ID, nil)

	w := doForm(t, router, http.MethodPatch, fmt.Sprintf("/v1/order/%d", order.ID), intruderToken,
		map[string]string{"details": "hijacked"}, "", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var after models.Order
	assert.NoError(t, db.First(&after, order.ID).Error)
	assert.NotEqual(t, "hijacked", after.Details)
}

func TestUpdateOrderUnknownCatalogService(t *testing.T) {
	db, _ := setupControllerTest(t)
	owner, token := testutil.SeedUser(t, db, "wanjiru")
	service := testutil.SeedService(t, db, models.ServiceCustomSuits)
	router := newAuthedRouter()

	order := seedOrder(t, db, owner.ID, service.ID, nil)

	// Valid name, but the catalog carries no Wedding Attire row
	w := doForm(t, router, http.MethodPatch, fmt.Sprintf("/v1/order/%d", order.ID), token,
		map[string]string{"service_name": "Wedding Attire"}, "", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.Equal(t, `Service "Wedding Attire" does not exist.`, body["detail"],
		"the missing entity is the service, not the order")

	var after models.Order
	assert.NoError(t, db.First(&after, order.ID).Error)
	assert.Equal(t, service.ID, after.ServiceID)
}

func TestOrderIDMustBeNumeric(t *testing.T) {
	db, _ := setupControllerTest(t)
	_, token := testutil.SeedUser(t, db, "wanjiru")
	router := newAuthedRouter()

	// Malformed ids are rejected before any query; the integer column on
	// the production backend would reject the raw string with a driver
	// error, not a clean miss
	for _, tt := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/order/abc"},
		{http.MethodGet, "/v1/order/12abc"},
		{http.MethodGet, "/v1/order/-1"},
		{http.MethodPatch, "/v1/order/abc"},
		{http.MethodDelete, "/v1/order/abc"},
	} {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var w = doForm(t, router, tt.method, tt.path, token,
				map[string]string{"details": "x"}, "", "", nil)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), "id must be a positive integer")
		})
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteOrderGuard(t *testing.T) {
	db, _ := setupControllerTest(t)
	owner, token := testutil.SeedUser(t, db, "wanjiru")
	service := testutil.SeedService(t, db, models.ServiceCustomSuits)
	router := newAuthedRouter()

	for _, status := range []models.OrderStatus{models.OrderInProgress, models.OrderCompleted, models.OrderCancelled} {
		t.Run(string(status), func(t *testing.T) {
			order := seedOrder(t, db, owner.ID, service.ID, func(o *models.Order) {
				o.Status = status
			})

			w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/v1/order/%d", order.ID), token, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)

			var count int64
			db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count)
			assert.EqualValues(t, 1, count, "non-pending orders must survive delete attempts")
		})
	}
}

func TestDeletePendingOrderReleasesImage(t *testing.T) {
	db, images := setupControllerTest(t)
	_, token := testutil.SeedUser(t, db, "wanjiru")
	testutil.SeedService(t, db, models.ServiceCustomSuits)
	router := newAuthedRouter()

	w := doForm(t, router, http.MethodPost, "/v1/order", token,
		placeOrderForm(), "reference_image", "sketch.png", pngBytes)
	assert.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	assert.NoError(t, db.First(&order).Error)

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/v1/order/%d", order.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Order deleted succesfully.")

	assert.ErrorIs(t, db.First(&models.Order{}, order.ID).Error, gorm.ErrRecordNotFound)
	assert.False(t, images.ImageExists("order_reference/mock_sketch.png"), "blob lifetime is tied to the row")
}

// seedOrder inserts an order row directly, bypassing the HTTP surface
func seedOrder(t *testing.T, db *gorm.DB, clientID, serviceID uint, mutate func(*models.Order)) *models.Order {
	t.Helper()

	order := &models.Order{
		ClientID:     clientID,
		ServiceID:    serviceID,
		Details:      "navy blazer",
		MaterialType: models.MaterialWool,
		Quantity:     1,
		Urgency:      models.UrgencyMedium,
		Status:       models.OrderPending,
		Picture:      models.DefaultOrderPicture,
	}
	if mutate != nil {
		mutate(order)
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	return order
}
