package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/simatwa/tailoring-ms-api/config"
	"github.com/simatwa/tailoring-ms-api/middleware"
	"github.com/simatwa/tailoring-ms-api/services"
	"github.com/simatwa/tailoring-ms-api/tests/testutil"
	"gorm.io/gorm"
)

// setupControllerTest wires an in-memory database and a mock image store
// into the package-level singletons the controllers read from
func setupControllerTest(t *testing.T) (*gorm.DB, *services.MockImageService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	config.SetDB(db)

	mock := services.NewMockImageService()
	mock.SetAsMockForTesting()
	return db, mock
}

// newAuthedRouter registers the authenticated client surface
func newAuthedRouter() *gin.Engine {
	router := gin.New()
	v1 := router.Group("/v1", middleware.RequireToken())
	{
		v1.PATCH("/token", RotateToken)
		v1.GET("/profile", GetProfile)
		v1.PATCH("/profile", UpdateProfile)
		v1.GET("/measurements", GetMeasurements)
		v1.PATCH("/measurements", UpdateMeasurements)
		v1.POST("/order", PlaceOrder)
		v1.GET("/orders", ListOrders)
		v1.GET("/order/:id", GetOrder)
		v1.PATCH("/order/:id", UpdateOrder)
		v1.DELETE("/order/:id", DeleteOrder)
	}
	return router
}

// newPublicRouter registers the unauthenticated surface
func newPublicRouter() *gin.Engine {
	router := gin.New()
	v1 := router.Group("/v1")
	{
		v1.POST("/token", FetchToken)
		v1.GET("/user/exists", UserExists)
		v1.GET("/about", GetAbout)
		v1.POST("/message", NewMessage)
		v1.GET("/services-offered", GetServicesOffered)
		v1.GET("/latest-work", GetLatestWork)
		v1.GET("/latest-work/:id", GetLatestWorkDetail)
		v1.GET("/feedbacks", GetFeedbacks)
		v1.GET("/faqs", GetFAQs)
	}
	return router
}

// doJSON performs a request with an optional JSON body and bearer token
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", testutil.AuthHeader(token))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doForm performs a multipart request, optionally attaching a file field
func doForm(t *testing.T, router *gin.Engine, method, path, token string, fields map[string]string, fileField, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("Failed to write form field %q: %v", key, err)
		}
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("Failed to create file part: %v", err)
		}
		if _, err := part.Write(fileContent); err != nil {
			t.Fatalf("Failed to write file content: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", testutil.AuthHeader(token))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a recorded JSON response into out
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}
