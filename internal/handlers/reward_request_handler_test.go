package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smarterpicks/backend/internal/middleware"
	"github.com/smarterpicks/backend/internal/models"
	"github.com/smarterpicks/backend/internal/services/reward"
	"github.com/smarterpicks/backend/internal/storage"
	"github.com/smarterpicks/backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type memStore struct{}

var _ storage.Store = (*memStore)(nil)

func (memStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	return "https://cdn.example.com/" + key, nil
}

func (memStore) Delete(ctx context.Context, key string) error { return nil }

type rewardTestEnv struct {
	router     *gin.Engine
	db         *gorm.DB
	svc        *reward.Service
	userToken  string
	adminToken string
	product    *models.Product
}

func setupRewardEnv(t *testing.T) *rewardTestEnv {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.RewardRequest{}, &models.RewardComment{}))

	require.NoError(t, db.Create(&models.User{ID: "u1", Name: "Jamie Buyer", Email: "jamie@example.com"}).Error)
	require.NoError(t, db.Create(&models.User{ID: "u2", Name: "Robin Shopper", Email: "robin@example.com"}).Error)
	require.NoError(t, db.Create(&models.User{ID: "a1", Name: "Alex Admin", Email: "alex@example.com", IsAdmin: true}).Error)

	product := models.Product{
		Title:        "Wireless Earbuds",
		Slug:         "wireless-earbuds",
		Price:        29.99,
		ImageURL:     "https://images.example.com/p.jpg",
		AffiliateURL: "https://amazon.example.com/dp/B0TEST",
	}
	require.NoError(t, db.Create(&product).Error)

	svc := reward.NewService(db, memStore{})
	handler := NewRewardRequestHandler(svc)

	router := gin.New()
	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/reward-requests", handler.List)
		authed.POST("/reward-requests", handler.Create)
		authed.GET("/reward-requests/:id", handler.Get)
		authed.PUT("/reward-requests/:id", handler.Update)
		authed.PUT("/reward-requests/:id/status", handler.UpdateStatus)
		authed.DELETE("/reward-requests/:id", handler.Delete)
		authed.GET("/reward-requests/:id/comments", handler.ListComments)
		authed.POST("/reward-requests/:id/comments", handler.AddComment)
	}

	userToken, err := utils.GenerateToken("u1", "jamie@example.com", false, time.Hour)
	require.NoError(t, err)
	adminToken, err := utils.GenerateToken("a1", "alex@example.com", true, time.Hour)
	require.NoError(t, err)

	return &rewardTestEnv{
		router:     router,
		db:         db,
		svc:        svc,
		userToken:  userToken,
		adminToken: adminToken,
		product:    &product,
	}
}

func (env *rewardTestEnv) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *rewardTestEnv) doJSON(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return env.do(t, method, path, token, bytes.NewReader(body), "application/json")
}

func createForm(t *testing.T, productID uint, payoutEmail string) (io.Reader, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("productId", fmt.Sprint(productID)))
	require.NoError(t, writer.WriteField("paypalEmail", payoutEmail))
	part, err := writer.CreateFormFile("orderScreenshot", "a.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func (env *rewardTestEnv) createRequest(t *testing.T) uint {
	body, contentType := createForm(t, env.product.ID, "jamie@paypal.example.com")
	w := env.do(t, http.MethodPost, "/api/reward-requests", env.userToken, body, contentType)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func TestRewardRequestsRequireAuth(t *testing.T) {
	env := setupRewardEnv(t)

	w := env.do(t, http.MethodGet, "/api/reward-requests", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRewardRequestEndpoint(t *testing.T) {
	env := setupRewardEnv(t)

	body, contentType := createForm(t, env.product.ID, "jamie@paypal.example.com")
	w := env.do(t, http.MethodPost, "/api/reward-requests", env.userToken, body, contentType)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Contains(t, w.Body.String(), `"status":"Pending Verification"`)
	assert.Contains(t, w.Body.String(), "orderScreenshotUrl")

	// A second request for the same product is a conflict
	body, contentType = createForm(t, env.product.ID, "jamie@paypal.example.com")
	w = env.do(t, http.MethodPost, "/api/reward-requests", env.userToken, body, contentType)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateRewardRequestEndpointMissingScreenshot(t *testing.T) {
	env := setupRewardEnv(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("productId", fmt.Sprint(env.product.ID)))
	require.NoError(t, writer.WriteField("paypalEmail", "jamie@paypal.example.com"))
	require.NoError(t, writer.Close())

	w := env.do(t, http.MethodPost, "/api/reward-requests", env.userToken, &buf, writer.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "orderScreenshot")
}

func TestListRewardRequestsScopedToCaller(t *testing.T) {
	env := setupRewardEnv(t)
	id := env.createRequest(t)

	// Another user sees an empty list, not the caller's requests
	otherToken, err := utils.GenerateToken("u2", "robin@example.com", false, time.Hour)
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/reward-requests", otherToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	// The owner and admins see the request, decorated with product data
	for _, token := range []string{env.userToken, env.adminToken} {
		w = env.do(t, http.MethodGet, "/api/reward-requests", token, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), fmt.Sprintf(`"id":%d`, id))
		assert.Contains(t, w.Body.String(), `"userName":"Jamie Buyer"`)
		assert.Contains(t, w.Body.String(), `"title":"Wireless Earbuds"`)
	}
}

func TestListRewardRequestsUnknownStatusFilter(t *testing.T) {
	env := setupRewardEnv(t)

	w := env.do(t, http.MethodGet, "/api/reward-requests?status=Shipped", env.userToken, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRewardRequestAccessControl(t *testing.T) {
	env := setupRewardEnv(t)
	id := env.createRequest(t)
	path := fmt.Sprintf("/api/reward-requests/%d", id)

	otherToken, err := utils.GenerateToken("u2", "robin@example.com", false, time.Hour)
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, path, otherToken, nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, path, env.userToken, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/reward-requests/9999", env.adminToken, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/reward-requests/banana", env.adminToken, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	env := setupRewardEnv(t)
	id := env.createRequest(t)
	path := fmt.Sprintf("/api/reward-requests/%d/status", id)

	w := env.doJSON(t, http.MethodPut, path, env.adminToken, gin.H{"status": "Approved - Review Pending"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"Approved - Review Pending"`)

	// Skipping ahead in the workflow is refused
	w = env.doJSON(t, http.MethodPut, path, env.adminToken, gin.H{"status": "Payment Completed"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Re-sending the current status is a no-op, also refused
	w = env.doJSON(t, http.MethodPut, path, env.adminToken, gin.H{"status": "Approved - Review Pending"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Unknown spellings never reach the workflow
	w = env.doJSON(t, http.MethodPut, path, env.adminToken, gin.H{"status": "approved"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.doJSON(t, http.MethodPut, path, env.adminToken, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommentEndpoints(t *testing.T) {
	env := setupRewardEnv(t)
	id := env.createRequest(t)
	path := fmt.Sprintf("/api/reward-requests/%d/comments", id)

	w := env.do(t, http.MethodGet, path, env.userToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	w = env.doJSON(t, http.MethodPost, path, env.userToken, gin.H{"comment": "when will this be reviewed?"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.doJSON(t, http.MethodPost, path, env.userToken, gin.H{"comment": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, path, env.adminToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userName":"Jamie Buyer"`)
	assert.Contains(t, w.Body.String(), "when will this be reviewed?")

	w = env.do(t, http.MethodGet, "/api/reward-requests/9999/comments", env.userToken, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRewardRequestEndpoint(t *testing.T) {
	env := setupRewardEnv(t)
	id := env.createRequest(t)
	path := fmt.Sprintf("/api/reward-requests/%d", id)

	otherToken, err := utils.GenerateToken("u2", "robin@example.com", false, time.Hour)
	require.NoError(t, err)

	w := env.do(t, http.MethodDelete, path, otherToken, nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodDelete, path, env.userToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, path, env.userToken, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateRewardRequestEndpoint(t *testing.T) {
	env := setupRewardEnv(t)
	id := env.createRequest(t)
	path := fmt.Sprintf("/api/reward-requests/%d", id)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("reviewLink", "https://www.amazon.com/review/R123"))
	require.NoError(t, writer.Close())

	w := env.do(t, http.MethodPut, path, env.userToken, &buf, writer.FormDataContentType())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var request models.RewardRequest
	require.NoError(t, env.db.First(&request, "id = ?", id).Error)
	require.NotNil(t, request.ReviewLink)
	assert.Equal(t, "https://www.amazon.com/review/R123", *request.ReviewLink)
	assert.Equal(t, models.StatusPendingVerification, request.Status)
}
