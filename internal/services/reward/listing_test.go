package reward

import (
	"context"
	"testing"
	"time"

	"github.com/smarterpicks/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRequest(t *testing.T, db *gorm.DB, userID string, productID uint, status models.RewardRequestStatus, createdAt time.Time) *models.RewardRequest {
	request := models.RewardRequest{
		UserID:          userID,
		ProductID:       productID,
		Status:          status,
		OrderScreenshot: "https://cdn.example.com/a.jpg",
		PayoutEmail:     "a@b.c",
		CreatedAt:       createdAt,
	}
	require.NoError(t, db.Create(&request).Error)
	return &request
}

func TestListRewardRequests(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, newFakeStore())
	ctx := context.Background()

	seedUser(t, db, "u1", "Jamie Buyer", false)
	seedUser(t, db, "u2", "Robin Shopper", false)
	p1 := seedProduct(t, db, "Wireless Earbuds")
	p2 := seedProduct(t, db, "Desk Lamp")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := seedRequest(t, db, "u1", p1.ID, models.StatusPendingVerification, base)
	newer := seedRequest(t, db, "u2", p2.ID, models.StatusPaymentPending, base.Add(time.Hour))

	views, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, views, 2)

	// Newest first, decorated with requester name and product summary
	assert.Equal(t, newer.ID, views[0].ID)
	assert.Equal(t, "Robin Shopper", views[0].UserName)
	assert.Equal(t, "Desk Lamp", views[0].Product.Title)
	assert.Equal(t, older.ID, views[1].ID)
	assert.Equal(t, "Jamie Buyer", views[1].UserName)
	assert.Equal(t, p1.ImageURL, views[1].Product.ImageURL)
}

func TestListRewardRequestsFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, newFakeStore())
	ctx := context.Background()

	seedUser(t, db, "u1", "Jamie Buyer", false)
	seedUser(t, db, "u2", "Robin Shopper", false)
	p1 := seedProduct(t, db, "Wireless Earbuds")
	p2 := seedProduct(t, db, "Desk Lamp")

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedRequest(t, db, "u1", p1.ID, models.StatusPendingVerification, now)
	seedRequest(t, db, "u1", p2.ID, models.StatusPaymentPending, now)
	seedRequest(t, db, "u2", p1.ID, models.StatusPaymentPending, now)

	views, err := svc.List(ctx, ListFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, views, 2)

	pending := models.StatusPaymentPending
	views, err = svc.List(ctx, ListFilter{Status: &pending})
	require.NoError(t, err)
	assert.Len(t, views, 2)

	views, err = svc.List(ctx, ListFilter{UserID: "u1", Status: &pending})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "u1", views[0].UserID)
	assert.Equal(t, models.StatusPaymentPending, views[0].Status)
}

func TestListRewardRequestsEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, newFakeStore())

	views, err := svc.List(context.Background(), ListFilter{UserID: "nobody"})
	require.NoError(t, err)

	// No matches is an empty list, not an error
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestGetRewardRequestView(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, newFakeStore())
	ctx := context.Background()

	seedUser(t, db, "u1", "Jamie Buyer", false)
	product := seedProduct(t, db, "Wireless Earbuds")
	request := seedRequest(t, db, "u1", product.ID, models.StatusPendingVerification, time.Now())

	view, err := svc.Get(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, request.ID, view.ID)
	assert.Equal(t, "Jamie Buyer", view.UserName)
	assert.Equal(t, product.ID, view.Product.ID)
	assert.Equal(t, product.AffiliateURL, view.Product.AffiliateURL)

	_, err = svc.Get(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCommentsResolvesAuthors(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, newFakeStore())
	ctx := context.Background()

	seedUser(t, db, "u1", "Jamie Buyer", false)
	admin := seedUser(t, db, "a1", "Alex Admin", true)
	product := seedProduct(t, db, "Wireless Earbuds")

	created, err := svc.Create(ctx, CreateInput{
		UserID: "u1", ProductID: product.ID,
		PayoutEmail: "a@b.c", OrderScreenshot: upload("a.jpg"),
	})
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, created.ID, "u1", "first")
	require.NoError(t, err)
	_, err = svc.RequestTransition(ctx, created.ID, admin.ID, models.StatusApprovedReviewPending)
	require.NoError(t, err)

	comments, err := svc.ListComments(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	// User comments carry the author's display name; SYSTEM comments have no
	// user row and fall back to the author id
	assert.Equal(t, "Jamie Buyer", comments[0].UserName)
	assert.Equal(t, "first", comments[0].Comment)
	assert.Equal(t, models.SystemCommentAuthor, comments[1].UserID)
	assert.Equal(t, models.SystemCommentAuthor, comments[1].UserName)
}

func TestListCommentsEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, newFakeStore())
	ctx := context.Background()

	seedUser(t, db, "u1", "Jamie Buyer", false)
	product := seedProduct(t, db, "Wireless Earbuds")
	request := seedRequest(t, db, "u1", product.ID, models.StatusPendingVerification, time.Now())

	comments, err := svc.ListComments(ctx, request.ID)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}
