package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smarterpicks/backend/internal/models"
	"github.com/smarterpicks/backend/internal/services/reward"
)

// RewardRequestHandler handles reward request related requests
type RewardRequestHandler struct {
	svc *reward.Service
}

// NewRewardRequestHandler creates a new reward request handler
func NewRewardRequestHandler(svc *reward.Service) *RewardRequestHandler {
	return &RewardRequestHandler{svc: svc}
}

// StatusUpdateRequest is the payload for a status transition
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// CommentRequest is the payload for adding a comment
type CommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// List returns reward requests decorated with requester and product data.
// Non-admin callers only ever see their own requests.
func (h *RewardRequestHandler) List(c *gin.Context) {
	filter := reward.ListFilter{UserID: c.Query("userId")}

	if !c.GetBool("is_admin") {
		filter.UserID = c.GetString("user_id")
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := models.ParseRewardRequestStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
			return
		}
		filter.Status = &status
	}

	views, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reward requests"})
		return
	}

	// An empty result is a valid empty list, not a 404
	c.JSON(http.StatusOK, views)
}

// Get returns a single decorated reward request
func (h *RewardRequestHandler) Get(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	view, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondRewardError(c, err)
		return
	}

	if !c.GetBool("is_admin") && view.UserID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// Create submits a new reward request with its order screenshot
func (h *RewardRequestHandler) Create(c *gin.Context) {
	productID, _ := strconv.ParseUint(c.PostForm("productId"), 10, 64)

	input := reward.CreateInput{
		UserID:          c.GetString("user_id"),
		ProductID:       uint(productID),
		PayoutEmail:     c.PostForm("paypalEmail"),
		OrderScreenshot: formUpload(c, "orderScreenshot"),
	}

	request, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondRewardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":            true,
		"id":                 request.ID,
		"status":             request.Status,
		"orderScreenshotUrl": request.OrderScreenshot,
	})
}

// Update applies a partial patch: review link, legacy comments text and new
// screenshots. Absent fields keep their prior values.
func (h *RewardRequestHandler) Update(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	var patch reward.UpdatePatch
	if v, present := c.GetPostForm("reviewLink"); present {
		patch.ReviewLink = &v
	}
	if v, present := c.GetPostForm("comments"); present {
		patch.Comments = &v
	}
	patch.ReviewScreenshot = formUpload(c, "reviewScreenshot")
	patch.ProofOfPayment = formUpload(c, "proofOfPayment")

	request, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondRewardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"reviewScreenshotUrl": request.ReviewScreenshot,
		"proofOfPaymentUrl":   request.ProofOfPayment,
	})
}

// UpdateStatus runs a workflow transition attributed to the calling user
func (h *RewardRequestHandler) UpdateStatus(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing status"})
		return
	}

	status, valid := models.ParseRewardRequestStatus(req.Status)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	request, err := h.svc.RequestTransition(c.Request.Context(), id, c.GetString("user_id"), status)
	if err != nil {
		respondRewardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "status": request.Status})
}

// Delete removes a reward request along with its comments and attachments
func (h *RewardRequestHandler) Delete(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	view, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondRewardError(c, err)
		return
	}
	if !c.GetBool("is_admin") && view.UserID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondRewardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reward request and associated data deleted successfully",
	})
}

// ListComments returns the request's comment ledger, oldest first
func (h *RewardRequestHandler) ListComments(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	comments, err := h.svc.ListComments(c.Request.Context(), id)
	if err != nil {
		respondRewardError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// AddComment appends a comment authored by the calling user
func (h *RewardRequestHandler) AddComment(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	comment, err := h.svc.AddComment(c.Request.Context(), id, c.GetString("user_id"), req.Comment)
	if err != nil {
		respondRewardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": comment.ID})
}

// requestID parses the :id path param, responding 400 on garbage
func requestID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reward request ID"})
		return 0, false
	}
	return uint(id), true
}

// formUpload reads an optional multipart file field
func formUpload(c *gin.Context, field string) *reward.Upload {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return uploadFromHeader(fileHeader)
}

func uploadFromHeader(fh *multipart.FileHeader) *reward.Upload {
	file, err := fh.Open()
	if err != nil {
		return nil
	}
	return &reward.Upload{
		Reader:      file,
		Size:        fh.Size,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}
}

// respondRewardError maps workflow errors to HTTP status codes
func respondRewardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reward.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reward request not found"})
	case errors.Is(err, reward.ErrInvalidActor):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, reward.ErrMissingField), errors.Is(err, reward.ErrEmptyBody):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, reward.ErrDuplicateRequest):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, reward.ErrNoOpTransition), errors.Is(err, reward.ErrIllegalTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
