package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgTransactionNotFound = "Transaction not found"

type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	statementService   portssvc.StatementSvc
}

// RegisterTransactionRoutes registers the transaction routes. Create and update accept either
// multipart/form-data (with attachments) or a JSON body.
func RegisterTransactionRoutes(
	rg *gin.RouterGroup,
	transactionService portssvc.TransactionSvcFacade,
	statementService portssvc.StatementSvc,
	uploadOpts middleware.UploadOptions,
) {
	h := &transactionHandler{
		transactionService: transactionService,
		statementService:   statementService,
	}
	upload := middleware.UploadMiddleware(uploadOpts)

	txns := rg.Group("/transactions")
	{
		txns.POST("", upload, h.createTransaction)
		txns.GET("", h.listTransactions)
		txns.GET("/statement", h.downloadStatement)
		txns.GET("/:id", h.getTransaction)
		txns.PUT("/:id", upload, h.updateTransaction)
		txns.DELETE("/:id", h.deleteTransaction)
		txns.POST("/:id/archive", h.archiveTransaction)
		txns.POST("/:id/restore", h.restoreTransaction)
	}
}

// createTransaction godoc
// @Summary Create a transaction
// @Description Creates a transaction for the caller. Attachments are sent as multipart files under "attachments"; customFields is a JSON string in multipart requests.
// @Tags transactions
// @Accept json,mpfd
// @Produce json
// @Param transaction body dto.TransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	req, err := bindTransactionRequest(c)
	if err != nil {
		respondWithError(c, err, "Invalid request body")
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req, middleware.GetUploadedFiles(c))
	if err != nil {
		respondWithError(c, err, "Failed to create transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the caller's active transactions, newest first. month+year takes precedence over startDate/endDate.
// @Tags transactions
// @Produce json
// @Param transactionType query string false "Credit, Debit or All"
// @Param transactionMode query string false "UPI, Cash, Card, Bank, Wallet or All"
// @Param category query string false "Exact category"
// @Param counterparty query string false "Case-insensitive substring"
// @Param startDate query string false "RFC3339 or YYYY-MM-DD"
// @Param endDate query string false "RFC3339 or YYYY-MM-DD (inclusive)"
// @Param month query int false "1-12"
// @Param year query int false "Four digit year"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid query parameters"})
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondWithError(c, err, "Failed to fetch transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// downloadStatement godoc
// @Summary Download a PDF statement
// @Description Renders the caller's transactions matching the list filters as a PDF. Pagination is ignored.
// @Tags transactions
// @Produce application/pdf
// @Param transactionType query string false "Credit, Debit or All"
// @Param transactionMode query string false "UPI, Cash, Card, Bank, Wallet or All"
// @Param category query string false "Exact category"
// @Param counterparty query string false "Case-insensitive substring"
// @Param startDate query string false "RFC3339 or YYYY-MM-DD"
// @Param endDate query string false "RFC3339 or YYYY-MM-DD (inclusive)"
// @Param month query int false "1-12"
// @Param year query int false "Four digit year"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/statement [get]
func (h *transactionHandler) downloadStatement(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid query parameters"})
		return
	}

	pdf, err := h.statementService.BuildStatement(c.Request.Context(), userID, params)
	if err != nil {
		respondWithError(c, err, "Failed to build statement")
		return
	}

	filename := fmt.Sprintf("statement-%s.pdf", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Returns one of the caller's active transactions.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	transactionID, ok := transactionIDParam(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), userID, transactionID)
	if err != nil {
		respondWithError(c, err, "Failed to fetch transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Applies the sent fields. attachmentIds lists the existing attachments to keep (a JSON string in multipart requests); new files are appended after them.
// @Tags transactions
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body dto.TransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	transactionID, ok := transactionIDParam(c)
	if !ok {
		return
	}

	req, err := bindTransactionRequest(c)
	if err != nil {
		respondWithError(c, err, "Invalid request body")
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, transactionID, req, middleware.GetUploadedFiles(c))
	if err != nil {
		respondWithError(c, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Permanently deletes a transaction and, best effort, its stored attachments.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	transactionID, ok := transactionIDParam(c)
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, transactionID); err != nil {
		respondWithError(c, err, "Failed to delete transaction")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Transaction deleted successfully"})
}

// archiveTransaction godoc
// @Summary Archive a transaction
// @Description Hides a transaction from get and list without deleting it.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id}/archive [post]
func (h *transactionHandler) archiveTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	transactionID, ok := transactionIDParam(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.ArchiveTransaction(c.Request.Context(), userID, transactionID)
	if err != nil {
		respondWithError(c, err, "Failed to archive transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// restoreTransaction godoc
// @Summary Restore a transaction
// @Description Makes an archived transaction visible again.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id}/restore [post]
func (h *transactionHandler) restoreTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	transactionID, ok := transactionIDParam(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.RestoreTransaction(c.Request.Context(), userID, transactionID)
	if err != nil {
		respondWithError(c, err, "Failed to restore transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// transactionIDParam answers 404 for IDs that cannot exist instead of sending them to the store.
func transactionIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: msgTransactionNotFound})
		return "", false
	}
	return id, true
}

// bindTransactionRequest reads a create/update payload from multipart form values or a JSON body.
func bindTransactionRequest(c *gin.Context) (dto.TransactionRequest, error) {
	var req dto.TransactionRequest
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBindJSON(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return dto.TransactionRequest{}, nil
			}
			logger.Warn("Failed to bind transaction body", slog.String("error", err.Error()))
			return req, apperrors.NewValidationError("Invalid request body")
		}
		return req, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return req, apperrors.NewValidationError("Invalid multipart form")
	}
	value := func(key string) *string {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			v := vals[0]
			return &v
		}
		return nil
	}

	req.Title = value("title")
	req.Category = value("category")
	req.TransactionType = value("transactionType")
	req.TransactionMode = value("transactionMode")
	req.TransactionDate = value("transactionDate")
	req.Counterparty = value("counterparty")
	req.Remarks = value("remarks")
	if v := value("amount"); v != nil {
		n := json.Number(strings.TrimSpace(*v))
		req.Amount = &n
	}

	if v := value("customFields"); v != nil && strings.TrimSpace(*v) != "" {
		if err := json.Unmarshal([]byte(*v), &req.CustomFields); err != nil {
			return req, apperrors.NewValidationError("customFields must be a JSON object")
		}
	}

	if v := value("attachmentIds"); v != nil {
		var ids []string
		if err := json.Unmarshal([]byte(*v), &ids); err != nil {
			logger.Warn("Ignoring unparsable attachmentIds", slog.String("error", err.Error()))
		} else {
			req.AttachmentIDs = &ids
		}
	}
	return req, nil
}
