package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type borrowRequest struct {
	BookID     uint   `json:"bookId"`
	BorrowerID string `json:"borrowerId"`
}

type returnRequest struct {
	TransactionID uint `json:"transactionId"`
}

// POST /api/v1/transactions/borrow
func (h *Handler) borrowBook(c *gin.Context) {
	var req borrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON body"})
		return
	}
	txn, err := h.txns.Borrow(req.BookID, req.BorrowerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// POST /api/v1/transactions/return
func (h *Handler) returnBook(c *gin.Context) {
	var req returnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON body"})
		return
	}
	txn, err := h.txns.Return(req.TransactionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// GET /api/v1/transactions
func (h *Handler) listTransactions(c *gin.Context) {
	txns, err := h.txns.List()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

// GET /api/v1/transactions/by-date?date=YYYY-MM-DD
func (h *Handler) transactionsByDate(c *gin.Context) {
	txns, err := h.txns.ListByDate(c.Query("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

// GET /api/v1/transactions/by-range?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
func (h *Handler) transactionsByRange(c *gin.Context) {
	txns, err := h.txns.ListByRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}
