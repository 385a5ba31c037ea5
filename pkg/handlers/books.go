package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lms-backend/pkg/service"
)

type createBookRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Available int    `json:"available"`
}

type updateBookRequest struct {
	Title     *string `json:"title"`
	Author    *string `json:"author"`
	Available *int    `json:"available"`
}

func bookIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid book id"})
		return 0, false
	}
	return uint(id), true
}

// GET /api/v1/books
func (h *Handler) listBooks(c *gin.Context) {
	books, err := h.books.List()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// GET /api/v1/books/:id
func (h *Handler) getBook(c *gin.Context) {
	id, ok := bookIDParam(c)
	if !ok {
		return
	}
	book, err := h.books.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// POST /api/v1/books
func (h *Handler) createBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON body"})
		return
	}
	book, err := h.books.Create(req.Title, req.Author, req.Available)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// PUT /api/v1/books/:id
func (h *Handler) updateBook(c *gin.Context) {
	id, ok := bookIDParam(c)
	if !ok {
		return
	}
	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON body"})
		return
	}
	book, err := h.books.Update(id, service.UpdateBookInput{
		Title:     req.Title,
		Author:    req.Author,
		Available: req.Available,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// DELETE /api/v1/books/:id
func (h *Handler) deleteBook(c *gin.Context) {
	id, ok := bookIDParam(c)
	if !ok {
		return
	}
	if err := h.books.Delete(id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "book deleted"})
}
