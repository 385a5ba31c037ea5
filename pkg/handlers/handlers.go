package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lms-backend/pkg/service"
)

type Handler struct {
	db    *gorm.DB
	books *service.BookService
	users *service.UserService
	txns  *service.TransactionService
	log   *zap.Logger
}

func New(db *gorm.DB, log *zap.Logger) *Handler {
	return &Handler{
		db:    db,
		books: service.NewBookService(db),
		users: service.NewUserService(db),
		txns:  service.NewTransactionService(db, log),
		log:   log,
	}
}

// RegisterRoutes wires the REST surface under /api/v1.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	txns := api.Group("/transactions")
	txns.POST("/borrow", h.borrowBook)
	txns.POST("/return", h.returnBook)
	txns.GET("", h.listTransactions)
	txns.GET("/by-date", h.transactionsByDate)
	txns.GET("/by-range", h.transactionsByRange)

	books := api.Group("/books")
	books.GET("", h.listBooks)
	books.GET("/:id", h.getBook)
	books.POST("", h.createBook)
	books.PUT("/:id", h.updateBook)
	books.DELETE("/:id", h.deleteBook)

	users := api.Group("/users")
	users.GET("", h.listUsers)
	users.GET("/:id", h.getUser)
	users.POST("", h.createUser)

	r.GET("/manage/health", h.healthCheck)
}

// respondError maps business errors onto HTTP statuses. Unknown errors are
// logged and answered with a generic message.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(status, gin.H{"message": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"message": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrNoCopiesAvailable),
		errors.Is(err, service.ErrActiveLoanExists),
		errors.Is(err, service.ErrAlreadyReturned):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrBookNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrBookHasTransactions),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database connection failed",
		})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database ping failed",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
