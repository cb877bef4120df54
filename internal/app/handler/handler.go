package handler

import (
	"errors"
	"fmt"
	"net/http"

	"bidding/internal/app/config"
	"bidding/internal/app/ds"
	"bidding/internal/app/dto"
	"bidding/internal/app/redis"
	"bidding/internal/app/repository"
	"bidding/internal/app/role"
	"bidding/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Mailer — исходящая почта (OTP для сброса пароля)
type Mailer interface {
	SendResetOTP(to, code string) error
}

// APIHandler содержит обработчики для REST API
type APIHandler struct {
	Repository  *repository.Repository
	MinIOClient *storage.MinIOClient
	RedisClient *redis.Client
	Mailer      Mailer
	Config      *config.Config
}

func NewAPIHandler(r *repository.Repository, minioClient *storage.MinIOClient, redisClient *redis.Client, mailer Mailer, cfg *config.Config) *APIHandler {
	return &APIHandler{
		Repository:  r,
		MinIOClient: minioClient,
		RedisClient: redisClient,
		Mailer:      mailer,
		Config:      cfg,
	}
}

// Получение текущего пользователя из контекста
func (h *APIHandler) getUserFromContext(c *gin.Context) (uint, role.Role, error) {
	userID, exists := c.Get("userID")
	if !exists {
		logrus.Warn("userID not found in context")
		return 0, role.Buyer, fmt.Errorf("user not authenticated")
	}

	userRole, _ := c.Get("userRole")
	r, _ := userRole.(role.Role)

	id, ok := userID.(uint)
	if !ok {
		logrus.Errorf("getUserFromContext: invalid userID type: %T", userID)
		return 0, r, fmt.Errorf("invalid user ID")
	}

	return id, r, nil
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// businessError транслирует ошибки репозитория в HTTP-статусы.
// Неизвестные ошибки логируются и превращаются в 500, процесс не падает
func (h *APIHandler) businessError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		h.errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrEmailTaken):
		h.errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrNotVerified),
		errors.Is(err, repository.ErrAlreadySold),
		errors.Is(err, repository.ErrInsufficientFunds),
		errors.Is(err, repository.ErrNoBids),
		errors.Is(err, repository.ErrLowBid),
		errors.Is(err, repository.ErrOwnProduct),
		errors.Is(err, repository.ErrProductSealed):
		h.errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrInvalidResetCode):
		h.errorResponse(c, http.StatusNotFound, err.Error())
	default:
		logrus.Error(fallback, ": ", err)
		h.errorResponse(c, http.StatusInternalServerError, fallback)
	}
}

func userToResponse(u *ds.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Balance: u.Balance,
	}
	if u.ImageURL != nil {
		resp.ImageURL = *u.ImageURL
	}
	return resp
}

func productToResponse(p *ds.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Price:           p.Price,
		Commission:      p.Commission,
		SellerID:        p.SellerID,
		CategoryID:      p.CategoryID,
		IsVerify:        p.IsVerify,
		IsSoldout:       p.IsSoldout,
		WinningBidderID: p.WinningBidderID,
		CreatedAt:       p.CreatedAt,
		SoldAt:          p.SoldAt,
	}
	if p.ImageURL != nil {
		resp.ImageURL = *p.ImageURL
	}
	return resp
}

func bidToResponse(b *ds.Bid) dto.BidResponse {
	return dto.BidResponse{
		ID:        b.ID,
		ProductID: b.ProductID,
		BidderID:  b.BidderID,
		Amount:    b.Amount,
		CreatedAt: b.CreatedAt,
	}
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
