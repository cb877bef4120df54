package handler

import (
	"net/http"

	"bidding/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ПОЛЬЗОВАТЕЛИ ============

// GetUser данные текущего пользователя
// @Summary Текущий пользователь
// @Description Возвращает профиль без пароля
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/user [get]
func (h *APIHandler) GetUser(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	user, err := h.Repository.GetUserByID(userID)
	if err != nil {
		h.businessError(c, err, "ошибка получения пользователя")
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

// GetUserBalance баланс текущего пользователя
// @Summary Мой баланс
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/user/balance [get]
func (h *APIHandler) GetUserBalance(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	user, err := h.Repository.GetUserByID(userID)
	if err != nil {
		h.businessError(c, err, "ошибка получения баланса")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: user.Balance})
}

// GetUserLedger выписка по счёту текущего пользователя
// @Summary Моя выписка
// @Description Журнал денежных операций пользователя, новые первыми
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/user/ledger [get]
func (h *APIHandler) GetUserLedger(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	entries, err := h.Repository.LedgerForAccount(userID)
	if err != nil {
		logrus.Error("Error getting ledger: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения выписки")
		return
	}

	dtoEntries := make([]dto.LedgerEntryResponse, len(entries))
	for i, e := range entries {
		dtoEntries[i] = dto.LedgerEntryResponse{
			ID:        e.ID,
			ProductID: e.ProductID,
			Amount:    e.Amount,
			Kind:      e.Kind,
			CreatedAt: e.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, dtoEntries)
}

// GetAllUsers список пользователей (админ)
// @Summary Все пользователи (админ)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/users [get]
func (h *APIHandler) GetAllUsers(c *gin.Context) {
	users, err := h.Repository.GetAllUsers()
	if err != nil {
		logrus.Error("Error getting users: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения пользователей")
		return
	}

	dtoUsers := make([]dto.UserResponse, len(users))
	for i := range users {
		dtoUsers[i] = userToResponse(&users[i])
	}

	c.JSON(http.StatusOK, dtoUsers)
}

// EstimateIncome накопленная комиссия площадки (админ)
// @Summary Доход площадки (админ)
// @Description Возвращает комиссионный баланс админа — сумму всех удержанных комиссий
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.IncomeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/income [get]
func (h *APIHandler) EstimateIncome(c *gin.Context) {
	income, err := h.Repository.EstimateIncome()
	if err != nil {
		h.businessError(c, err, "ошибка получения дохода")
		return
	}

	c.JSON(http.StatusOK, dto.IncomeResponse{CommissionBalance: income})
}
