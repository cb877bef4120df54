package handler

import (
	"crypto/rand"
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"bidding/internal/app/dto"
	"bidding/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const resetCodeTTL = 24 * time.Hour

// generateResetCode возвращает 6-значный числовой OTP
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// ForgotPassword запрос на сброс пароля
// @Summary Запрос сброса пароля
// @Description Генерирует 6-значный OTP со сроком 24 часа и отправляет его на email. Ошибка отправки письма возвращает общий 500 без деталей
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Email пользователя"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/forgot-password [post]
func (h *APIHandler) ForgotPassword(ctx *gin.Context) {
	var request dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, "укажите email")
		return
	}

	user, err := h.Repository.GetUserByEmail(request.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(ctx, http.StatusNotFound, "пользователь с таким email не найден")
			return
		}
		logrus.Error("Error getting user: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	code, err := generateResetCode()
	if err != nil {
		logrus.Error("Error generating reset code: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	if err := h.Repository.SetResetToken(user.ID, code, time.Now().Add(resetCodeTTL)); err != nil {
		logrus.Error("Error saving reset token: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	if h.Mailer == nil {
		logrus.Error("mailer is not configured")
		h.errorResponse(ctx, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}
	if err := h.Mailer.SendResetOTP(user.Email, code); err != nil {
		// общий ответ: ошибка почты не должна раскрывать детали
		logrus.Error("Error sending reset mail: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	h.successResponse(ctx, http.StatusOK, "код сброса пароля отправлен", nil)
}

// ResetPassword завершение сброса пароля
// @Summary Сброс пароля по OTP
// @Description Принимает код и новый пароль. Код одноразовый: расходуется одним условным UPDATE, повторное использование и просроченные коды дают 404
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Код и новый пароль"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/reset-password [post]
func (h *APIHandler) ResetPassword(ctx *gin.Context) {
	var request dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, "заполните все обязательные поля, пароль не короче 8 символов")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.Error("Error hashing password: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	user, err := h.Repository.ConsumeResetToken(request.Code, string(hashedPassword))
	if err != nil {
		if errors.Is(err, repository.ErrInvalidResetCode) {
			h.errorResponse(ctx, http.StatusNotFound, "неверный OTP код")
			return
		}
		logrus.Error("Error consuming reset token: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	// После успешного сброса сразу открываем новую сессию
	accessToken, err := h.issueToken(user)
	if err != nil {
		logrus.Error("Error signing token: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}
	h.setSessionCookie(ctx, accessToken)

	h.successResponse(ctx, http.StatusOK, "пароль успешно сброшен", userToResponse(user))
}
