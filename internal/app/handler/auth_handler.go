package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"bidding/internal/app/config"
	"bidding/internal/app/ds"
	"bidding/internal/app/dto"
	"bidding/internal/app/middleware"
	"bidding/internal/app/repository"
	"bidding/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// issueToken подписывает JWT для пользователя
func (h *APIHandler) issueToken(user *ds.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(h.Config.JWT.SigningMethod, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(h.Config.JWT.ExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    "bidding-app",
		},
		UserID: user.ID,
		Role:   role.Parse(user.Role),
	})

	return token.SignedString([]byte(h.Config.JWT.Token))
}

// setSessionCookie ставит httpOnly-куку со строгим SameSite
// на весь срок жизни токена (10 дней)
func (h *APIHandler) setSessionCookie(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(config.SessionCookieName, token, int(h.Config.JWT.ExpiresIn.Seconds()), "/", "", true, true)
}

func (h *APIHandler) clearSessionCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(config.SessionCookieName, "", -1, "/", "", true, true)
}

// RegisterUser регистрация нового пользователя
// @Summary Регистрация пользователя
// @Description Создание нового пользователя (по умолчанию покупатель), сразу выдаёт сессионную куку
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные для регистрации"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/register [post]
func (h *APIHandler) RegisterUser(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, "заполните все обязательные поля, пароль не короче 8 символов")
		return
	}

	// Хешируем пароль
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.Error("Error hashing password: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка регистрации пользователя")
		return
	}

	user, err := h.Repository.CreateUser(request.Name, request.Email, string(hashedPassword))
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			h.errorResponse(ctx, http.StatusConflict, err.Error())
			return
		}
		logrus.Error("Error creating user: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка регистрации пользователя")
		return
	}

	// Генерируем JWT токен сразу при регистрации
	accessToken, err := h.issueToken(user)
	if err != nil {
		logrus.Error("Error signing token: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка регистрации пользователя")
		return
	}
	h.setSessionCookie(ctx, accessToken)

	h.successResponse(ctx, http.StatusCreated, "пользователь успешно зарегистрирован", userToResponse(user))
}

// LoginUser аутентификация пользователя
// @Summary Вход в систему
// @Description Аутентификация по email и паролю, выдаёт сессионную куку
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Данные для входа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *APIHandler) LoginUser(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, "заполните все обязательные поля")
		return
	}

	user, err := h.Repository.GetUserByEmail(request.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.errorResponse(ctx, http.StatusNotFound, "пользователь не найден")
			return
		}
		logrus.Error("Error getting user: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка входа")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		h.errorResponse(ctx, http.StatusUnauthorized, "неверный пароль")
		return
	}

	accessToken, err := h.issueToken(user)
	if err != nil {
		logrus.Error("Error signing token: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка входа")
		return
	}
	h.setSessionCookie(ctx, accessToken)

	h.successResponse(ctx, http.StatusOK, "пользователь успешно авторизован", userToResponse(user))
}

// LoginStatus проверка активной сессии
// @Summary Статус сессии
// @Description Возвращает true, если сессионная кука содержит валидный токен. Ошибки проверки не пробрасываются — всегда 200
// @Tags Authentication
// @Produce json
// @Success 200 {object} dto.LoginStatusResponse
// @Router /api/auth/status [get]
func (h *APIHandler) LoginStatus(ctx *gin.Context) {
	jwtStr := middleware.ExtractToken(ctx)
	if jwtStr == "" {
		ctx.JSON(http.StatusOK, dto.LoginStatusResponse{LoggedIn: false})
		return
	}

	if h.RedisClient != nil {
		if err := h.RedisClient.CheckJWTInBlacklist(ctx.Request.Context(), jwtStr); err == nil {
			ctx.JSON(http.StatusOK, dto.LoginStatusResponse{LoggedIn: false})
			return
		}
	}

	token, err := jwt.ParseWithClaims(jwtStr, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.Config.JWT.Token), nil
	})
	if err != nil || !token.Valid {
		// ошибки верификации глотаем и отвечаем false
		ctx.JSON(http.StatusOK, dto.LoginStatusResponse{LoggedIn: false})
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginStatusResponse{LoggedIn: true})
}

// LogoutUser выход пользователя из системы
// @Summary Выход из системы
// @Description Гасит куку и добавляет токен в blacklist на остаток его срока
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *APIHandler) LogoutUser(ctx *gin.Context) {
	jwtStr := middleware.ExtractToken(ctx)
	if jwtStr == "" {
		h.errorResponse(ctx, http.StatusUnauthorized, "нет активной сессии")
		return
	}

	token, err := jwt.ParseWithClaims(jwtStr, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.Config.JWT.Token), nil
	})
	if err != nil {
		h.clearSessionCookie(ctx)
		h.errorResponse(ctx, http.StatusUnauthorized, "невалидный токен")
		return
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok {
		h.clearSessionCookie(ctx)
		h.errorResponse(ctx, http.StatusUnauthorized, "невалидный токен")
		return
	}

	// Вычисление TTL до истечения токена
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl > 0 && h.RedisClient != nil {
		if err := h.RedisClient.WriteJWTToBlacklist(ctx.Request.Context(), jwtStr, ttl); err != nil {
			logrus.Error("Error writing jwt to blacklist: ", err)
			h.errorResponse(ctx, http.StatusInternalServerError, "ошибка выхода")
			return
		}
	}

	h.clearSessionCookie(ctx)
	h.successResponse(ctx, http.StatusOK, "пользователь успешно вышел из системы", nil)
}

// BecomeSeller повышение роли до продавца
// @Summary Стать продавцом
// @Description Явное повышение роли текущего пользователя до продавца по активной сессии, без повторного ввода пароля
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/become-seller [post]
func (h *APIHandler) BecomeSeller(ctx *gin.Context) {
	userID, _, err := h.getUserFromContext(ctx)
	if err != nil {
		h.errorResponse(ctx, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	if err := h.Repository.BecomeSeller(userID); err != nil {
		h.businessError(ctx, err, "ошибка смены роли")
		return
	}

	user, err := h.Repository.GetUserByID(userID)
	if err != nil {
		h.businessError(ctx, err, "ошибка смены роли")
		return
	}

	// Перевыпускаем токен с новой ролью
	accessToken, err := h.issueToken(user)
	if err != nil {
		logrus.Error("Error signing token: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка смены роли")
		return
	}
	h.setSessionCookie(ctx, accessToken)

	h.successResponse(ctx, http.StatusOK, "пользователь теперь продавец", userToResponse(user))
}

// UpdateProfile обновление профиля
// @Summary Обновление профиля
// @Description Меняет имя и (опционально) аватар. Загрузка картинки обязана пройти — при ошибке хранилища запрос падает; старая картинка удаляется best-effort
// @Tags Authentication
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string false "Новое имя"
// @Param image formData file false "Картинка профиля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/profile [put]
func (h *APIHandler) UpdateProfile(ctx *gin.Context) {
	userID, _, err := h.getUserFromContext(ctx)
	if err != nil {
		h.errorResponse(ctx, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	user, err := h.Repository.GetUserByID(userID)
	if err != nil {
		h.businessError(ctx, err, "ошибка обновления профиля")
		return
	}

	name := ctx.PostForm("name")

	var imageURL, imageKey *string
	file, err := ctx.FormFile("image")
	if err == nil && file != nil {
		if h.MinIOClient == nil {
			h.errorResponse(ctx, http.StatusInternalServerError, "хранилище изображений недоступно")
			return
		}

		src, err := file.Open()
		if err != nil {
			h.errorResponse(ctx, http.StatusBadRequest, "не удалось прочитать файл")
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			h.errorResponse(ctx, http.StatusBadRequest, "не удалось прочитать файл")
			return
		}

		// Загрузка обязана пройти
		key, err := h.MinIOClient.UploadFile(data, file.Filename, "profile")
		if err != nil {
			logrus.Error("Image upload error: ", err)
			h.errorResponse(ctx, http.StatusInternalServerError, "не удалось загрузить изображение")
			return
		}

		url, err := h.MinIOClient.GetFileURL(key)
		if err != nil {
			logrus.Error("Presign error: ", err)
			url = key
		}

		// Старую картинку удаляем fire-and-forget
		if user.ImageKey != nil && *user.ImageKey != "" {
			if err := h.MinIOClient.DeleteFile(*user.ImageKey); err != nil {
				logrus.Error("Image delete error: ", err)
			}
		}

		imageURL = &url
		imageKey = &key
	}

	updated, err := h.Repository.UpdateProfile(userID, name, imageURL, imageKey)
	if err != nil {
		h.businessError(ctx, err, "ошибка обновления профиля")
		return
	}

	h.successResponse(ctx, http.StatusOK, "профиль успешно обновлён", userToResponse(updated))
}
