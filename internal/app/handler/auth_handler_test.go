package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"bidding/internal/app/ds"
	"bidding/internal/app/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Name:     "Иван",
		Email:    "ivan@test.ru",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// кука сессии ставится сразу при регистрации
	cookie := sessionCookie(t, w)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)

	// пароль в базе захеширован
	var user ds.User
	require.NoError(t, env.db.Where("email = ?", "ivan@test.ru").First(&user).Error)
	assert.NotEqual(t, "password123", user.Password)
	assert.Equal(t, "buyer", user.Role)
}

func TestRegisterUserShortPassword(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Name:     "Иван",
		Email:    "ivan@test.ru",
		Password: "1234567",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// пользователь не создан
	var count int64
	require.NoError(t, env.db.Model(&ds.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	req := dto.RegisterRequest{Name: "Иван", Email: "ivan@test.ru", Password: "password123"}
	require.Equal(t, http.StatusCreated, env.doJSON(t, http.MethodPost, "/api/auth/register", req).Code)

	w := env.doJSON(t, http.MethodPost, "/api/auth/register", req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginUser(t *testing.T) {
	env := newTestEnv(t)

	env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Name: "Иван", Email: "ivan@test.ru", Password: "password123",
	})

	// несуществующий пользователь
	w := env.doJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email: "nobody@test.ru", Password: "password123",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// неверный пароль
	w = env.doJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email: "ivan@test.ru", Password: "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// успешный вход
	w = env.doJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email: "ivan@test.ru", Password: "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, sessionCookie(t, w).Value)
}

func TestLoginStatus(t *testing.T) {
	env := newTestEnv(t)

	// без куки — не залогинен, но всегда 200
	w := env.doJSON(t, http.MethodGet, "/api/auth/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var status dto.LoginStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.False(t, status.LoggedIn)

	// мусорный токен тоже даёт 200 + false
	w = env.doJSON(t, http.MethodGet, "/api/auth/status", nil,
		&http.Cookie{Name: "token", Value: "garbage"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.False(t, status.LoggedIn)

	// валидная сессия
	reg := env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Name: "Иван", Email: "ivan@test.ru", Password: "password123",
	})
	w = env.doJSON(t, http.MethodGet, "/api/auth/status", nil, sessionCookie(t, reg))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.LoggedIn)
}

func TestLogoutUser(t *testing.T) {
	env := newTestEnv(t)

	reg := env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Name: "Иван", Email: "ivan@test.ru", Password: "password123",
	})
	cookie := sessionCookie(t, reg)

	w := env.doJSON(t, http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// кука погашена
	cleared := sessionCookie(t, w)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// без куки logout недоступен
	w = env.doJSON(t, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBecomeSeller(t *testing.T) {
	env := newTestEnv(t)

	reg := env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Name: "Иван", Email: "ivan@test.ru", Password: "password123",
	})
	cookie := sessionCookie(t, reg)

	w := env.doJSON(t, http.MethodPost, "/api/auth/become-seller", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// токен перевыпущен с новой ролью
	newCookie := sessionCookie(t, w)
	assert.NotEqual(t, cookie.Value, newCookie.Value)

	var user ds.User
	require.NoError(t, env.db.Where("email = ?", "ivan@test.ru").First(&user).Error)
	assert.Equal(t, "seller", user.Role)

	// со старой кукой продавец может создавать лоты только после перевыпуска:
	// новая кука несёт роль seller
	create := env.doJSON(t, http.MethodPost, "/api/products", dto.CreateProductRequest{
		Title: "лот", Price: 100,
	}, newCookie)
	assert.Equal(t, http.StatusCreated, create.Code)
}

func TestForgotAndResetPassword(t *testing.T) {
	env := newTestEnv(t)

	env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Name: "Иван", Email: "ivan@test.ru", Password: "password123",
	})

	// неизвестный email
	w := env.doJSON(t, http.MethodPost, "/api/auth/forgot-password", dto.ForgotPasswordRequest{
		Email: "nobody@test.ru",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/auth/forgot-password", dto.ForgotPasswordRequest{
		Email: "ivan@test.ru",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// код ушёл на почту и имеет 6 цифр
	assert.Equal(t, "ivan@test.ru", env.mailer.to)
	require.Len(t, env.mailer.code, 6)

	// сброс с верным кодом
	w = env.doJSON(t, http.MethodPost, "/api/auth/reset-password", dto.ResetPasswordRequest{
		Code: env.mailer.code, Password: "newpassword1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, sessionCookie(t, w).Value)

	// вход по новому паролю
	login := env.doJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email: "ivan@test.ru", Password: "newpassword1",
	})
	assert.Equal(t, http.StatusOK, login.Code)

	// код одноразовый — повторное использование даёт 404
	w = env.doJSON(t, http.MethodPost, "/api/auth/reset-password", dto.ResetPasswordRequest{
		Code: env.mailer.code, Password: "anotherpass1",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestForgotPasswordMailFailure(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.err = assert.AnError

	env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Name: "Иван", Email: "ivan@test.ru", Password: "password123",
	})

	// ошибка почты — общий 500 без деталей
	w := env.doJSON(t, http.MethodPost, "/api/auth/forgot-password", dto.ForgotPasswordRequest{
		Email: "ivan@test.ru",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "внутренняя ошибка сервера", resp.Message)
}
