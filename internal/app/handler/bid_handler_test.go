package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"bidding/internal/app/ds"
	"bidding/internal/app/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// register регистрирует пользователя и возвращает его сессионную куку
func register(t *testing.T, env *testEnv, name, email string) *http.Cookie {
	t.Helper()
	w := env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Name: name, Email: email, Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return sessionCookie(t, w)
}

// promote меняет роль в базе и логинится заново, чтобы токен нёс новую роль
func promote(t *testing.T, env *testEnv, email, roleStr string) *http.Cookie {
	t.Helper()
	require.NoError(t, env.db.Model(&ds.User{}).Where("email = ?", email).Update("role", roleStr).Error)

	w := env.doJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email: email, Password: "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	return sessionCookie(t, w)
}

func setBalance(t *testing.T, env *testEnv, email string, balance float64) {
	t.Helper()
	require.NoError(t, env.db.Model(&ds.User{}).Where("email = ?", email).Update("balance", balance).Error)
}

func TestAuctionFlow(t *testing.T) {
	env := newTestEnv(t)

	register(t, env, "admin", "admin@test.ru")
	admin := promote(t, env, "admin@test.ru", "admin")

	register(t, env, "seller", "seller@test.ru")
	seller := promote(t, env, "seller@test.ru", "seller")

	buyer := register(t, env, "buyer", "buyer@test.ru")
	setBalance(t, env, "buyer@test.ru", 1000)

	// продавец выставляет лот
	w := env.doJSON(t, http.MethodPost, "/api/products", dto.CreateProductRequest{
		Title: "картина", Description: "холст, масло", Price: 100,
	}, seller)
	require.Equal(t, http.StatusCreated, w.Code)

	var product dto.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.False(t, product.IsVerify)

	productPath := fmt.Sprintf("/api/products/%d", product.ID)

	// до модерации ставки не принимаются
	w = env.doJSON(t, http.MethodPost, productPath+"/bids", dto.PlaceBidRequest{Amount: 150}, buyer)
	assert.Equal(t, http.StatusConflict, w.Code)

	// покупатель не может модерировать
	w = env.doJSON(t, http.MethodPut, productPath+"/verify", dto.VerifyProductRequest{Commission: 10}, buyer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// админ подтверждает лот с комиссией 10%
	w = env.doJSON(t, http.MethodPut, productPath+"/verify", dto.VerifyProductRequest{Commission: 10}, admin)
	require.Equal(t, http.StatusOK, w.Code)

	// ставка ниже стартовой цены отклоняется
	w = env.doJSON(t, http.MethodPost, productPath+"/bids", dto.PlaceBidRequest{Amount: 50}, buyer)
	assert.Equal(t, http.StatusConflict, w.Code)

	// валидная ставка
	w = env.doJSON(t, http.MethodPost, productPath+"/bids", dto.PlaceBidRequest{Amount: 150}, buyer)
	require.Equal(t, http.StatusCreated, w.Code)

	// чужой продавец не может продать лот
	register(t, env, "other", "other@test.ru")
	other := promote(t, env, "other@test.ru", "seller")
	w = env.doJSON(t, http.MethodPost, productPath+"/sell", nil, other)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// владелец продаёт
	w = env.doJSON(t, http.MethodPost, productPath+"/sell", nil, seller)
	require.Equal(t, http.StatusOK, w.Code)

	var sale dto.SaleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
	assert.Equal(t, 10.0, sale.AdminCut)
	assert.Equal(t, 90.0, sale.SellerProceeds)
	assert.True(t, sale.Product.IsSoldout)

	// повторная продажа — конфликт
	w = env.doJSON(t, http.MethodPost, productPath+"/sell", nil, seller)
	assert.Equal(t, http.StatusConflict, w.Code)

	// доход админа равен комиссии
	w = env.doJSON(t, http.MethodGet, "/api/income", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	var income dto.IncomeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &income))
	assert.Equal(t, 10.0, income.CommissionBalance)
}

func TestGetBidsOrdering(t *testing.T) {
	env := newTestEnv(t)

	register(t, env, "admin", "admin@test.ru")
	admin := promote(t, env, "admin@test.ru", "admin")

	register(t, env, "seller", "seller@test.ru")
	seller := promote(t, env, "seller@test.ru", "seller")

	first := register(t, env, "first", "first@test.ru")
	second := register(t, env, "second", "second@test.ru")

	w := env.doJSON(t, http.MethodPost, "/api/products", dto.CreateProductRequest{
		Title: "лот", Price: 100,
	}, seller)
	require.Equal(t, http.StatusCreated, w.Code)

	var product dto.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	productPath := fmt.Sprintf("/api/products/%d", product.ID)
	require.Equal(t, http.StatusOK,
		env.doJSON(t, http.MethodPut, productPath+"/verify", dto.VerifyProductRequest{Commission: 5}, admin).Code)

	require.Equal(t, http.StatusCreated,
		env.doJSON(t, http.MethodPost, productPath+"/bids", dto.PlaceBidRequest{Amount: 100}, first).Code)
	require.Equal(t, http.StatusCreated,
		env.doJSON(t, http.MethodPost, productPath+"/bids", dto.PlaceBidRequest{Amount: 200}, second).Code)

	// история ставок публична, максимальная первой
	w = env.doJSON(t, http.MethodGet, productPath+"/bids", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list dto.BidListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 2, list.Total)
	assert.Equal(t, 200.0, list.Bids[0].Amount)
	assert.Equal(t, 100.0, list.Bids[1].Amount)
}
