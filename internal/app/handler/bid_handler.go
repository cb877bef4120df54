package handler

import (
	"net/http"

	"bidding/internal/app/dto"
	"bidding/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН СТАВКИ И ПРОДАЖА ============

// PlaceBid делает ставку на лот
// @Summary Ставка на товар
// @Description Принимает ставку: лот должен быть проверен и не продан, ставка выше текущего максимума и не ниже стартовой цены, продавец не может ставить на свой лот
// @Tags Bids
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID товара"
// @Param request body dto.PlaceBidRequest true "Сумма ставки"
// @Success 201 {object} dto.BidResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/products/{id}/bids [post]
func (h *APIHandler) PlaceBid(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID товара")
		return
	}

	var req dto.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "укажите сумму ставки больше нуля")
		return
	}

	bid, err := h.Repository.PlaceBid(id, userID, req.Amount)
	if err != nil {
		h.businessError(c, err, "ошибка приёма ставки")
		return
	}

	c.JSON(http.StatusCreated, bidToResponse(bid))
}

// GetBids история ставок по лоту
// @Summary Ставки по товару
// @Description Возвращает ставки, максимальная первой
// @Tags Bids
// @Produce json
// @Param id path int true "ID товара"
// @Success 200 {object} dto.BidListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products/{id}/bids [get]
func (h *APIHandler) GetBids(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID товара")
		return
	}

	bids, err := h.Repository.GetBidsForProduct(id)
	if err != nil {
		logrus.Error("Error getting bids: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения ставок")
		return
	}

	dtoBids := make([]dto.BidResponse, len(bids))
	for i := range bids {
		dtoBids[i] = bidToResponse(&bids[i])
	}

	c.JSON(http.StatusOK, dto.BidListResponse{
		Bids:  dtoBids,
		Total: len(dtoBids),
	})
}

// SellProduct продажа лота наибольшей ставке
// @Summary Продажа товара (расчёт)
// @Description Продаёт лот победившей ставке: победитель платит цену, продавец получает цену минус комиссию, комиссия зачисляется админу. Всё в одной транзакции; повторная продажа даёт 409
// @Tags Bids
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID товара"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/products/{id}/sell [post]
func (h *APIHandler) SellProduct(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID товара")
		return
	}

	product, err := h.Repository.GetProductByID(id)
	if err != nil {
		h.businessError(c, err, "ошибка продажи товара")
		return
	}
	// Продать может владелец лота или админ
	if product.SellerID != userID && userRole != role.Admin {
		h.errorResponse(c, http.StatusForbidden, "товар принадлежит другому продавцу")
		return
	}

	result, err := h.Repository.SellProduct(id)
	if err != nil {
		h.businessError(c, err, "ошибка продажи товара")
		return
	}

	c.JSON(http.StatusOK, dto.SaleResponse{
		Product:        productToResponse(&result.Product),
		WinningBid:     bidToResponse(&result.WinningBid),
		AdminCut:       result.AdminCut,
		SellerProceeds: result.SellerProceeds,
	})
}
