package handler

import (
	"net/http"

	"bidding/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН КАТЕГОРИИ ============

// GetCategories список категорий
// @Summary Список категорий
// @Tags Categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/categories [get]
func (h *APIHandler) GetCategories(c *gin.Context) {
	categories, err := h.Repository.GetAllCategories()
	if err != nil {
		logrus.Error("Error getting categories: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения категорий")
		return
	}

	dtoCategories := make([]dto.CategoryResponse, len(categories))
	for i, cat := range categories {
		dtoCategories[i] = dto.CategoryResponse{ID: cat.ID, Title: cat.Title}
	}

	c.JSON(http.StatusOK, dtoCategories)
}

// CreateCategory создание категории (админ)
// @Summary Создание категории (админ)
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CategoryRequest true "Название категории"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/categories [post]
func (h *APIHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "укажите название категории")
		return
	}

	category, err := h.Repository.CreateCategory(req.Title)
	if err != nil {
		logrus.Error("Error creating category: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка создания категории")
		return
	}

	c.JSON(http.StatusCreated, dto.CategoryResponse{ID: category.ID, Title: category.Title})
}

// UpdateCategory изменение категории (админ)
// @Summary Изменение категории (админ)
// @Description Идемпотентно: повторная отправка того же названия даёт то же состояние
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID категории"
// @Param request body dto.CategoryRequest true "Новое название"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/categories/{id} [put]
func (h *APIHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID категории")
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "укажите название категории")
		return
	}

	category, err := h.Repository.UpdateCategory(id, req.Title)
	if err != nil {
		h.businessError(c, err, "ошибка изменения категории")
		return
	}

	c.JSON(http.StatusOK, dto.CategoryResponse{ID: category.ID, Title: category.Title})
}

// DeleteCategory удаление категории (админ)
// @Summary Удаление категории (админ)
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID категории"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/categories/{id} [delete]
func (h *APIHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID категории")
		return
	}

	if err := h.Repository.DeleteCategory(id); err != nil {
		h.businessError(c, err, "ошибка удаления категории")
		return
	}

	h.successResponse(c, http.StatusOK, "категория удалена", nil)
}
