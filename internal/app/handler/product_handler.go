package handler

import (
	"io"
	"net/http"
	"strconv"

	"bidding/internal/app/dto"
	"bidding/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ТОВАРЫ ============

func parseIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// GetProducts получает список живых лотов
// @Summary Список товаров
// @Description Возвращает проверенные и непроданные лоты с поиском по названию
// @Tags Products
// @Produce json
// @Param query query string false "Поиск по названию"
// @Success 200 {object} dto.ProductListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products [get]
func (h *APIHandler) GetProducts(c *gin.Context) {
	searchQuery := c.Query("query")

	products, err := h.Repository.GetLiveProducts(searchQuery)
	if err != nil {
		logrus.Error("Error getting products: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения товаров")
		return
	}

	dtoProducts := make([]dto.ProductResponse, len(products))
	for i := range products {
		dtoProducts[i] = productToResponse(&products[i])
	}

	c.JSON(http.StatusOK, dto.ProductListResponse{
		Products: dtoProducts,
		Total:    len(dtoProducts),
	})
}

// GetProduct получает один лот
// @Summary Получение товара по ID
// @Tags Products
// @Produce json
// @Param id path int true "ID товара"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/products/{id} [get]
func (h *APIHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID товара")
		return
	}

	product, err := h.Repository.GetProductByID(id)
	if err != nil {
		h.businessError(c, err, "ошибка получения товара")
		return
	}

	c.JSON(http.StatusOK, productToResponse(product))
}

// GetAllProductsAdmin весь каталог для админа
// @Summary Все товары (админ)
// @Description Возвращает все лоты, включая непроверенные и проданные
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProductListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/products [get]
func (h *APIHandler) GetAllProductsAdmin(c *gin.Context) {
	products, err := h.Repository.GetAllProducts()
	if err != nil {
		logrus.Error("Error getting products: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения товаров")
		return
	}

	dtoProducts := make([]dto.ProductResponse, len(products))
	for i := range products {
		dtoProducts[i] = productToResponse(&products[i])
	}

	c.JSON(http.StatusOK, dto.ProductListResponse{
		Products: dtoProducts,
		Total:    len(dtoProducts),
	})
}

// GetMyProducts лоты текущего продавца
// @Summary Мои товары
// @Description Возвращает все лоты текущего продавца, включая непроверенные и проданные
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProductListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/seller/products [get]
func (h *APIHandler) GetMyProducts(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	products, err := h.Repository.GetProductsBySeller(userID)
	if err != nil {
		logrus.Error("Error getting products: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения товаров")
		return
	}

	dtoProducts := make([]dto.ProductResponse, len(products))
	for i := range products {
		dtoProducts[i] = productToResponse(&products[i])
	}

	c.JSON(http.StatusOK, dto.ProductListResponse{
		Products: dtoProducts,
		Total:    len(dtoProducts),
	})
}

// CreateProduct создаёт лот
// @Summary Создание товара
// @Description Продавец выставляет лот; он появится в каталоге после проверки админом
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProductRequest true "Данные товара"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products [post]
func (h *APIHandler) CreateProduct(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "неверные данные: "+err.Error())
		return
	}

	product, err := h.Repository.CreateProduct(userID, req.Title, req.Description, req.Price, req.CategoryID)
	if err != nil {
		logrus.Error("Error creating product: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка создания товара")
		return
	}

	c.JSON(http.StatusCreated, productToResponse(product))
}

// UpdateProduct изменяет лот
// @Summary Изменение товара
// @Description Доступно владельцу-продавцу, пока лот не продан
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID товара"
// @Param request body dto.UpdateProductRequest true "Изменяемые поля"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/products/{id} [put]
func (h *APIHandler) UpdateProduct(c *gin.Context) {
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
		h.businessError(c, err, "ошибка изменения товара")
		return
	}
	if product.SellerID != userID && userRole != role.Admin {
		h.errorResponse(c, http.StatusForbidden, "товар принадлежит другому продавцу")
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "неверные данные: "+err.Error())
		return
	}

	updated, err := h.Repository.UpdateProduct(id, req.Title, req.Description, req.Price, req.CategoryID)
	if err != nil {
		h.businessError(c, err, "ошибка изменения товара")
		return
	}

	c.JSON(http.StatusOK, productToResponse(updated))
}

// DeleteProduct удаляет лот
// @Summary Удаление товара
// @Description Доступно владельцу или админу. Картинка в хранилище удаляется best-effort: ошибка логируется, запрос не падает
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID товара"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/products/{id} [delete]
func (h *APIHandler) DeleteProduct(c *gin.Context) {
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
		h.businessError(c, err, "ошибка удаления товара")
		return
	}
	if product.SellerID != userID && userRole != role.Admin {
		h.errorResponse(c, http.StatusForbidden, "товар принадлежит другому продавцу")
		return
	}

	imageKey, err := h.Repository.DeleteProduct(id)
	if err != nil {
		h.businessError(c, err, "ошибка удаления товара")
		return
	}

	// Fire-and-forget удаление картинки
	if imageKey != nil && *imageKey != "" && h.MinIOClient != nil {
		if err := h.MinIOClient.DeleteFile(*imageKey); err != nil {
			logrus.Error("Image delete error: ", err)
		}
	}

	h.successResponse(c, http.StatusOK, "товар удалён", nil)
}

// UploadProductImage загружает картинку лота
// @Summary Загрузка изображения товара
// @Description Загрузка обязана пройти — при ошибке хранилища запрос падает. Старая картинка удаляется best-effort
// @Tags Products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID товара"
// @Param image formData file true "Изображение"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products/{id}/image [post]
func (h *APIHandler) UploadProductImage(c *gin.Context) {
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
		h.businessError(c, err, "ошибка загрузки изображения")
		return
	}
	if product.SellerID != userID && userRole != role.Admin {
		h.errorResponse(c, http.StatusForbidden, "товар принадлежит другому продавцу")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "файл не передан")
		return
	}

	if h.MinIOClient == nil {
		h.errorResponse(c, http.StatusInternalServerError, "хранилище изображений недоступно")
		return
	}

	src, err := file.Open()
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "не удалось прочитать файл")
		return
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "не удалось прочитать файл")
		return
	}

	key, err := h.MinIOClient.UploadFile(data, file.Filename, "product")
	if err != nil {
		logrus.Error("Image upload error: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "не удалось загрузить изображение")
		return
	}

	url, err := h.MinIOClient.GetFileURL(key)
	if err != nil {
		logrus.Error("Presign error: ", err)
		url = key
	}

	if product.ImageKey != nil && *product.ImageKey != "" {
		if err := h.MinIOClient.DeleteFile(*product.ImageKey); err != nil {
			logrus.Error("Image delete error: ", err)
		}
	}

	updated, err := h.Repository.SetProductImage(id, url, key)
	if err != nil {
		h.businessError(c, err, "ошибка загрузки изображения")
		return
	}

	c.JSON(http.StatusOK, productToResponse(updated))
}

// VerifyProduct модерация лота админом
// @Summary Проверка товара (админ)
// @Description Подтверждает лот и назначает процент комиссии площадки. Идемпотентно
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID товара"
// @Param request body dto.VerifyProductRequest true "Комиссия, 0-100"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/products/{id}/verify [put]
func (h *APIHandler) VerifyProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID товара")
		return
	}

	var req dto.VerifyProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "комиссия должна быть в диапазоне 0-100")
		return
	}

	product, err := h.Repository.VerifyProduct(id, req.Commission)
	if err != nil {
		h.businessError(c, err, "ошибка проверки товара")
		return
	}

	c.JSON(http.StatusOK, productToResponse(product))
}
