package dto

import "time"

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Пользователи (Users) ============

type UserResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	Balance  float64 `json:"balance"`
	ImageURL string  `json:"image_url,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginStatusResponse struct {
	LoggedIn bool `json:"logged_in"`
}

type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

type IncomeResponse struct {
	CommissionBalance float64 `json:"commission_balance"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Code     string `json:"code" binding:"required,len=6"`
	Password string `json:"password" binding:"required,min=8"`
}

// ============ Товары (Products) ============

type ProductResponse struct {
	ID              uint       `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Price           float64    `json:"price"`
	Commission      float64    `json:"commission"`
	SellerID        uint       `json:"seller_id"`
	CategoryID      *uint      `json:"category_id,omitempty"`
	IsVerify        bool       `json:"is_verify"`
	IsSoldout       bool       `json:"is_soldout"`
	WinningBidderID *uint      `json:"winning_bidder_id,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	SoldAt          *time.Time `json:"sold_at,omitempty"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
}

type CreateProductRequest struct {
	Title       string  `json:"title" binding:"required,max=100"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	CategoryID  *uint   `json:"category_id"`
}

type UpdateProductRequest struct {
	Title       string  `json:"title" binding:"omitempty,max=100"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"omitempty,gt=0"`
	CategoryID  *uint   `json:"category_id"`
}

type VerifyProductRequest struct {
	Commission float64 `json:"commission" binding:"gte=0,lte=100"`
}

// ============ Ставки (Bids) ============

type BidResponse struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"product_id"`
	BidderID  uint      `json:"bidder_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type BidListResponse struct {
	Bids  []BidResponse `json:"bids"`
	Total int           `json:"total"`
}

type PlaceBidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type SaleResponse struct {
	Product        ProductResponse `json:"product"`
	WinningBid     BidResponse     `json:"winning_bid"`
	AdminCut       float64         `json:"admin_cut"`
	SellerProceeds float64         `json:"seller_proceeds"`
}

// ============ Категории (Categories) ============

type CategoryResponse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type CategoryRequest struct {
	Title string `json:"title" binding:"required,max=100"`
}

// ============ Журнал операций ============

type LedgerEntryResponse struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"product_id"`
	Amount    float64   `json:"amount"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
