package repository

import "errors"

// Бизнес-ошибки, которые хендлеры транслируют в HTTP-статусы
var (
	ErrNotFound          = errors.New("запись не найдена")
	ErrEmailTaken        = errors.New("пользователь с таким email уже существует")
	ErrNotVerified       = errors.New("товар не проверен администратором")
	ErrAlreadySold       = errors.New("товар уже продан")
	ErrInsufficientFunds = errors.New("недостаточно средств на балансе победителя")
	ErrNoBids            = errors.New("на товар нет ставок")
	ErrLowBid            = errors.New("ставка должна превышать текущую максимальную")
	ErrOwnProduct        = errors.New("продавец не может ставить на свой товар")
	ErrProductSealed     = errors.New("проданный товар нельзя изменить")
	ErrInvalidResetCode  = errors.New("неверный или просроченный код сброса")
	ErrAdminMissing      = errors.New("аккаунт администратора не найден")
)
