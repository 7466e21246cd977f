package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongAnswer        = errors.New("wrong email or answer")
	ErrInvalidRole        = errors.New("invalid role")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")

	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrCheckoutInProgress = errors.New("checkout already in progress")

	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrPhotoTooLarge    = errors.New("photo must be smaller than 1mb")
	ErrNegativePrice    = errors.New("price must not be negative")
)
