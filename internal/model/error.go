package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeMissingField         = "MISSING_FIELD"
	ErrCodeInvalidTransition    = "INVALID_TRANSITION"
	ErrCodeInvalidStatus        = "INVALID_STATUS"
	ErrCodeEmptyCart            = "EMPTY_CART"
	ErrCodeCartConflict         = "CART_CONFLICT"
	ErrCodeCartLineNotFound     = "CART_LINE_NOT_FOUND"
	ErrCodeProductNotFound      = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidProduct       = "INVALID_PRODUCT"
	ErrCodeOfferNotFound        = "OFFER_NOT_FOUND"
	ErrCodeOfferUnavailable     = "OFFER_UNAVAILABLE"
	ErrCodeUnpricedOffer        = "UNPRICED_OFFER"
	ErrCodeDuplicateOffer       = "DUPLICATE_OFFER"
	ErrCodeInvalidPriceTiers    = "INVALID_PRICE_TIERS"
	ErrCodeUnknownArea          = "UNKNOWN_AREA"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeNotificationNotFound = "NOTIFICATION_NOT_FOUND"
	ErrCodeInvalidQuantity      = "INVALID_QUANTITY"
	ErrCodeInvalidCredentials   = "INVALID_CREDENTIALS"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeStoreUnavailable     = "STORE_UNAVAILABLE"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidTransition    = NewDomainError(ErrCodeInvalidTransition, "This order cannot move to the requested status")
	ErrInvalidStatus        = NewDomainError(ErrCodeInvalidStatus, "Unknown order status")
	ErrEmptyCart            = NewDomainError(ErrCodeEmptyCart, "Your cart is empty")
	ErrCartConflict         = NewDomainError(ErrCodeCartConflict, "Your cart changed while confirming, please review it and try again")
	ErrCartLineNotFound     = NewDomainError(ErrCodeCartLineNotFound, "Cart item not found")
	ErrProductNotFound      = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrInvalidProduct       = NewDomainError(ErrCodeInvalidProduct, "Product name and unit are required")
	ErrOfferNotFound        = NewDomainError(ErrCodeOfferNotFound, "Offer not found")
	ErrOfferUnavailable     = NewDomainError(ErrCodeOfferUnavailable, "This offer is currently unavailable")
	ErrUnpricedOffer        = NewDomainError(ErrCodeUnpricedOffer, "No price is available for this quantity")
	ErrDuplicateOffer       = NewDomainError(ErrCodeDuplicateOffer, "You already list this product")
	ErrInvalidPriceTiers    = NewDomainError(ErrCodeInvalidPriceTiers, "Price tiers need minQty >= 1, maxQty >= minQty and a positive price with at most 2 decimals")
	ErrUnknownArea          = NewDomainError(ErrCodeUnknownArea, "One or more delivery areas are not serviceable")
	ErrOrderNotFound        = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrNotificationNotFound = NewDomainError(ErrCodeNotificationNotFound, "Notification not found")
	ErrInvalidQuantity      = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidCredentials   = NewDomainError(ErrCodeInvalidCredentials, "Phone or password is incorrect")
	ErrUnauthorised         = NewDomainError(ErrCodeUnauthorised, "Please sign in again")
	ErrForbidden            = NewDomainError(ErrCodeForbidden, "You are not allowed to do this")
	ErrStoreUnavailable     = NewDomainError(ErrCodeStoreUnavailable, "Service temporarily unavailable, please retry")
)
