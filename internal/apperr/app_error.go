package apperr

import "github.com/tuanvumaihuynh/storefront/pkg/zerror"

const (
	ValidationErrorCode   = "VALIDATION_FAILED"
	InvalidPayloadCode    = "INVALID_PAYLOAD"
	ProductNotFoundCode   = "PRODUCT_NOT_FOUND"
	ProductIDNotFoundCode = "PRODUCT_ID_NOT_FOUND"
	OutOfStockCode        = "OUT_OF_STOCK"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "invalid payload")

	// InvalidPayloadErr is a malformed or incomplete add-to-cart request.
	InvalidPayloadErr = zerror.NewUnprocessableEntity(InvalidPayloadCode, "invalid payload")

	// ProductNotFoundErr is a catalog lookup miss.
	ProductNotFoundErr = zerror.NewNotFound(ProductNotFoundCode, "not found")

	// ProductIDNotFoundErr is an add-to-cart for an id missing from the catalog.
	ProductIDNotFoundErr = zerror.NewNotFound(ProductIDNotFoundCode, "product id not found")

	OutOfStockErr = zerror.NewUnprocessableEntity(OutOfStockCode, "Stok habis.")
)
