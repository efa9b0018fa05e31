package status

const (
	OK                    = "OK"
	CREATED               = "CREATED"
	BAD_REQUEST           = "BAD_REQUEST"
	UNAUTHORIZED          = "UNAUTHORIZED"
	FORBIDDEN             = "FORBIDDEN"
	NOT_FOUND             = "NOT_FOUND"
	CONFLICT              = "CONFLICT"
	UNPROCESSABLE_ENTITY  = "UNPROCESSABLE_ENTITY"
	INTERNAL_SERVER_ERROR = "INTERNAL_SERVER_ERROR"

	INSUFFICIENT_PAYMENT    = "INSUFFICIENT_PAYMENT"
	PURCHASE_LIMIT_EXCEEDED = "PURCHASE_LIMIT_EXCEEDED"
	NOT_OWNER               = "NOT_OWNER"
	RESALE_LIMIT_REACHED    = "RESALE_LIMIT_REACHED"
	PRICE_ABOVE_CEILING     = "PRICE_ABOVE_CEILING"
	NOT_FOR_SALE            = "NOT_FOR_SALE"
	TRANSFER_REJECTED       = "TRANSFER_REJECTED"
)
