package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// NFT price resolution.
	InvalidProductCode failure.ErrorCode = "InvalidProductCode" // empty or blank product_code
	ItemNotFound       failure.ErrorCode = "ItemNotFound"       // no item stored for the key
	RateLimited        failure.ErrorCode = "RateLimited"        // order book returned 429
	UpstreamTimeout    failure.ErrorCode = "UpstreamTimeout"    // order book did not answer in time
	UpstreamError      failure.ErrorCode = "UpstreamError"      // order book unreachable or non-2xx
)
