package constants

const (
	// RequestHeader is the default HTTP header for request identifiers.
	RequestHeader = "X-Request-ID"
	// RequestMetadataKey is the default gRPC metadata key for request identifiers.
	RequestMetadataKey = "x-request-id"
)
