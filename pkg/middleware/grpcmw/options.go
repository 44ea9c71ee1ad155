package grpcmw

// Option defines a configuration option for the gRPC middleware.
type Option func(*options)

type options struct {
	tag        string
	requestKey string
}

// WithTag sets the tag RPC lines are logged under. The default is "GRPC".
func WithTag(tag string) Option {
	return func(o *options) {
		if o == nil || tag == "" {
			return
		}

		o.tag = tag
	}
}

// WithRequestKey customizes the metadata key used to read the request identifier.
func WithRequestKey(name string) Option {
	return func(o *options) {
		if o == nil || name == "" {
			return
		}

		o.requestKey = name
	}
}
