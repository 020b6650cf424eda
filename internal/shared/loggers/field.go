package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"
	FieldClientIP   = "client_ip"
	FieldRespSize   = "response_size"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldQueryID    = "query_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldLocation   = "location"
	FieldBucket     = "bucket"
	FieldBucketType = "bucket_type"
	FieldServer     = "server"
	FieldStage      = "stage"
	FieldDocument   = "document"
)
