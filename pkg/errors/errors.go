package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 数据源相关错误。
var (
	SourceUnavailable    = Definition{Code: "SOURCE_UNAVAILABLE", Message: "Document store unavailable"}
	AnalyticsUnavailable = Definition{Code: "ANALYTICS_UNAVAILABLE", Message: "Analytics report unavailable"}
	DatabaseUnavailable  = Definition{Code: "DATABASE_UNAVAILABLE", Message: "Audit database unavailable"}
)

// 请求相关错误。
var (
	InvalidRequest  = Definition{Code: "INVALID_REQUEST", Message: "Invalid request"}
	SectionNotFound = Definition{Code: "SECTION_NOT_FOUND", Message: "Dashboard section not found"}
	TooManyRequests = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests"}
	InternalError   = Definition{Code: "INTERNAL_ERROR", Message: "Internal error"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	SourceUnavailable.Code:    SourceUnavailable,
	AnalyticsUnavailable.Code: AnalyticsUnavailable,
	DatabaseUnavailable.Code:  DatabaseUnavailable,
	InvalidRequest.Code:       InvalidRequest,
	SectionNotFound.Code:      SectionNotFound,
	TooManyRequests.Code:      TooManyRequests,
	InternalError.Code:        InternalError,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

// Wrap 在保留错误码的前提下附加底层错误
func (d Definition) Wrap(cause error) error {
	return &WrappedError{Definition: d, Cause: cause}
}

// WrappedError 携带业务错误码与底层原因
type WrappedError struct {
	Cause      error
	Definition Definition
}

func (e *WrappedError) Error() string {
	if e.Cause == nil {
		return e.Definition.Message
	}
	return e.Definition.Message + ": " + e.Cause.Error()
}

func (e *WrappedError) Unwrap() error {
	return e.Cause
}

// Is 让 errors.Is(err, errors.SourceUnavailable) 按错误码匹配
func (e *WrappedError) Is(target error) bool {
	def, ok := target.(Definition)
	return ok && def.Code == e.Definition.Code
}

// SkipMessageError 消息无需处理（重复或无效），消费者直接确认且不重投
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return e.Reason
}
