package status

// ErrorCode is a numeric code to classify API errors in a stable way
type ErrorCode int

// Reserved ranges by domain:
//   0-999:     client/validation errors
//   1000-1999: question generation
//   2000-2999: answer evaluation
//   3000-3999: document upload

const (
	BadRequestBase ErrorCode = 0
	GenerateBase   ErrorCode = 1000
	EvaluateBase   ErrorCode = 2000
	UploadBase     ErrorCode = 3000
)

const (
	InvalidRequestBody ErrorCode = BadRequestBase + iota // 0
	MissingParams                                        // 1
	InvalidParams                                        // 2
)

const (
	GeneratePDFNotFound    ErrorCode = GenerateBase + iota // 1000
	GenerateNoText                                         // 1001
	GenerateNoQuestions                                    // 1002
	GenerateDocumentFailed                                 // 1003
	GenerateDependency                                     // 1004
)

const (
	EvaluateInvalidPayload   ErrorCode = EvaluateBase + iota // 2000
	EvaluateInvalidFormat                                    // 2001
	EvaluateInvalidTypes                                     // 2002
	EvaluateDocumentNotFound                                 // 2003
)

const (
	UploadInternal    ErrorCode = UploadBase + iota // 3000
	UploadStoreFailed                               // 3001
)

const (
	ErrorCodeInternal ErrorCode = 9000
)

// CodedError represents an error with an associated ErrorCode
type CodedError interface {
	error
	ErrorCode() ErrorCode
}

type codedError struct {
	code ErrorCode
	err  error
}

func (e codedError) Error() string        { return e.err.Error() }
func (e codedError) Unwrap() error        { return e.err }
func (e codedError) ErrorCode() ErrorCode { return e.code }

// New creates a new CodedError with the given code and underlying error
func New(code ErrorCode, err error) error {
	if err == nil {
		return nil
	}
	return codedError{code: code, err: err}
}
