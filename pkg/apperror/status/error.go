package status

// ErrorCode is a numeric code to classify API errors in a stable way
type ErrorCode int

// Reserved ranges by domain:
//   1000-1999: EntryResolver
//   2000-2999: ScenarioSession
//   3000-3999: AudioPipeline
//   4000-4999: Oracle

// Client/validation errors start at *000
const (
	InvalidRequestBody     ErrorCode = iota // 0
	MissingParams                           // 1
	NotebookDuplicateEntry                  // 2
	NotebookUnknownEntry                    // 3
)

// Resolver internal errors start at 1000
const (
	ResolverLookupFailed ErrorCode = 1000 + iota // 1000
	ResolverImageFailed                          // 1001
	NotebookWriteFailed                          // 1002
)

// ScenarioSession errors start at 2000
const (
	ScenarioGenerationFailed ErrorCode = 2000 + iota // 2000
	ScenarioTurnFailed                               // 2001
	ScenarioTurnPending                              // 2002
	ScenarioEvaluationFailed                         // 2003
	ScenarioInvalidState                             // 2004
)

// AudioPipeline errors start at 3000
const (
	AudioSynthesisFailed ErrorCode = 3000 + iota // 3000
	AudioDecodeFailed                            // 3001
	AudioDeviceFailed                            // 3002
	AudioUnknownVoice                            // 3003
)

// Oracle errors start at 4000
const (
	OracleMalformedPayload ErrorCode = 4000 + iota // 4000
	OracleTransportFailed                          // 4001
	OracleTimeout                                  // 4002
)

// Deprecated: prefer domain-specific internal codes above
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
