package errors

// ErrorCode identifies a failure class.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidOrderRequest  ErrorCode = 102
	ErrCodeInvalidSymbol        ErrorCode = 103
	ErrCodeInvalidProvider      ErrorCode = 104
	ErrCodeEngineNotInitialized ErrorCode = 105
	ErrCodeUnauthorized         ErrorCode = 106
	ErrCodeForbiddenOrigin      ErrorCode = 107

	// Data errors (200-299)
	ErrCodeInvalidQuote       ErrorCode = 200
	ErrCodeQuoteMissing       ErrorCode = 201
	ErrCodeInvalidPriceSample ErrorCode = 202
	ErrCodeSymbolNotTracked   ErrorCode = 203
	ErrCodeSymbolDuplicate    ErrorCode = 204

	// Order errors (500-599)
	ErrCodeOrderFailed      ErrorCode = 500
	ErrCodeOrderRejected    ErrorCode = 501
	ErrCodePositionNotFound ErrorCode = 502
	ErrCodeNoRevertSnapshot ErrorCode = 503
	ErrCodeOrderNotFound    ErrorCode = 504

	// Budget and threshold errors (600-699)
	ErrCodeInsufficientBudget     ErrorCode = 600
	ErrCodeNearRegulatoryMinimum  ErrorCode = 601
	ErrCodeBelowRegulatoryMinimum ErrorCode = 602
	ErrCodeTradingStopped         ErrorCode = 603

	// Connectivity errors (700-799)
	ErrCodeQuoteFetchFailed   ErrorCode = 700
	ErrCodeBrokerUnavailable  ErrorCode = 701
	ErrCodeCycleTimeout       ErrorCode = 702
	ErrCodeAccountUnavailable ErrorCode = 703

	// Persisted state errors (900-999)
	ErrCodeCorruptWatchlist  ErrorCode = 900
	ErrCodeWatchlistIOFailed ErrorCode = 901
	ErrCodeConfigLoadFailed  ErrorCode = 902
	ErrCodeLedgerWriteFailed ErrorCode = 903
)

func (c ErrorCode) inRange(lo, hi int) bool {
	return int(c) >= lo && int(c) < hi
}
