package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Configuration errors (100-199)
	ErrCodeInvalidConfiguration    ErrorCode = 100
	ErrCodeInvalidCapital          ErrorCode = 101
	ErrCodeInvalidRate             ErrorCode = 102
	ErrCodeInvalidPositionFraction ErrorCode = 103
	ErrCodeInvalidStopLoss         ErrorCode = 104
	ErrCodeInvalidTakeProfit       ErrorCode = 105
	ErrCodeInvalidRebalanceDays    ErrorCode = 106
	ErrCodeInvalidLotSize          ErrorCode = 107
	ErrCodeInvalidWarmup           ErrorCode = 108
	ErrCodeInvalidThreshold        ErrorCode = 109

	// Data errors (200-299)
	ErrCodeInsufficientData   ErrorCode = 200
	ErrCodeNonMonotonicDates  ErrorCode = 201
	ErrCodeNonPositivePrice   ErrorCode = 202
	ErrCodeNegativeVolume     ErrorCode = 203
	ErrCodeDataSourceFailed   ErrorCode = 204
	ErrCodeDataParseFailed    ErrorCode = 205
	ErrCodeNoDataFound        ErrorCode = 206
	ErrCodeDataNotInitialized ErrorCode = 207

	// Simulation errors (300-399)
	ErrCodeSimulationNoStrategy  ErrorCode = 300
	ErrCodeSimulationNoData      ErrorCode = 301
	ErrCodeSimulationStoreFailed ErrorCode = 302
	ErrCodeSimulationWriteFailed ErrorCode = 303
)
