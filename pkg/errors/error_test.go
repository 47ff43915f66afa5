package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidCapital, "initial capital must be positive")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidCapital, err.Code)
	suite.Equal("initial capital must be positive", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeNonPositivePrice, "bar %d has non-positive close", 12)
	suite.NotNil(err)
	suite.Equal(ErrCodeNonPositivePrice, err.Code)
	suite.Equal("bar 12 has non-positive close", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataSourceFailed, "failed to load bars", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeDataSourceFailed, err.Code)
	suite.Equal("failed to load bars", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeDataSourceFailed, cause, "failed to load bars from %s", "data.csv")
	suite.NotNil(err)
	suite.Equal(ErrCodeDataSourceFailed, err.Code)
	suite.Equal("failed to load bars from data.csv", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidConfiguration, "invalid configuration")
	suite.Equal("[100] invalid configuration", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInsufficientData, "series too short", cause)
	suite.Equal("[200] series too short: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInsufficientData, "series too short", cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeNegativeVolume, "negative volume")
	suite.Equal(ErrCodeNegativeVolume, GetCode(err))
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("plain error")))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeNonMonotonicDates, "dates out of order")
	suite.True(HasCode(err, ErrCodeNonMonotonicDates))
	suite.False(HasCode(err, ErrCodeNegativeVolume))
}

func (suite *ErrorTestSuite) TestHasCodeWrapped() {
	inner := New(ErrCodeNonPositivePrice, "bad price")
	outer := Wrap(ErrCodeDataSourceFailed, "load failed", inner)
	// GetCode resolves to the outermost coded error.
	suite.Equal(ErrCodeDataSourceFailed, GetCode(outer))
}

func (suite *ErrorTestSuite) TestInsufficientDataError() {
	err := NewInsufficientDataError(61, 40, "need 61 bars, have 40")
	suite.Equal(61, err.Required)
	suite.Equal(40, err.Actual)
	suite.Equal("need 61 bars, have 40", err.Error())
	suite.True(IsInsufficientDataError(err))
}

func (suite *ErrorTestSuite) TestInsufficientDataErrorf() {
	err := NewInsufficientDataErrorf(61, 40, "need %d bars, have %d", 61, 40)
	suite.Equal("need 61 bars, have 40", err.Message)
}

func (suite *ErrorTestSuite) TestIsInsufficientDataErrorFalse() {
	suite.False(IsInsufficientDataError(errors.New("other")))
	suite.False(IsInsufficientDataError(nil))
}
