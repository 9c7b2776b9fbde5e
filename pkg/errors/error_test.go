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
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeQuoteMissing, "no quote for %s", "AAPL")
	suite.Equal(ErrCodeQuoteMissing, err.Code)
	suite.Equal("no quote for AAPL", err.Message)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("connection reset")
	err := Wrapf(ErrCodeBrokerUnavailable, cause, "failed to submit %s order", "BUY")
	suite.Equal("failed to submit BUY order", err.Message)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestErrorString() {
	suite.Equal("[100] invalid parameter", New(ErrCodeInvalidParameter, "invalid parameter").Error())

	cause := errors.New("timeout")
	suite.Equal("[700] quote fetch failed: timeout", Wrap(ErrCodeQuoteFetchFailed, "quote fetch failed", cause).Error())
}

func (suite *ErrorTestSuite) TestGetCode() {
	inner := New(ErrCodeInvalidQuote, "bad quote")
	outer := Wrap(ErrCodeOrderFailed, "order failed", inner)
	suite.Equal(ErrCodeOrderFailed, GetCode(outer))
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("plain")))
	suite.True(HasCode(outer, ErrCodeOrderFailed))
	suite.False(HasCode(outer, ErrCodeInvalidQuote))
}

func (suite *ErrorTestSuite) TestIsAndAs() {
	cause := errors.New("underlying")
	err := Wrap(ErrCodeConfigLoadFailed, "load", cause)
	suite.True(Is(err, cause))

	var coded *Error
	suite.True(As(err, &coded))
	suite.Equal(ErrCodeConfigLoadFailed, coded.Code)
}

func (suite *ErrorTestSuite) TestClassification() {
	tests := []struct {
		name         string
		err          error
		data         bool
		order        bool
		policy       bool
		connectivity bool
	}{
		{name: "invalid quote", err: New(ErrCodeInvalidQuote, "x"), data: true},
		{name: "bad sample", err: New(ErrCodeInvalidPriceSample, "x"), data: true},
		{name: "order rejected", err: New(ErrCodeOrderRejected, "x"), order: true},
		{name: "insufficient budget", err: New(ErrCodeInsufficientBudget, "x"), policy: true},
		{name: "broker down", err: New(ErrCodeBrokerUnavailable, "x"), connectivity: true},
		{name: "timeout", err: Wrap(ErrCodeCycleTimeout, "x", errors.New("deadline")), connectivity: true},
		{name: "plain error", err: errors.New("x")},
		{name: "corrupt watchlist", err: New(ErrCodeCorruptWatchlist, "x")},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.Equal(tt.data, IsDataError(tt.err))
			suite.Equal(tt.order, IsOrderError(tt.err))
			suite.Equal(tt.policy, IsPolicyError(tt.err))
			suite.Equal(tt.connectivity, IsConnectivityError(tt.err))
		})
	}
}
