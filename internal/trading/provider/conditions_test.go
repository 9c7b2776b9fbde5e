package tradingprovider_test

import (
	"context"
	"errors"
	"testing"

	tradingprovider "github.com/rxtech-lab/argo-daytrader/internal/trading/provider"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/rxtech-lab/argo-daytrader/mocks"
	argoErrors "github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type IndexConditionsTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	quotes *mocks.MockQuoteSource
}

func TestIndexConditionsSuite(t *testing.T) {
	suite.Run(t, new(IndexConditionsTestSuite))
}

func (suite *IndexConditionsTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.quotes = mocks.NewMockQuoteSource(suite.ctrl)
}

func (suite *IndexConditionsTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func quoteWithDirection(symbol string, direction types.Direction) types.Quote {
	return types.Quote{Symbol: symbol, Last: 100, Direction: direction}
}

func (suite *IndexConditionsTestSuite) TestMajorityDown() {
	tests := []struct {
		name       string
		directions []types.Direction
		expected   bool
	}{
		{"all down", []types.Direction{types.DirectionDown, types.DirectionDown, types.DirectionDown}, true},
		{"two of three down", []types.Direction{types.DirectionDown, types.DirectionUp, types.DirectionDown}, true},
		{"one of three down", []types.Direction{types.DirectionDown, types.DirectionUp, types.DirectionFlat}, false},
		{"none down", []types.Direction{types.DirectionUp, types.DirectionUp, types.DirectionFlat}, false},
	}

	symbols := []string{"SPY", "DIA", "QQQ"}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			quotes := make([]types.Quote, 0, len(symbols))
			for i, symbol := range symbols {
				quotes = append(quotes, quoteWithDirection(symbol, tc.directions[i]))
			}

			suite.quotes.EXPECT().FetchQuotes(gomock.Any(), symbols, false).Return(quotes, nil)

			conditions := tradingprovider.NewIndexConditions(suite.quotes, nil)
			down, err := conditions.IsBroadMarketDown(context.Background())
			suite.NoError(err)
			suite.Equal(tc.expected, down)
		})
	}
}

func (suite *IndexConditionsTestSuite) TestMissingQuotesCountAgainstMajority() {
	// two of three reported, only one down
	suite.quotes.EXPECT().FetchQuotes(gomock.Any(), gomock.Any(), false).Return([]types.Quote{
		quoteWithDirection("SPY", types.DirectionDown),
		quoteWithDirection("DIA", types.DirectionUp),
	}, nil)

	conditions := tradingprovider.NewIndexConditions(suite.quotes, []string{"SPY", "DIA", "QQQ"})
	down, err := conditions.IsBroadMarketDown(context.Background())
	suite.NoError(err)
	suite.False(down)
}

func (suite *IndexConditionsTestSuite) TestErrors() {
	suite.Run("fetch failure", func() {
		suite.quotes.EXPECT().FetchQuotes(gomock.Any(), gomock.Any(), false).Return(nil, errors.New("down"))

		conditions := tradingprovider.NewIndexConditions(suite.quotes, nil)
		_, err := conditions.IsBroadMarketDown(context.Background())
		suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeQuoteFetchFailed))
	})

	suite.Run("no quotes", func() {
		suite.quotes.EXPECT().FetchQuotes(gomock.Any(), gomock.Any(), false).Return([]types.Quote{}, nil)

		conditions := tradingprovider.NewIndexConditions(suite.quotes, nil)
		_, err := conditions.IsBroadMarketDown(context.Background())
		suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeQuoteMissing))
	})
}
