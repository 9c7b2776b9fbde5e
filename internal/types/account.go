package types

// AccountSnapshot is the broker's view of the account at the start of a cycle.
type AccountSnapshot struct {
	// Equity is the account value during regular hours.
	Equity float64 `json:"equity" yaml:"equity"`
	// ExtendedHoursEquity is the account value outside regular hours.
	ExtendedHoursEquity float64 `json:"extended_hours_equity" yaml:"extended_hours_equity"`
	BuyingPower         float64 `json:"buying_power" yaml:"buying_power"`
	Cash                float64 `json:"cash" yaml:"cash"`
	UnsettledFunds      float64 `json:"unsettled_funds" yaml:"unsettled_funds"`
}

// ThresholdBalance is the balance compared against the regulatory minimum.
func (a AccountSnapshot) ThresholdBalance(afterHours bool) float64 {
	if afterHours && a.ExtendedHoursEquity > 0 {
		return a.ExtendedHoursEquity
	}

	return a.Equity
}

// BrokerPosition is a position already held at the broker, used for startup reconciliation.
type BrokerPosition struct {
	Symbol       string  `json:"symbol" yaml:"symbol"`
	Quantity     float64 `json:"quantity" yaml:"quantity"`
	AveragePrice float64 `json:"average_price" yaml:"average_price"`
}
