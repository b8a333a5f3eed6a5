// Package deal contains deal management use cases.
package deal

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
)

// validateDealFields checks every writable deal field against the domain
// rules. Percent fields are bounded to [0,100]; the lead source must be one
// of the configured values.
func validateDealFields(
	houseAddress string,
	amountSoldFor decimal.Decimal,
	commissionPercent decimal.Decimal,
	splitPercent decimal.Decimal,
	teamBrokerageSplitPercent decimal.Decimal,
	leadSource string,
	closingDate time.Time,
	allowedLeadSources []string,
) error {
	if houseAddress == "" {
		return domainerror.NewDealError(
			domainerror.ErrCodeMissingHouseAddress,
			"houseAddress is required",
			domainerror.ErrMissingHouseAddress,
		)
	}
	if amountSoldFor.IsNegative() {
		return domainerror.NewDealError(
			domainerror.ErrCodeInvalidDealAmount,
			"amountSoldFor must not be negative",
			domainerror.ErrInvalidDealAmount,
		)
	}
	if !percentInRange(commissionPercent) {
		return domainerror.NewDealError(
			domainerror.ErrCodeInvalidCommissionPercent,
			"commissionPercent must be between 0 and 100",
			domainerror.ErrInvalidCommissionPercent,
		)
	}
	if !percentInRange(splitPercent) {
		return domainerror.NewDealError(
			domainerror.ErrCodeInvalidSplitPercent,
			"splitPercent must be between 0 and 100",
			domainerror.ErrInvalidSplitPercent,
		)
	}
	if !percentInRange(teamBrokerageSplitPercent) {
		return domainerror.NewDealError(
			domainerror.ErrCodeInvalidTeamSplitPercent,
			"teamBrokerageSplitPercent must be between 0 and 100",
			domainerror.ErrInvalidTeamSplitPercent,
		)
	}
	if leadSource == "" || !slices.Contains(allowedLeadSources, leadSource) {
		return domainerror.NewDealError(
			domainerror.ErrCodeInvalidLeadSource,
			"leadSource is not a configured value",
			domainerror.ErrInvalidLeadSource,
		)
	}
	if closingDate.IsZero() {
		return domainerror.NewDealError(
			domainerror.ErrCodeInvalidClosingDate,
			"closingDate is required",
			domainerror.ErrInvalidClosingDate,
		)
	}
	return nil
}

func percentInRange(value decimal.Decimal) bool {
	hundred := decimal.NewFromInt(100)
	return !value.IsNegative() && value.LessThanOrEqual(hundred)
}
