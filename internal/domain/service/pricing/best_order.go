package pricing

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"nft_portal/internal/domain/entity"
)

// Целые числа больше 2^53 во float64 уже неточны.
const maxExactFloat = float64(1 << 53)

// BestOrder — выбранный ордер с его эффективной ценой в Wei.
type BestOrder struct {
	Order    entity.Order
	PriceWei decimal.Decimal
}

// SelectBestOrder выбирает ордер с минимальной эффективной ценой.
// Эффективная цена — buy.data.quantity_with_fees, при его отсутствии
// buy.data.quantity; ордер без пригодного значения не участвует.
// При равенстве цен побеждает тот, что встретился раньше.
func SelectBestOrder(orders []entity.Order) *BestOrder {
	var best *BestOrder

	for i := range orders {
		raw := orders[i].Buy.Data.QuantityWithFees
		if isAbsent(raw) {
			raw = orders[i].Buy.Data.Quantity
		}

		priceWei, ok := parseWei(raw)
		if !ok {
			continue
		}

		if best == nil || priceWei.LessThan(best.PriceWei) {
			best = &BestOrder{
				Order:    orders[i],
				PriceWei: priceWei,
			}
		}
	}

	return best
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}

	s, ok := v.(string)

	return ok && s == ""
}

// parseWei приводит значение количества к неотрицательному целому в Wei.
// Маркетплейс присылает количества то строкой, то числом.
func parseWei(v any) (decimal.Decimal, bool) {
	var (
		d   decimal.Decimal
		err error
	)

	switch value := v.(type) {
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(value))
	case json.Number:
		d, err = decimal.NewFromString(value.String())
	case float64:
		// Клиент стакана декодирует числа в json.Number; float64 сюда
		// попадает только из других источников и принимается лишь в
		// диапазоне, где он точен.
		if value != math.Trunc(value) || math.Abs(value) >= maxExactFloat {
			return decimal.Decimal{}, false
		}
		d = decimal.NewFromFloat(value)
	default:
		return decimal.Decimal{}, false
	}

	if err != nil || d.IsNegative() || !d.IsInteger() {
		return decimal.Decimal{}, false
	}

	return d, true
}
