package pricing

import (
	"github.com/shopspring/decimal"

	"nft_portal/internal/domain/entity"
	"nft_portal/internal/domain/value"
)

const weiDecimals = 18

// MapToItem собирает карточку предмета из выигравшего ордера и курсов.
// best == nil означает "лотов нет": метаданные берут дефолты, цены — нули.
// Функция чистая: без I/O, детерминирована на одних и тех же входах.
func MapToItem(best *BestOrder, productCode string, ethUsd, usdBrl decimal.Decimal) entity.Item {
	var props value.ItemProperties
	if best != nil {
		props = best.Order.Sell.Data.Properties
	}

	priceETH := decimal.Zero
	if best != nil {
		priceETH = best.PriceWei.Shift(-weiDecimals).Truncate(weiDecimals)
	}

	// Round у shopspring — half away from zero, то есть round-half-up
	// для неотрицательных сумм.
	priceUSD := priceETH.Mul(ethUsd).Round(2)
	priceBRL := priceUSD.Mul(usdBrl).Round(2)

	return entity.Item{
		ProductCode: productCode,
		Name:        props.String("name", productCode),
		Type:        props.String("type", "unknown"),
		Blueprint:   props.String("blueprint", ""),
		ImageURL:    props.String("image_url", ""),
		Source:      Source,

		IsCraftedItem:   props.Bool("isCraftedItem"),
		IsCraftMaterial: props.Bool("isCraftMaterial"),
		Rarity:          props.String("rarity", ""),
		ItemType:        props.String("itemType", ""),
		ItemSubType:     props.String("itemSubType", ""),
		Number:          props.Int("number"),
		ProductType:     props.String("productType", ""),
		Material:        props.String("material", ""),

		LastPriceETH: priceETH,
		LastPriceUSD: priceUSD,
		LastPriceBRL: priceBRL,
	}
}
