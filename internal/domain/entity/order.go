package entity

import "nft_portal/internal/domain/value"

// Order — активный ордер внешнего маркетплейса. Сущность read-only:
// мы её никогда не изменяем и не сохраняем.
type Order struct {
	OrderID int64     `json:"order_id"`
	Status  string    `json:"status"`
	Buy     OrderSide `json:"buy"`
	Sell    OrderSide `json:"sell"`
}

type OrderSide struct {
	Type string        `json:"type"`
	Data OrderSideData `json:"data"`
}

type OrderSideData struct {
	// Количества приходят то строкой, то числом — парсим позже.
	Quantity         any `json:"quantity,omitempty"`
	QuantityWithFees any `json:"quantity_with_fees,omitempty"`

	Properties value.ItemProperties `json:"properties,omitempty"`
}
