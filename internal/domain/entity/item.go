package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item — карточка NFT-предмета, единственная персистентная сущность.
// Ключ уникальности — ProductCode.
type Item struct {
	ID          int64  `json:"id"`
	ProductCode string `json:"product_code"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Blueprint   string `json:"blueprint"`
	ImageURL    string `json:"image_url"`
	Source      string `json:"source"`

	IsCraftedItem   bool   `json:"is_crafted_item"`
	IsCraftMaterial bool   `json:"is_craft_material"`
	Rarity          string `json:"rarity"`
	ItemType        string `json:"item_type"`
	ItemSubType     string `json:"item_sub_type"`
	Number          *int   `json:"number,omitempty"`
	ProductType     string `json:"product_type"`
	Material        string `json:"material"`

	LastPriceETH decimal.Decimal `json:"last_price_eth"`
	LastPriceUSD decimal.Decimal `json:"last_price_usd"`
	LastPriceBRL decimal.Decimal `json:"last_price_brl"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
