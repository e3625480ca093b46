// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// Item Карточка NFT-предмета
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
	Number          *int   `json:"number"`
	ProductType     string `json:"product_type"`
	Material        string `json:"material"`

	// Цены в строковом виде с фиксированной точностью:
	// ETH — 18 знаков, USD/BRL — 2 знака.
	LastPriceETH string `json:"last_price_eth"`
	LastPriceUSD string `json:"last_price_usd"`
	LastPriceBRL string `json:"last_price_brl"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type UpsertItemRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
}

type UpsertItemResponse struct {
	Item

	// Created true, если запись была создана этим запросом, false — обновлена.
	Created bool `json:"created"`
}

type ItemList struct {
	Results []Item `json:"results"`
	Total   int    `json:"total"`
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
}

type RecordAccessRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
}

type RecordAccessResponse struct {
	OK bool `json:"ok"`
}

type TrendingResponse struct {
	Results []Item `json:"results"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
