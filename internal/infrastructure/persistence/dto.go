package persistence

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"nft_portal/internal/domain/entity"
)

// itemSchema — представление таблицы nft_items в БД.
type itemSchema struct {
	ID              int64           `db:"id"`
	ProductCode     string          `db:"product_code"`
	Name            string          `db:"name"`
	Type            string          `db:"type"`
	Blueprint       string          `db:"blueprint"`
	ImageURL        string          `db:"image_url"`
	Source          string          `db:"source"`
	IsCraftedItem   bool            `db:"is_crafted_item"`
	IsCraftMaterial bool            `db:"is_craft_material"`
	Rarity          string          `db:"rarity"`
	ItemType        string          `db:"item_type"`
	ItemSubType     string          `db:"item_sub_type"`
	Number          sql.NullInt64   `db:"number"`
	ProductType     string          `db:"product_type"`
	Material        string          `db:"material"`
	LastPriceETH    decimal.Decimal `db:"last_price_eth"`
	LastPriceUSD    decimal.Decimal `db:"last_price_usd"`
	LastPriceBRL    decimal.Decimal `db:"last_price_brl"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func fromItem(e *entity.Item) *itemSchema {
	s := &itemSchema{
		ID:              e.ID,
		ProductCode:     e.ProductCode,
		Name:            e.Name,
		Type:            e.Type,
		Blueprint:       e.Blueprint,
		ImageURL:        e.ImageURL,
		Source:          e.Source,
		IsCraftedItem:   e.IsCraftedItem,
		IsCraftMaterial: e.IsCraftMaterial,
		Rarity:          e.Rarity,
		ItemType:        e.ItemType,
		ItemSubType:     e.ItemSubType,
		ProductType:     e.ProductType,
		Material:        e.Material,
		LastPriceETH:    e.LastPriceETH,
		LastPriceUSD:    e.LastPriceUSD,
		LastPriceBRL:    e.LastPriceBRL,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}

	if e.Number != nil {
		s.Number = sql.NullInt64{Int64: int64(*e.Number), Valid: true}
	}

	return s
}

func (s *itemSchema) toDomain() *entity.Item {
	item := &entity.Item{
		ID:              s.ID,
		ProductCode:     s.ProductCode,
		Name:            s.Name,
		Type:            s.Type,
		Blueprint:       s.Blueprint,
		ImageURL:        s.ImageURL,
		Source:          s.Source,
		IsCraftedItem:   s.IsCraftedItem,
		IsCraftMaterial: s.IsCraftMaterial,
		Rarity:          s.Rarity,
		ItemType:        s.ItemType,
		ItemSubType:     s.ItemSubType,
		ProductType:     s.ProductType,
		Material:        s.Material,
		LastPriceETH:    s.LastPriceETH,
		LastPriceUSD:    s.LastPriceUSD,
		LastPriceBRL:    s.LastPriceBRL,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}

	if s.Number.Valid {
		n := int(s.Number.Int64)
		item.Number = &n
	}

	return item
}

// accessSchema — представление таблицы nft_item_accesses.
type accessSchema struct {
	ID            int64     `db:"id"`
	ItemID        int64     `db:"item_id"`
	IPHash        string    `db:"ip_hash"`
	UserAgentHash string    `db:"user_agent_hash"`
	AccessedAt    time.Time `db:"accessed_at"`
}

func (s *accessSchema) toDomain() *entity.ItemAccess {
	return &entity.ItemAccess{
		ID:            s.ID,
		ItemID:        s.ItemID,
		IPHash:        s.IPHash,
		UserAgentHash: s.UserAgentHash,
		AccessedAt:    s.AccessedAt,
	}
}
