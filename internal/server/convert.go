package server

import (
	"time"

	"nft_portal/internal/domain/entity"
	"nft_portal/pkg/rest"
)

const (
	ethScale  = 18
	fiatScale = 2
)

func newRESTItem(item *entity.Item) rest.Item {
	return rest.Item{
		ID:          item.ID,
		ProductCode: item.ProductCode,
		Name:        item.Name,
		Type:        item.Type,
		Blueprint:   item.Blueprint,
		ImageURL:    item.ImageURL,
		Source:      item.Source,

		IsCraftedItem:   item.IsCraftedItem,
		IsCraftMaterial: item.IsCraftMaterial,
		Rarity:          item.Rarity,
		ItemType:        item.ItemType,
		ItemSubType:     item.ItemSubType,
		Number:          item.Number,
		ProductType:     item.ProductType,
		Material:        item.Material,

		LastPriceETH: item.LastPriceETH.StringFixed(ethScale),
		LastPriceUSD: item.LastPriceUSD.StringFixed(fiatScale),
		LastPriceBRL: item.LastPriceBRL.StringFixed(fiatScale),

		CreatedAt: item.CreatedAt.Format(time.RFC3339),
		UpdatedAt: item.UpdatedAt.Format(time.RFC3339),
	}
}
