package entity

import "time"

// ItemAccess — факт просмотра карточки. Вместо сырых IP и User-Agent
// храним только их SHA-256 хэши.
type ItemAccess struct {
	ID            int64     `json:"id"`
	ItemID        int64     `json:"item_id"`
	IPHash        string    `json:"ip_hash"`
	UserAgentHash string    `json:"user_agent_hash"`
	AccessedAt    time.Time `json:"accessed_at"`
}
