package persistence

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"nft_portal/internal/domain"
	"nft_portal/internal/domain/entity"
	"nft_portal/pkg/errcodes"
)

type AccessRepository struct {
	db *sqlx.DB
}

// NewAccessRepository создаёт новый экземпляр репозитория.
func NewAccessRepository(db *sqlx.DB) *AccessRepository {
	return &AccessRepository{db: db}
}

// Create фиксирует факт просмотра карточки. IP и User-Agent приходят
// уже захешированными, сырые значения в БД не попадают.
func (r *AccessRepository) Create(ctx context.Context, access *entity.ItemAccess) error {
	query := `
		INSERT INTO nft_item_accesses (item_id, ip_hash, user_agent_hash, accessed_at)
		VALUES (:item_id, :ip_hash, :user_agent_hash, now())
		RETURNING id, accessed_at`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]any{
		"item_id":         access.ItemID,
		"ip_hash":         access.IPHash,
		"user_agent_hash": access.UserAgentHash,
	})
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to record access")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to record access")
		}
		return domain.NewError(errcodes.InternalServerError, "access insert returned no row")
	}

	if err := rows.Scan(&access.ID, &access.AccessedAt); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to scan access row")
	}

	return nil
}

// Trending возвращает предметы, к которым обращались после since:
// сперва по свежести последнего просмотра, затем по числу просмотров.
// Обе агрегации считаются только внутри окна, иначе старые просмотры
// за пределами retention-окна искажали бы tie-break.
func (r *AccessRepository) Trending(ctx context.Context, since time.Time, limit int) ([]*entity.Item, error) {
	query := `
		SELECT` + itemColumns + `
		FROM nft_items
		WHERE id IN (SELECT DISTINCT item_id FROM nft_item_accesses WHERE accessed_at >= $1)
		ORDER BY
			(SELECT max(a.accessed_at) FROM nft_item_accesses a
				WHERE a.item_id = nft_items.id AND a.accessed_at >= $1) DESC,
			(SELECT count(*) FROM nft_item_accesses a
				WHERE a.item_id = nft_items.id AND a.accessed_at >= $1) DESC
		LIMIT $2`

	var schemas []itemSchema
	if err := r.db.SelectContext(ctx, &schemas, query, since, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get trending items")
	}

	items := make([]*entity.Item, 0, len(schemas))
	for i := range schemas {
		items = append(items, schemas[i].toDomain())
	}

	return items, nil
}

// DeleteOlderThan удаляет записи просмотров старше cutoff. Возвращает
// число удалённых строк для лога фоновой чистки.
func (r *AccessRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM nft_item_accesses WHERE accessed_at < $1`, cutoff)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to delete old accesses")
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
	}

	return deleted, nil
}
