package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"nft_portal/internal/domain"
	"nft_portal/internal/domain/entity"
	"nft_portal/pkg/errcodes"
)

const itemColumns = `
	id, product_code, name, type, blueprint, image_url, source,
	is_crafted_item, is_craft_material, rarity, item_type, item_sub_type,
	number, product_type, material,
	last_price_eth, last_price_usd, last_price_brl,
	created_at, updated_at`

type ItemRepository struct {
	db *sqlx.DB
}

// NewItemRepository создаёт новый экземпляр репозитория.
func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// withTx выполняет функцию в транзакции.
func (r *ItemRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// Upsert вставляет карточку предмета или обновляет существующую по
// product_code. Повторный вызов с тем же кодом перезаписывает цены и
// метаданные, created_at не трогает. Второе возвращаемое значение —
// true, если строка была создана, false при обновлении.
func (r *ItemRepository) Upsert(ctx context.Context, item *entity.Item) (*entity.Item, bool, error) {
	query := `
		INSERT INTO nft_items (
			product_code, name, type, blueprint, image_url, source,
			is_crafted_item, is_craft_material, rarity, item_type, item_sub_type,
			number, product_type, material,
			last_price_eth, last_price_usd, last_price_brl,
			created_at, updated_at
		) VALUES (
			:product_code, :name, :type, :blueprint, :image_url, :source,
			:is_crafted_item, :is_craft_material, :rarity, :item_type, :item_sub_type,
			:number, :product_type, :material,
			:last_price_eth, :last_price_usd, :last_price_brl,
			now(), now()
		)
		ON CONFLICT (product_code) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			blueprint = EXCLUDED.blueprint,
			image_url = EXCLUDED.image_url,
			source = EXCLUDED.source,
			is_crafted_item = EXCLUDED.is_crafted_item,
			is_craft_material = EXCLUDED.is_craft_material,
			rarity = EXCLUDED.rarity,
			item_type = EXCLUDED.item_type,
			item_sub_type = EXCLUDED.item_sub_type,
			number = EXCLUDED.number,
			product_type = EXCLUDED.product_type,
			material = EXCLUDED.material,
			last_price_eth = EXCLUDED.last_price_eth,
			last_price_usd = EXCLUDED.last_price_usd,
			last_price_brl = EXCLUDED.last_price_brl,
			updated_at = now()
		RETURNING` + itemColumns + `, (xmax = 0) AS created`

	// xmax = 0 у только что вставленной строки; у обновлённой там id
	// транзакции — так отличаем insert от update одним запросом.
	var row struct {
		itemSchema
		Created bool `db:"created"`
	}

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		rows, err := sqlx.NamedQueryContext(ctx, tx, query, fromItem(item))
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to upsert item")
		}
		defer rows.Close()

		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return domain.WrapError(err, errcodes.InternalServerError, "failed to upsert item")
			}
			return domain.NewError(errcodes.InternalServerError, "upsert returned no row")
		}

		if err := rows.StructScan(&row); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to scan upserted item")
		}

		return rows.Close()
	})
	if err != nil {
		return nil, false, err
	}

	return row.toDomain(), row.Created, nil
}

// GetByProductCode возвращает карточку предмета по её коду.
func (r *ItemRepository) GetByProductCode(ctx context.Context, productCode string) (*entity.Item, error) {
	query := `SELECT` + itemColumns + ` FROM nft_items WHERE product_code = $1`

	var schema itemSchema
	if err := r.db.GetContext(ctx, &schema, query, productCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.ItemNotFound, "item not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get item")
	}

	return schema.toDomain(), nil
}

// ListFilter — параметры выборки каталога. Строковые фильтры матчатся
// без учёта регистра, nil-указатели означают "фильтр не задан".
type ListFilter struct {
	Rarity          string
	ItemType        string
	ItemSubType     string
	Material        string
	Source          string
	IsCraftedItem   *bool
	IsCraftMaterial *bool
	MinPriceBRL     *decimal.Decimal
	MaxPriceBRL     *decimal.Decimal
	Search          string
	Ordering        string
	Limit           int
	Offset          int
}

// Поля, по которым разрешена сортировка каталога. Всё остальное
// молча заменяется дефолтом, чтобы не подставлять ввод в ORDER BY.
var orderableColumns = map[string]string{ //nolint:gochecknoglobals
	"name":           "name",
	"rarity":         "rarity",
	"item_type":      "item_type",
	"item_sub_type":  "item_sub_type",
	"number":         "number",
	"last_price_eth": "last_price_eth",
	"last_price_usd": "last_price_usd",
	"last_price_brl": "last_price_brl",
	"created_at":     "created_at",
	"updated_at":     "updated_at",
}

// List возвращает страницу каталога и полное число строк под фильтром.
func (r *ItemRepository) List(ctx context.Context, filter ListFilter) ([]*entity.Item, int64, error) {
	where, args := buildItemFilter(filter)

	countQuery := `SELECT count(*) FROM nft_items` + where

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, domain.WrapError(err, errcodes.InternalServerError, "failed to count items")
	}

	query := `SELECT` + itemColumns + ` FROM nft_items` + where +
		` ORDER BY ` + orderClause(filter.Ordering) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	var schemas []itemSchema
	if err := r.db.SelectContext(ctx, &schemas, query, args...); err != nil {
		return nil, 0, domain.WrapError(err, errcodes.InternalServerError, "failed to list items")
	}

	items := make([]*entity.Item, 0, len(schemas))
	for i := range schemas {
		items = append(items, schemas[i].toDomain())
	}

	return items, total, nil
}

// ListProductCodes возвращает коды всех известных предметов. Используется
// ночным обновлением цен для полного обхода каталога.
func (r *ItemRepository) ListProductCodes(ctx context.Context) ([]string, error) {
	query := `SELECT product_code FROM nft_items WHERE product_code <> '' ORDER BY product_code`

	var codes []string
	if err := r.db.SelectContext(ctx, &codes, query); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list product codes")
	}

	return codes, nil
}

func buildItemFilter(filter ListFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.Rarity != "" {
		add("lower(rarity) = lower($%d)", filter.Rarity)
	}
	if filter.ItemType != "" {
		add("lower(item_type) = lower($%d)", filter.ItemType)
	}
	if filter.ItemSubType != "" {
		add("lower(item_sub_type) = lower($%d)", filter.ItemSubType)
	}
	if filter.Material != "" {
		add("lower(material) = lower($%d)", filter.Material)
	}
	if filter.Source != "" {
		add("lower(source) = lower($%d)", filter.Source)
	}
	if filter.IsCraftedItem != nil {
		add("is_crafted_item = $%d", *filter.IsCraftedItem)
	}
	if filter.IsCraftMaterial != nil {
		add("is_craft_material = $%d", *filter.IsCraftMaterial)
	}
	if filter.MinPriceBRL != nil {
		add("last_price_brl >= $%d", *filter.MinPriceBRL)
	}
	if filter.MaxPriceBRL != nil {
		add("last_price_brl <= $%d", *filter.MaxPriceBRL)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf(
			"(name ILIKE $%d OR product_code ILIKE $%d)", len(args), len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func orderClause(ordering string) string {
	direction := " ASC"
	if strings.HasPrefix(ordering, "-") {
		direction = " DESC"
		ordering = ordering[1:]
	}

	column, ok := orderableColumns[ordering]
	if !ok {
		return "name ASC"
	}

	return column + direction
}
