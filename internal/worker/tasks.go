package worker

import (
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	// TypeRefreshOne обновляет цену одного предмета по product_code.
	TypeRefreshOne = "nft:refresh_one"
	// TypeRefreshAll раскладывает обновление всего каталога на задачи
	// TypeRefreshOne с рассрочкой по времени.
	TypeRefreshAll = "nft:refresh_all"
	// TypeCleanupAccess удаляет устаревшие записи просмотров.
	TypeCleanupAccess = "nft:cleanup_access"
)

type RefreshOnePayload struct {
	ProductCode string `json:"product_code"`
}

func NewRefreshOneTask(productCode string) (*asynq.Task, error) {
	payload, err := json.Marshal(RefreshOnePayload{ProductCode: productCode})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(TypeRefreshOne, payload), nil
}

func NewRefreshAllTask() *asynq.Task {
	return asynq.NewTask(TypeRefreshAll, nil)
}

func NewCleanupAccessTask() *asynq.Task {
	return asynq.NewTask(TypeCleanupAccess, nil)
}
