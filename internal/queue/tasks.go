package queue

import (
	"encoding/json"
	"fmt"

	"github.com/rfrnce/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskProductEnrich 商品补全任务
	TaskProductEnrich = constants.TaskProductEnrich
)

// ProductEnrichPayload 商品补全任务载荷
type ProductEnrichPayload struct {
	ProductID uint   `json:"product_id"`
	URL       string `json:"url"`
}

// NewProductEnrichTask 创建商品补全任务
func NewProductEnrichTask(payload ProductEnrichPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProductEnrich, body), nil
}

// ParseProductEnrichPayload 解析商品补全任务载荷
func ParseProductEnrichPayload(task *asynq.Task) (ProductEnrichPayload, error) {
	var payload ProductEnrichPayload
	if task == nil {
		return payload, fmt.Errorf("nil task")
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	return payload, nil
}
