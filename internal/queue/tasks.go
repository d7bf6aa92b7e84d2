package queue

import (
	"encoding/json"

	"github.com/gamevault-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskTopSellersBuild 热销榜重建任务
	TaskTopSellersBuild = constants.TaskTopSellersBuild
)

// TopSellersBuildPayload 热销榜重建任务载荷
type TopSellersBuildPayload struct {
	Reason string `json:"reason"`
	UserID uint   `json:"user_id"`
}

// NewTopSellersBuildTask 构造热销榜重建任务
func NewTopSellersBuildTask(payload TopSellersBuildPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTopSellersBuild, data), nil
}
