package worker

import (
	"context"
	"encoding/json"

	"github.com/gamevault-next/internal/logger"
	"github.com/gamevault-next/internal/provider"
	"github.com/gamevault-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskTopSellersBuild, c.handleTopSellersBuild)
}

func (c *Consumer) handleTopSellersBuild(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_top_sellers_build_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.TopSellersBuildPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_top_sellers_build_unmarshal_failed", "error", err)
		return err
	}
	if c.GameService == nil {
		logger.Warnw("worker_top_sellers_build_skip_service_nil")
		return nil
	}
	entries, err := c.GameService.RebuildTopSellers(ctx)
	if err != nil {
		logger.Warnw("worker_top_sellers_build_failed", "reason", payload.Reason, "error", err)
		return err
	}
	logger.Debugw("worker_top_sellers_build_done", "reason", payload.Reason, "entries", len(entries))
	return nil
}
