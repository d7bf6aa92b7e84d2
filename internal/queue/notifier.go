package queue

import (
	"context"
	"time"

	"github.com/gamevault-next/internal/cache"
	"github.com/gamevault-next/internal/constants"
	"github.com/gamevault-next/internal/logger"
)

// TopSellersNotifier 结算成功后触发热销榜刷新
//
// 队列可用时推异步重建任务；不可用时退化为直接删缓存，
// 下一次读取会现算并回填。
type TopSellersNotifier struct {
	client *Client
}

// NewTopSellersNotifier 创建热销榜刷新通知器
func NewTopSellersNotifier(client *Client) *TopSellersNotifier {
	return &TopSellersNotifier{client: client}
}

// NotifySalesChanged 销量发生变化
func (n *TopSellersNotifier) NotifySalesChanged() {
	if n == nil {
		return
	}
	if n.client.Enabled() {
		if err := n.client.EnqueueTopSellersBuild(TopSellersBuildPayload{Reason: "sales_changed"}); err != nil {
			logger.Warnw("top_sellers_build_enqueue_failed", "error", err)
		}
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cache.Del(ctx, constants.CacheKeyTopSellers); err != nil {
		logger.Warnw("top_sellers_cache_invalidate_failed", "error", err)
	}
}
