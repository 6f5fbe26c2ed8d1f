package queue

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/bidmart-admin/internal/config"
	"github.com/bidmart-admin/internal/constants"

	"github.com/hibiken/asynq"
)

// DefaultQueue 默认队列名称
const DefaultQueue = constants.QueueDefault

const (
	defaultConcurrency = 10
	statusTaskMaxRetry = 3
)

// Client 投递拍卖状态刷新任务；inner 为 nil 表示队列未启用
type Client struct {
	inner *asynq.Client
	queue string
}

// NewClient 创建队列客户端，未启用时所有投递静默跳过
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	c := &Client{queue: DefaultQueue}
	if cfg != nil && cfg.Enabled {
		c.inner = asynq.NewClient(redisOpt(cfg))
	}
	return c, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

// EnqueueAuctionStatusRefresh 在 at 时刻刷新拍卖状态缓存；同一拍卖同一时刻只保留一个任务
func (c *Client) EnqueueAuctionStatusRefresh(auctionID uint, at time.Time) error {
	if !c.Enabled() || auctionID == 0 {
		return nil
	}
	payload := AuctionStatusRefreshPayload{AuctionID: auctionID, DueAt: at.Unix()}
	task, err := NewAuctionStatusRefreshTask(payload)
	if err != nil {
		return err
	}
	opts := []asynq.Option{
		asynq.Queue(c.queue),
		asynq.TaskID(auctionStatusTaskID(payload)),
		asynq.MaxRetry(statusTaskMaxRetry),
	}
	if at.After(time.Now()) {
		opts = append(opts, asynq.ProcessAt(at))
	}
	_, err = c.inner.Enqueue(task, opts...)
	switch {
	case errors.Is(err, asynq.ErrTaskIDConflict), errors.Is(err, asynq.ErrDuplicateTask):
		return nil
	default:
		return err
	}
}

// BuildServerConfig 生成 worker 端的 Redis 连接与并发配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	server := asynq.Config{
		Concurrency: defaultConcurrency,
		Queues:      map[string]int{DefaultQueue: 1},
	}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			server.Concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			server.Queues = cfg.Queues
		}
	}
	return redisOpt(cfg), server
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host, port := "127.0.0.1", 6379
	if cfg == nil {
		return asynq.RedisClientOpt{Addr: net.JoinHostPort(host, strconv.Itoa(port))}
	}
	if h := strings.TrimSpace(cfg.Host); h != "" {
		host = h
	}
	if cfg.Port > 0 {
		port = cfg.Port
	}
	return asynq.RedisClientOpt{
		Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
