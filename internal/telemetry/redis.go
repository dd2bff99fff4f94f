package telemetry

import (
	"context"
	"fmt"
	"net"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// MonitorRedis instruments r with OpenTelemetry tracing and metrics and logs
// every command at debug level.
func MonitorRedis(r redis.UniversalClient, log *zap.Logger) error {
	if err := redisotel.InstrumentTracing(r); err != nil {
		return fmt.Errorf("instrument tracing: %w", err)
	}
	if err := redisotel.InstrumentMetrics(r); err != nil {
		return fmt.Errorf("instrument metrics: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	r.AddHook(redisLog{log: log})
	return nil
}

type redisLog struct {
	log *zap.Logger
}

func (h redisLog) DialHook(hook redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		h.log.Debug("redis: dialing", zap.String("network", network), zap.String("addr", addr))
		conn, err := hook(ctx, network, addr)
		h.log.Debug("redis: finished dialing", zap.String("addr", addr), zap.Error(err))
		return conn, err
	}
}

func (h redisLog) ProcessHook(hook redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := hook(ctx, cmd)
		h.log.Debug("redis: processed", zap.String("cmd", cmd.Name()), zap.Error(err))
		return err
	}
}

func (h redisLog) ProcessPipelineHook(hook redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := hook(ctx, cmds)
		h.log.Debug("redis: pipeline processed", zap.Int("cmds", len(cmds)), zap.Error(err))
		return err
	}
}
