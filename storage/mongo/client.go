package mongo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"NodeDashboard/config"
	"NodeDashboard/pkg/logger"
)

// 任务提交、推荐、空投位于任务集群，水龙头注册位于另一个集群
var (
	taskClient   *mongo.Client
	faucetClient *mongo.Client
	once         sync.Once
	initErr      error
)

func Init() error {
	once.Do(func() {
		cfg := config.Cfg

		taskClient, initErr = connect(cfg.MongoTaskURI, cfg.ServiceName)
		if initErr != nil {
			initErr = fmt.Errorf("task cluster: %w", initErr)
			return
		}

		// 两个 URI 相同时复用同一连接
		if cfg.MongoFaucetURI == cfg.MongoTaskURI {
			faucetClient = taskClient
		} else {
			faucetClient, initErr = connect(cfg.MongoFaucetURI, cfg.ServiceName)
			if initErr != nil {
				initErr = fmt.Errorf("faucet cluster: %w", initErr)
				return
			}
		}

		logger.Logger.Info("MongoDB clients initialized successfully",
			zap.Bool("shared_cluster", faucetClient == taskClient),
		)
	})

	return initErr
}

func connect(uri, serviceName string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetAppName(serviceName).
		SetReadPreference(readpref.SecondaryPreferred()).
		SetServerSelectionTimeout(5 * time.Second).
		SetMonitor(NewCommandMonitor(serviceName))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.SecondaryPreferred()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

// TaskDatabase 任务集群上的指定库
func TaskDatabase(name string) *mongo.Database {
	if taskClient == nil {
		panic("MongoDB task client not init")
	}
	return taskClient.Database(name)
}

// FaucetDatabase 水龙头集群上的指定库
func FaucetDatabase(name string) *mongo.Database {
	if faucetClient == nil {
		panic("MongoDB faucet client not init")
	}
	return faucetClient.Database(name)
}

func Close(ctx context.Context) error {
	var firstErr error

	if faucetClient != nil && faucetClient != taskClient {
		if err := faucetClient.Disconnect(ctx); err != nil {
			firstErr = err
		}
	}
	if taskClient != nil {
		if err := taskClient.Disconnect(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
