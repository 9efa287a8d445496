/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/piyushvishwakarma01/GearGuard/internal/api"
	"github.com/piyushvishwakarma01/GearGuard/internal/config"
	"github.com/piyushvishwakarma01/GearGuard/internal/container"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the GearGuard API server.
The server will listen on the configured host and port,
and provide REST API interfaces for maintenance management.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// 2. 初始化日志
		logger, err := api.NewLoggerFromConfig(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		// 3. 初始化链路追踪
		if cfg.Tracing.Enabled {
			if err := api.InitTracing("gearguard", cfg.Tracing.JaegerEndpoint); err != nil {
				return fmt.Errorf("failed to initialize tracing: %w", err)
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = api.ShutdownTracing(shutdownCtx)
			}()
		}

		// 4. 初始化容器
		ctr, err := container.NewContainer(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		// 5. 启动 WebSocket Hub 与过期扫描器
		go ctr.Hub().Run()

		sweeperCtx, stopSweeper := context.WithCancel(context.Background())
		defer stopSweeper()
		if cfg.Sweeper.Enabled {
			if err := ctr.OverdueSweeper().Start(sweeperCtx); err != nil {
				return fmt.Errorf("failed to start overdue sweeper: %w", err)
			}
			defer ctr.OverdueSweeper().Stop()
		}

		// 6. 监听配置文件变更
		if configPath != "" {
			watcher := config.NewWatcher(cfg, configPath)
			watcher.OnChange(func(updated *config.Config) {
				if level, err := logrus.ParseLevel(updated.Log.Level); err == nil {
					api.SetLoggerLevel(level)
				}
				logger.WithField("log_level", updated.Log.Level).Info("configuration reloaded")
			})
			if err := watcher.Start(); err != nil {
				logger.WithError(err).Warn("failed to start config watcher")
			} else {
				defer watcher.Stop()
			}
		}

		// 7. 设置路由
		router := api.SetupRoutes(&api.RouterDeps{
			Config:            cfg,
			DB:                ctr.DB(),
			Hub:               ctr.Hub(),
			TokenValidator:    ctr.TokenValidator(),
			RequestService:    ctr.RequestService(),
			TeamService:       ctr.TeamService(),
			EquipmentService:  ctr.EquipmentService(),
			StatisticsService: ctr.StatisticsService(),
		})

		// 自定义 NoRoute 处理器,返回 JSON 格式的 404
		router.NoRoute(func(c *gin.Context) {
			api.Error(c, http.StatusNotFound, "route not found", "the requested route does not exist")
		})

		// 8. 启动服务器
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		// 启动服务器（在 goroutine 中）
		go func() {
			logger.WithField("addr", addr).Info("server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Fatal("failed to start server")
			}
		}()

		// 等待中断信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down server...")

		// 优雅关闭
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Fatal("server forced to shutdown")
		}

		logger.Info("server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// 服务器配置标志
	serverCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
	serverCmd.Flags().String("host", "0.0.0.0", "Server host")
	serverCmd.Flags().Int("port", 8080, "Server port")
}

// LoadConfig 加载配置
func LoadConfig(configPath string) (*config.Config, error) {
	return config.Load(configPath)
}
