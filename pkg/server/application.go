package server

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	kratoslog "github.com/go-kratos/kratos/v2/log"

	"gomart-social/pkg/config"
	"gomart-social/pkg/database"
	"gomart-social/pkg/kafka"
	"gomart-social/pkg/lifecycle"
	"gomart-social/pkg/logger"
	"gomart-social/pkg/middleware"
	"gomart-social/pkg/telemetry"
)

// Application 应用程序框架
type Application struct {
	serviceName   string
	config        *config.Config
	logger        kratoslog.Logger
	appLogger     logger.Logger
	serverManager *ServerManager
	lifecycle     *lifecycle.LifecycleManager

	// 基础设施组件
	postgreSQL    *database.PostgreSQL
	kafkaProducer *kafka.Producer
	telemetry     *telemetry.Provider

	// 中间件
	loggingMiddleware *middleware.LoggingMiddleware
	otelMiddleware    *middleware.OTelMiddleware

	// 注册函数
	httpRouteRegister func(*gin.Engine)
}

// NewApplication 创建应用程序
func NewApplication(serviceName string) *Application {
	cfg := config.LoadConfig(serviceName)

	if err := logger.Init(cfg.App.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	appLogger := logger.GetLogger()

	kratosLogger := logger.NewKratosStdLogger(cfg.App.Name, cfg.App.Version)

	app := &Application{
		serviceName:       serviceName,
		config:            cfg,
		logger:            kratosLogger,
		appLogger:         appLogger,
		serverManager:     NewServerManager(cfg, kratosLogger),
		lifecycle:         lifecycle.NewLifecycleManager(kratosLogger),
		loggingMiddleware: middleware.NewLoggingMiddleware(kratosLogger),
		otelMiddleware:    middleware.NewOTelMiddleware(serviceName),
	}

	app.initInfrastructure()

	return app
}

// initInfrastructure 初始化基础设施组件
func (app *Application) initInfrastructure() {
	// 初始化链路追踪
	telemetryCfg := telemetry.DefaultConfig(app.serviceName)
	telemetryCfg.ServiceVersion = app.config.App.Version
	telemetryCfg.Environment = app.config.App.Environment
	provider, err := telemetry.NewProvider(telemetryCfg)
	if err != nil {
		app.logger.Log(kratoslog.LevelFatal, "msg", "Failed to initialize telemetry", "error", err)
		panic(err)
	}
	app.telemetry = provider

	// 初始化PostgreSQL
	postgreSQL, err := database.NewPostgreSQL(app.config.Database.PostgreSQL.DSN, app.config.Database.PostgreSQL.DBName)
	if err != nil {
		app.logger.Log(kratoslog.LevelFatal, "msg", "Failed to connect to PostgreSQL", "error", err)
		panic(err)
	}
	app.postgreSQL = postgreSQL

	// 初始化Kafka
	kafkaProducer, err := kafka.InitProducer(app.config.Kafka.Brokers)
	if err != nil {
		app.logger.Log(kratoslog.LevelFatal, "msg", "Failed to connect to Kafka", "error", err)
		panic(err)
	}
	app.kafkaProducer = kafkaProducer
}

// EnableHTTP 启用HTTP服务器
func (app *Application) EnableHTTP() HTTPServer {
	httpServer := app.serverManager.EnableHTTP()

	httpServer.RegisterRoutes(func(engine *gin.Engine) {
		engine.Use(app.otelMiddleware.GinMiddleware())
		engine.Use(app.loggingMiddleware.GinLogging())
		engine.Use(app.loggingMiddleware.GinRecovery())
	})

	return httpServer
}

// RegisterHTTPRoutes 注册HTTP路由
func (app *Application) RegisterHTTPRoutes(registerFunc func(*gin.Engine)) {
	app.httpRouteRegister = registerFunc
}

// GetPostgreSQL 获取PostgreSQL连接
func (app *Application) GetPostgreSQL() *database.PostgreSQL {
	return app.postgreSQL
}

// GetKafkaProducer 获取Kafka生产者
func (app *Application) GetKafkaProducer() *kafka.Producer {
	return app.kafkaProducer
}

// GetLogger 获取应用日志器
func (app *Application) GetLogger() logger.Logger {
	return app.appLogger
}

// GetConfig 获取配置
func (app *Application) GetConfig() *config.Config {
	return app.config
}

// Run 运行应用程序
func (app *Application) Run() error {
	app.registerLifecycleHooks()

	if err := app.lifecycle.Start(); err != nil {
		return fmt.Errorf("failed to start lifecycle: %w", err)
	}

	app.lifecycle.Wait()

	return nil
}

// registerLifecycleHooks 注册生命周期钩子
func (app *Application) registerLifecycleHooks() {
	if app.httpRouteRegister != nil {
		app.serverManager.RegisterHTTPRoutes(app.httpRouteRegister)
	}

	// 服务器启停钩子
	app.lifecycle.AddHook(lifecycle.Hook{
		Name:     "servers",
		Priority: 100,
		OnStart: func(ctx context.Context) error {
			return app.serverManager.StartAll(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return app.serverManager.StopAll(ctx)
		},
	})

	// 基础设施清理钩子
	app.lifecycle.AddHook(lifecycle.Hook{
		Name:     "infrastructure",
		Priority: 300,
		OnStop: func(ctx context.Context) error {
			if app.kafkaProducer != nil {
				if err := app.kafkaProducer.Close(); err != nil {
					app.logger.Log(kratoslog.LevelError, "msg", "Failed to close Kafka producer", "error", err)
				}
			}
			if app.postgreSQL != nil {
				if err := app.postgreSQL.Close(); err != nil {
					app.logger.Log(kratoslog.LevelError, "msg", "Failed to close PostgreSQL", "error", err)
				}
			}
			if app.telemetry != nil {
				if err := app.telemetry.Shutdown(ctx); err != nil {
					app.logger.Log(kratoslog.LevelError, "msg", "Failed to shutdown telemetry", "error", err)
				}
			}
			return nil
		},
	})
}
