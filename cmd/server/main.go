package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/rfrnce/internal/app"
	"github.com/rfrnce/internal/config"
	"github.com/rfrnce/internal/logger"
	"github.com/rfrnce/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"
)

func main() {
	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner(mode)

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions(serviceName(mode)))
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if cfg.Firecrawl.APIKey == "" || cfg.Exa.APIKey == "" || cfg.Gemini.APIKey == "" {
		stdLog.Printf("警告: FIRECRAWL_API_KEY / EXA_API_KEY / GEMINI_API_KEY 未全部配置，相关功能将失败")
	}

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, cfg.Server.Mode == "debug"); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}
	defer func() {
		_ = models.Close()
	}()

	// 自动迁移数据库表
	if err := models.AutoMigrate(nil); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func serviceName(mode string) string {
	if mode == app.ModeWorker {
		return "rfrnce-worker"
	}
	return "rfrnce-api"
}

func printStartupBanner(mode string) {
	fmt.Println(ansiCyan + "██████╗ ███████╗██████╗ ███╗   ██╗ ██████╗███████╗" + ansiReset)
	fmt.Println(ansiCyan + "██╔══██╗██╔════╝██╔══██╗████╗  ██║██╔════╝██╔════╝" + ansiReset)
	fmt.Println(ansiCyan + "██████╔╝█████╗  ██████╔╝██╔██╗ ██║██║     █████╗  " + ansiReset)
	fmt.Println(ansiCyan + "██╔══██╗██╔══╝  ██╔══██╗██║╚██╗██║██║     ██╔══╝  " + ansiReset)
	fmt.Println(ansiCyan + "██║  ██║██║     ██║  ██║██║ ╚████║╚██████╗███████╗" + ansiReset)
	fmt.Println(ansiCyan + "╚═╝  ╚═╝╚═╝     ╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝╚══════╝" + ansiReset)
	fmt.Println(ansiBold + "Rfrnce API 启动中, mode=" + mode + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------" + ansiReset)
}
