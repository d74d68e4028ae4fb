package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"unmute-configurator-golang/internal/app/server"
	redisdb "unmute-configurator-golang/internal/db/redis"
	log "unmute-configurator-golang/logger"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	configFile := flag.String("c", "config/config.yaml", "配置文件路径")
	flag.Parse()

	if *configFile == "" {
		fmt.Println("配置文件路径不能为空")
		os.Exit(1)
	}

	if err := Init(*configFile); err != nil {
		fmt.Printf("init err: %+v\n", err)
		os.Exit(1)
	}
	defer redisdb.Close()
	defer zap.L().Sync()

	if viper.GetBool("server.pprof.enable") {
		pprofPort := viper.GetInt("server.pprof.port")
		go func() {
			log.Infof("启动pprof服务，端口: %d", pprofPort)
			if err := http.ListenAndServe(fmt.Sprintf(":%d", pprofPort), nil); err != nil {
				log.Errorf("pprof服务启动失败: %v", err)
			}
		}()
	}

	appInstance, err := server.NewApp()
	if err != nil {
		log.Errorf("创建服务失败: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("服务器已启动，按 Ctrl+C 退出")
	if err := appInstance.Run(ctx); err != nil {
		log.Errorf("服务器异常退出: %v", err)
		return
	}
	log.Info("服务器已关闭")
}
