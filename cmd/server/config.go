package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"unmute-configurator-golang/constants"
	redisdb "unmute-configurator-golang/internal/db/redis"
	"unmute-configurator-golang/internal/domain/preset"
	log "unmute-configurator-golang/logger"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func Init(configFile string) error {
	if err := initConfig(configFile); err != nil {
		return fmt.Errorf("initConfig: %w", err)
	}
	if err := initLog(); err != nil {
		return fmt.Errorf("initLog: %w", err)
	}
	if viper.GetString("config_store.type") == constants.ConfigStoreTypeRedis {
		if err := initRedis(); err != nil {
			return fmt.Errorf("initRedis: %w", err)
		}
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8989)
	viper.SetDefault("server.read_timeout", "120s")
	viper.SetDefault("server.broadcast_workers", 4)
	viper.SetDefault("server.pprof.enable", false)
	viper.SetDefault("server.pprof.port", 6060)

	viper.SetDefault("log.path", "logs/")
	viper.SetDefault("log.file", "server.log")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.stdout", true)
	viper.SetDefault("log.max_age", 7)

	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.key_prefix", "unmute")
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.dial_timeout", "5s")

	viper.SetDefault("config_store.type", constants.ConfigStoreTypeMemory)
	viper.SetDefault("config_store.release_on_close", true)

	viper.SetDefault("configurator.preset", string(preset.Default))
}

func initConfig(configFile string) error {
	setDefaults()

	basePath, file := filepath.Split(configFile)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file), "."))

	viper.SetConfigName(strings.TrimSuffix(file, filepath.Ext(file)))
	viper.AddConfigPath(basePath)

	switch ext {
	case "json":
		viper.SetConfigType("json")
	case "yaml", "yml":
		viper.SetConfigType("yaml")
	default:
		return fmt.Errorf("unsupported config file type: %s", ext)
	}

	// UNMUTE_SERVER_PORT 覆盖 server.port
	viper.SetEnvPrefix("unmute")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	return viper.ReadInConfig()
}

func initLog() error {
	logPath := filepath.Join(viper.GetString("log.path"), viper.GetString("log.file"))
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return err
	}

	// 每天轮转一次, 保留 log.max_age 个文件
	writer, err := rotatelogs.New(
		logPath+".%Y%m%d",
		rotatelogs.WithLinkName(logPath),
		rotatelogs.WithRotationCount(uint(viper.GetInt("log.max_age"))),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return err
	}

	var out io.Writer = writer
	if viper.GetBool("log.stdout") {
		out = io.MultiWriter(writer, os.Stdout)
		logrus.SetFormatter(log.Formatter(true))
	} else {
		logrus.SetFormatter(log.Formatter(false))
	}
	logrus.SetOutput(out)

	logrus.SetReportCaller(false)
	level, err := logrus.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	initZap(out, level)
	return nil
}

// initZap 全局 zap logger 写入与 logrus 相同的目标, workqueue 中的 panic 由它记录
func initZap(out io.Writer, level logrus.Level) {
	zapLevel := zapcore.InfoLevel
	switch level {
	case logrus.TraceLevel, logrus.DebugLevel:
		zapLevel = zapcore.DebugLevel
	case logrus.WarnLevel:
		zapLevel = zapcore.WarnLevel
	case logrus.ErrorLevel:
		zapLevel = zapcore.ErrorLevel
	case logrus.FatalLevel, logrus.PanicLevel:
		zapLevel = zapcore.FatalLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(out), zapLevel)
	zap.ReplaceGlobals(zap.New(core, zap.AddCaller()))
}

func initRedis() error {
	redisConfig := redisdb.DefaultConfig()
	redisConfig.Host = viper.GetString("redis.host")
	redisConfig.Port = viper.GetInt("redis.port")
	redisConfig.Password = viper.GetString("redis.password")
	redisConfig.DB = viper.GetInt("redis.db")
	redisConfig.MaxRetries = viper.GetInt("redis.max_retries")
	redisConfig.DialTimeout = viper.GetDuration("redis.dial_timeout")
	return redisdb.Init(redisConfig)
}
