package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	nested "github.com/antonfisher/nested-logrus-formatter"
	log "github.com/sirupsen/logrus"
)

func init() {
	// 默认不使用颜色, 输出目标由应用程序决定
	log.SetFormatter(Formatter(false))
}

// SetOutput 设置日志输出目标
func SetOutput(out *os.File) {
	log.SetOutput(out)
}

// SetLevel 设置日志级别
func SetLevel(level log.Level) {
	log.SetLevel(level)
}

// UseStdout 使用标准输出
func UseStdout() {
	log.SetOutput(os.Stdout)
	log.SetFormatter(Formatter(true))
}

// callerAt 返回 skip 层之上的调用位置, 只保留文件名
func callerAt(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown:0"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// 用户代码 -> logger.Info -> entry -> callerAt -> runtime.Caller
func entry() *log.Entry {
	return log.WithField("caller", callerAt(3))
}

func Info(args ...interface{}) {
	entry().Info(args...)
}

func Error(args ...interface{}) {
	entry().Error(args...)
}

func Debug(args ...interface{}) {
	entry().Debug(args...)
}

func Warn(args ...interface{}) {
	entry().Warn(args...)
}

func Fatal(args ...interface{}) {
	entry().Fatal(args...)
}

func Infof(format string, args ...interface{}) {
	entry().Infof(format, args...)
}

func Errorf(format string, args ...interface{}) {
	entry().Errorf(format, args...)
}

func Debugf(format string, args ...interface{}) {
	entry().Debugf(format, args...)
}

func Warnf(format string, args ...interface{}) {
	entry().Warnf(format, args...)
}

func Fatalf(format string, args ...interface{}) {
	entry().Fatalf(format, args...)
}

// Log 以 key, value 成对的参数构造带字段的日志条目
// 落单的 key 记为空字符串, 非字符串的 key 被忽略
func Log(args ...interface{}) *log.Entry {
	fields := log.Fields{}
	lenArgs := len(args)
	for i := 0; i < lenArgs; i = i + 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		if i <= lenArgs-2 {
			fields[key] = args[i+1]
			continue
		}
		fields[key] = ""
	}
	fields["caller"] = callerAt(2)
	return log.WithFields(fields)
}

// Session 返回带会话ID的日志条目, websocket 会话内统一使用
func Session(sessionID string) *log.Entry {
	return log.WithFields(log.Fields{
		"caller":  callerAt(2),
		"session": sessionID,
	})
}

func Formatter(isConsole bool) *nested.Formatter {
	fmtter := &nested.Formatter{
		FieldsOrder:      []string{"time", "level", "caller", "session", "msg"},
		HideKeys:         true,
		TimestampFormat:  "2006-01-02 15:04:05.000",
		CallerFirst:      true,
		NoUppercaseLevel: true,
		ShowFullLevel:    true,
		// caller 字段由本包自行添加
		CustomCallerFormatter: func(frame *runtime.Frame) string {
			return ""
		},
	}
	fmtter.NoColors = !isConsole
	return fmtter
}
