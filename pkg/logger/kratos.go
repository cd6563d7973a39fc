package logger

import (
	"os"

	kratoslog "github.com/go-kratos/kratos/v2/log"
)

// NewKratosStdLogger 创建带服务信息的Kratos日志器，供服务器框架使用
func NewKratosStdLogger(serviceName, version string) kratoslog.Logger {
	return kratoslog.With(
		kratoslog.NewStdLogger(os.Stdout),
		"service.name", serviceName,
		"service.version", version,
		"ts", kratoslog.DefaultTimestamp,
		"caller", kratoslog.DefaultCaller,
	)
}
