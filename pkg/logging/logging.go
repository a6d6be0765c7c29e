// Package logging 为各子系统提供带前缀的结构化日志
//
// 应用启动时调用 Setup 设置输出和级别，之后各系统在构造时
// 通过 For("Prefix") 获取自己的 logger，日志形如：
//
//	14:32:01.45 INFO <ViewStateMachine> state changed from=Table to=Sphere
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Setup 配置默认 logger
//
// 参数：
//   - w: 输出目标
//   - level: 最低输出级别
func Setup(w io.Writer, level log.Level) {
	log.SetDefault(log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	}))
}

// For 返回带前缀的子 logger
func For(prefix string) *log.Logger {
	return log.Default().WithPrefix(prefix)
}
