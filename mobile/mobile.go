//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.cardgallery -o build/android/cardgallery.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/CardGallery.xcframework -v ./mobile
package mobile

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/cardgallery/pkg/app"
	"github.com/decker502/cardgallery/pkg/embedded"
	"github.com/decker502/cardgallery/pkg/logging"
)

func init() {
	logging.Setup(os.Stderr, log.InfoLevel)
	embedded.Init(dataFS)

	// 移动端没有拖放，直接加载示例数据
	gallery, err := app.NewApp(app.Config{Verbose: true, Sample: true})
	if err != nil {
		log.Fatal("failed to start gallery", "err", err)
	}

	mobile.SetGame(gallery)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
