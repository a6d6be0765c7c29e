// Package app 提供画廊应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/cardgallery/pkg/config"
	"github.com/decker502/cardgallery/pkg/embedded"
	"github.com/decker502/cardgallery/pkg/fonts"
	"github.com/decker502/cardgallery/pkg/game"
	"github.com/decker502/cardgallery/pkg/logging"
	"github.com/decker502/cardgallery/pkg/scenes"
	"github.com/decker502/cardgallery/pkg/utils"
)

// AppName 用户数据存储使用的应用名
const AppName = "cardgallery"

// 嵌入资源路径
const (
	embeddedChoreography = "data/choreography.yaml"
	embeddedSampleDir    = "data"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// DataPath 启动时加载的数据文件，为空则停留在上传界面
	DataPath string
	// Sample 启动时加载内置示例数据（DataPath 为空时生效）
	Sample bool
	// ChoreographyPath 自定义编排表（.yaml/.yml/.toml），为空使用内置配置
	ChoreographyPath string
	// Seed 随机种子，0 表示按启动时间生成
	Seed int64
	// Fullscreen 以全屏启动（也可由已保存的设置开启）
	Fullscreen bool
}

// App 是画廊应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	exitRequested            atomic.Bool
	logger                   *log.Logger
}

// NewApp 创建并初始化画廊应用
//
// 调用此函数前应先调用 embedded.Init()；未初始化时使用内置默认编排表且没有示例数据。
func NewApp(cfg Config) (*App, error) {
	logger := logging.For("App")

	store, err := utils.OpenStorage(AppName)
	if err != nil {
		logger.Warn("settings storage unavailable, settings will not be saved", "err", err)
		store = nil
	}
	settings := game.NewSettingsManager(store)

	table, err := loadChoreography(cfg.ChoreographyPath)
	if err != nil {
		return nil, err
	}

	fontCache, err := fonts.NewCache()
	if err != nil {
		return nil, fmt.Errorf("failed to load fonts: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("starting gallery", "seed", seed)

	gallery := scenes.NewGalleryScene(scenes.GalleryOptions{
		Seed:         seed,
		Choreography: table,
		Settings:     settings,
		Fonts:        fontCache,
	})
	gallery.EnableInput()

	// 启动数据加载失败不是致命错误，场景会显示提示并停留在上传界面
	switch {
	case cfg.DataPath != "":
		if err := gallery.LoadFile(cfg.DataPath); err != nil {
			logger.Warn("failed to load startup dataset", "path", cfg.DataPath, "err", err)
		}
	case cfg.Sample:
		if err := loadSample(gallery); err != nil {
			logger.Warn("failed to load sample dataset", "err", err)
		}
	}

	if cfg.Fullscreen || settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(gallery)

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
		logger:       logger,
	}, nil
}

// loadChoreography 按优先级加载编排表：命令行指定的文件、嵌入的配置
//
// 两者都没有时返回 nil，由编排系统使用内置默认值
func loadChoreography(path string) (*config.ChoreographyTable, error) {
	if path != "" {
		table, err := config.LoadChoreographyTable(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load choreography %s: %w", path, err)
		}
		return table, nil
	}

	if !embedded.Exists(embeddedChoreography) {
		return nil, nil
	}
	data, err := embedded.ReadFile(embeddedChoreography)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded choreography: %w", err)
	}
	table, err := config.ParseChoreographyTable(data, "yaml")
	if err != nil {
		return nil, fmt.Errorf("embedded choreography: %w", err)
	}
	return table, nil
}

// loadSample 加载嵌入的示例数据
func loadSample(gallery *scenes.GalleryScene) error {
	sub, err := embedded.Sub(embeddedSampleDir)
	if err != nil {
		return err
	}
	return gallery.LoadFS(sub)
}

// Update 更新画廊逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() || a.exitRequested.Load() {
		a.Shutdown()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.logger.Debug("delayed window resize", "width", config.GameWindowWidth, "height", config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settings.SetFullscreen(false)
		a.logger.Debug("exit fullscreen, window size reset in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
	a.settings.SetFullscreen(true)
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// RequestExit 请求在下一帧保存并退出，可在任意 goroutine 调用
func (a *App) RequestExit() {
	a.exitRequested.Store(true)
}

// Shutdown 退出前保存设置，可重复调用
func (a *App) Shutdown() {
	if !a.sceneManager.SaveOnExit() {
		a.logger.Warn("settings were not saved")
		return
	}
	a.logger.Debug("settings saved on exit")
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
