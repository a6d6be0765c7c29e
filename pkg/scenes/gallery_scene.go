package scenes

import (
	"errors"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/cardgallery/pkg/config"
	"github.com/decker502/cardgallery/pkg/dataset"
	"github.com/decker502/cardgallery/pkg/fonts"
	"github.com/decker502/cardgallery/pkg/game"
	"github.com/decker502/cardgallery/pkg/input"
	"github.com/decker502/cardgallery/pkg/logging"
	"github.com/decker502/cardgallery/pkg/systems"
	"github.com/decker502/cardgallery/pkg/tween"
)

// GalleryOptions 画廊场景的构造参数
type GalleryOptions struct {
	// Seed 会话随机种子（卡片散布、旋转相位、错峰延迟）
	Seed int64

	// Choreography 过渡编排表，nil 使用内置默认值
	Choreography *config.ChoreographyTable

	// Settings 用户设置，nil 时使用不落盘的默认设置
	Settings *game.SettingsManager

	// Fonts 字体缓存，nil 时场景只更新不绘制（测试使用）
	Fonts *fonts.Cache

	// Delays 错峰延迟来源，nil 使用随机延迟
	Delays tween.DelaySource
}

// notification 屏幕顶部的一条提示
type notification struct {
	text      string
	remaining float64
}

// GalleryScene 卡片画廊主场景
//
// 持有一个 Session 和围绕它的全部系统：
//   - ViewStateMachine 决定当前布局，ChoreographySystem 负责布局之间的过渡
//   - RotationSystem 在球面和固定状态下驱动环境旋转
//   - CameraSystem 处理鼠标拖拽和滚轮
//   - CardRenderSystem / TableRenderSystem 绘制卡片、详情和数据表
//
// 输入经 input.Dispatcher 节流后交给状态机；导航错误以提示的形式显示 3 秒。
type GalleryScene struct {
	session      *game.Session
	tweens       *tween.Manager
	choreography *systems.ChoreographySystem
	rotation     *systems.RotationSystem
	camera       *systems.CameraSystem
	cards        *systems.CardRenderSystem
	table        *systems.TableRenderSystem
	machine      *game.ViewStateMachine
	dispatcher   *input.Dispatcher
	source       *input.EbitenSource
	settings     *game.SettingsManager
	fonts        *fonts.Cache

	// Presenter 状态
	uploadVisible bool
	instruction   string

	notice *notification

	// datasetName 当前数据集来源（文件名），仅用于显示
	datasetName string

	// now 时间源，测试中替换
	now func() time.Time

	logger *log.Logger
}

// NewGalleryScene 创建画廊场景，初始处于 Upload 状态
func NewGalleryScene(opts GalleryOptions) *GalleryScene {
	settings := opts.Settings
	if settings == nil {
		settings = game.NewSettingsManager(nil)
	}
	prefs := settings.GetSettings()

	s := &GalleryScene{
		session:  game.NewSession(opts.Seed),
		tweens:   tween.NewManager(),
		settings: settings,
		fonts:    opts.Fonts,
		now:      time.Now,
		logger:   logging.For("Gallery"),
	}

	s.cards = systems.NewCardRenderSystem(s.session, opts.Fonts)
	s.table = systems.NewTableRenderSystem(opts.Fonts)
	s.camera = systems.NewCameraSystem(s.session.Camera)

	s.choreography = systems.NewChoreographySystem(s.session, s.tweens, opts.Choreography, s.cards, opts.Delays)
	s.choreography.SetSpeedFactor(prefs.TransitionSpeed)

	s.rotation = systems.NewRotationSystem(s.session)
	s.rotation.SetEnabled(prefs.AmbientRotation)

	s.machine = game.NewViewStateMachine(s.session, s.choreography, s.rotation, s, s.table)
	s.machine.RotationAccelerate = prefs.AccelerateOnStart

	s.dispatcher = input.NewDispatcher(s.machine, s.choreography)
	s.machine.OnStateChanged(func(from, to game.ViewState) {
		s.dispatcher.NotifyStateChanged(s.now())
	})

	// 初始状态不执行进入动作，这里直接设置界面
	s.uploadVisible = true
	s.instruction = game.StateUpload.Instruction()
	return s
}

// EnableInput 开始从 ebiten 读取键盘和触摸输入
func (s *GalleryScene) EnableInput() {
	s.source = input.NewEbitenSource()
}

// Machine 场景的视图状态机
func (s *GalleryScene) Machine() *game.ViewStateMachine {
	return s.machine
}

// Session 场景的会话
func (s *GalleryScene) Session() *game.Session {
	return s.session
}

// ShowUpload 实现 game.Presenter
func (s *GalleryScene) ShowUpload(visible bool) {
	s.uploadVisible = visible
}

// ShowTable 实现 game.Presenter
func (s *GalleryScene) ShowTable(visible bool) {
	s.table.SetVisible(visible)
}

// SetInstruction 实现 game.Presenter
func (s *GalleryScene) SetInstruction(text string) {
	s.instruction = text
}

// LoadRecords 用记录替换当前数据集并进入表格视图
//
// 进行中的过渡和旋转全部取消；任何状态下都可以重新加载。
func (s *GalleryScene) LoadRecords(records []dataset.Record, name string) error {
	if len(records) == 0 {
		return dataset.ErrEmpty
	}

	s.tweens.Clear()
	s.rotation.Stop(true)
	s.session.LoadDataset(records)
	s.table.Render(s.session.Records)
	s.datasetName = name

	s.logger.Info("dataset loaded", "name", name, "records", len(records), "session", s.session.ID)

	if err := s.machine.SetState(game.StateTable, game.SetStateOptions{Force: true}); err != nil {
		s.handleError(err)
		return err
	}
	return nil
}

// LoadFile 从磁盘加载数据文件
func (s *GalleryScene) LoadFile(path string) error {
	records, err := dataset.LoadFile(path)
	if err != nil {
		s.notify(err.Error())
		return err
	}
	return s.LoadRecords(records, path)
}

// LoadFS 从文件系统（拖放的文件）中找到数据文件并加载
func (s *GalleryScene) LoadFS(fsys fs.FS) error {
	name, err := dataset.FindDataFile(fsys)
	if err != nil {
		s.notify(err.Error())
		return err
	}
	records, err := dataset.LoadFS(fsys, name)
	if err != nil {
		s.notify(err.Error())
		return err
	}
	return s.LoadRecords(records, name)
}

// HandleAction 节流后执行一个导航动作
func (s *GalleryScene) HandleAction(action input.Action) input.Outcome {
	outcome, err := s.dispatcher.Dispatch(action, s.now())
	if err != nil {
		s.handleError(err)
	}
	return outcome
}

// handleError 按错误类型决定提示或恢复
//
// 前置条件不满足只提示；进入动作失败或状态失效时尝试恢复到安全状态。
func (s *GalleryScene) handleError(err error) {
	var (
		failure      *game.TransitionFailure
		inconsistent *game.RecoverableInconsistency
	)
	switch {
	case errors.As(err, &failure), errors.As(err, &inconsistent):
		s.logger.Error("navigation failed, recovering", "err", err)
		s.notify(err.Error())
		s.recoverState()
	default:
		s.logger.Warn("navigation rejected", "err", err)
		s.notify(err.Error())
	}
}

// recoverState 让状态机检查并恢复；恢复本身失败时只记录日志
func (s *GalleryScene) recoverState() {
	err := s.machine.Recover()
	if err == nil {
		return
	}
	var recovered *game.RecoverableInconsistency
	if errors.As(err, &recovered) {
		s.logger.Warn("state recovered", "from", recovered.State, "to", recovered.RecoveredTo, "reason", recovered.Reason)
		s.notify(recovered.Error())
		return
	}
	s.logger.Error("recovery failed", "err", err)
}

// notify 显示一条提示，替换正在显示的提示
func (s *GalleryScene) notify(text string) {
	s.notice = &notification{text: text, remaining: config.NotificationDuration.Seconds()}
}

// Notice 当前显示的提示，没有时返回空串
func (s *GalleryScene) Notice() string {
	if s.notice == nil {
		return ""
	}
	return s.notice.text
}

// DismissNotice 关闭当前提示
func (s *GalleryScene) DismissNotice() {
	s.notice = nil
}

// ToggleAmbientRotation 开关环境旋转并保存到设置
func (s *GalleryScene) ToggleAmbientRotation() {
	enabled := !s.settings.GetSettings().AmbientRotation
	s.settings.SetAmbientRotation(enabled)
	s.rotation.SetEnabled(enabled)

	// 重新开启时，若当前状态本应旋转则立即恢复
	if enabled {
		switch s.machine.State() {
		case game.StateSphere, game.StateCardFixed:
			if !s.choreography.Busy() {
				s.rotation.Start(s.machine.RotationInitialSpeed, s.machine.RotationAccelerate)
			}
		}
	}
	s.logger.Info("ambient rotation toggled", "enabled", enabled)
}

// ToggleInstructions 开关操作提示
func (s *GalleryScene) ToggleInstructions() {
	s.settings.SetShowInstructions(!s.settings.GetSettings().ShowInstructions)
}

// Update 实现 game.Scene
func (s *GalleryScene) Update(deltaTime float64) {
	if s.source != nil {
		s.pollInput()
	}
	s.step(deltaTime)
}

// pollInput 读取本帧的拖放文件和按键
func (s *GalleryScene) pollInput() {
	if dropped := ebiten.DroppedFiles(); dropped != nil {
		_ = s.LoadFS(dropped)
	}

	if s.notice != nil && input.DismissPressed() {
		s.DismissNotice()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.ToggleAmbientRotation()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.ToggleInstructions()
	}

	s.HandleAction(s.source.Poll())
	s.camera.Update()
}

// step 推进与输入无关的部分：过渡、旋转、表格淡入、提示计时和一致性检查
func (s *GalleryScene) step(deltaTime float64) {
	s.tweens.Update(time.Duration(deltaTime * float64(time.Second)))
	s.rotation.Update(deltaTime)
	s.table.Update(deltaTime)

	if s.notice != nil {
		s.notice.remaining -= deltaTime
		if s.notice.remaining <= 0 {
			s.notice = nil
		}
	}

	s.recoverState()
}

// SaveOnExit 实现 game.Saveable，退出时保存用户设置
func (s *GalleryScene) SaveOnExit() bool {
	if err := s.settings.Save(); err != nil {
		s.logger.Error("failed to save settings", "err", err)
		return false
	}
	return true
}
