package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/cardgallery/pkg/logging"
)

// 过渡速度倍率范围
const (
	MinTransitionSpeed = 0.5
	MaxTransitionSpeed = 2.0
)

// GallerySettings 用户偏好设置
// 只保存偏好，不保存布局状态（每次启动都从 Upload 开始）
type GallerySettings struct {
	// 旋转设置
	AmbientRotation   bool `yaml:"ambientRotation"`   // 是否启用环境旋转
	AccelerateOnStart bool `yaml:"accelerateOnStart"` // 进入旋转状态时是否加速到最大速度

	// 过渡设置
	TransitionSpeed float64 `yaml:"transitionSpeed"` // 过渡速度倍率 0.5 ~ 2.0

	// 显示设置
	ShowInstructions bool `yaml:"showInstructions"` // 是否显示操作提示
	Fullscreen       bool `yaml:"fullscreen"`       // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GallerySettings {
	return &GallerySettings{
		AmbientRotation:   true,
		AccelerateOnStart: true,
		TransitionSpeed:   1.0,
		ShowInstructions:  true,
		Fullscreen:        false,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GallerySettings
	logger       *log.Logger
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "gallery"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，使用默认设置继续运行
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
		logger:       logging.For("Settings"),
	}

	if err := sm.Load(); err != nil {
		sm.logger.Warn("failed to load settings, using defaults", "err", err)
	}
	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 从默认值开始解码，旧版本文件缺少的字段保留默认值
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.TransitionSpeed = clampSpeed(loaded.TransitionSpeed)

	sm.settings = loaded
	sm.logger.Debug("settings loaded")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	sm.logger.Debug("settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GallerySettings {
	return sm.settings
}

// SetAmbientRotation 设置环境旋转开关
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetAmbientRotation(enabled bool) {
	sm.settings.AmbientRotation = enabled
}

// SetAccelerateOnStart 设置进入旋转状态时是否加速
func (sm *SettingsManager) SetAccelerateOnStart(enabled bool) {
	sm.settings.AccelerateOnStart = enabled
}

// SetTransitionSpeed 设置过渡速度倍率，限制在 0.5 ~ 2.0
func (sm *SettingsManager) SetTransitionSpeed(speed float64) {
	sm.settings.TransitionSpeed = clampSpeed(speed)
}

// SetShowInstructions 设置是否显示操作提示
func (sm *SettingsManager) SetShowInstructions(enabled bool) {
	sm.settings.ShowInstructions = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// clampSpeed 把倍率限制在有效范围内，非正值视为 1.0
func clampSpeed(speed float64) float64 {
	if speed <= 0 {
		return 1.0
	}
	if speed < MinTransitionSpeed {
		return MinTransitionSpeed
	}
	if speed > MaxTransitionSpeed {
		return MaxTransitionSpeed
	}
	return speed
}
