package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/cardgallery/pkg/logging"
)

// SceneManager 持有当前活动场景，只有它的 Update 和 Draw 会被调用
type SceneManager struct {
	currentScene Scene
	logger       *log.Logger
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{logger: logging.For("SceneManager")}
}

// SwitchTo 切换活动场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.logger.Debug("switching scene", "scene", fmt.Sprintf("%T", scene))
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update 推进当前场景，deltaTime 为秒
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// SaveOnExit 程序退出前让当前场景保存状态
//
// 场景未实现 Saveable 时视为无需保存，返回 true
func (sm *SceneManager) SaveOnExit() bool {
	saveable, ok := sm.currentScene.(Saveable)
	if !ok {
		return true
	}
	if !saveable.SaveOnExit() {
		sm.logger.Warn("scene failed to save on exit")
		return false
	}
	return true
}
