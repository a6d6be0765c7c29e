// Package scenes 包含画廊的各个场景
package scenes

import (
	"github.com/decker502/cardgallery/pkg/game"
)

// Scene 是 game.Scene 的别名，场景包内外使用同一接口
type Scene = game.Scene

var _ Scene = (*GalleryScene)(nil)
var _ game.Saveable = (*GalleryScene)(nil)
var _ game.Presenter = (*GalleryScene)(nil)
