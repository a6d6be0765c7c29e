package systems

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/decker502/cardgallery/pkg/components"
	"github.com/decker502/cardgallery/pkg/config"
	"github.com/decker502/cardgallery/pkg/dataset"
	"github.com/decker502/cardgallery/pkg/ecs"
	"github.com/decker502/cardgallery/pkg/game"
	"github.com/decker502/cardgallery/pkg/layout"
	"github.com/decker502/cardgallery/pkg/logging"
	"github.com/decker502/cardgallery/pkg/tween"
	"github.com/decker502/cardgallery/pkg/utils"
)

// DetailRenderer 卡片详情内容的挂载入口（由 CardRenderSystem 实现）
type DetailRenderer interface {
	AttachDetail(entity ecs.EntityID, record dataset.Record)
	RemoveDetail(entity ecs.EntityID)
	RefreshFocusedDetail(index int, cards []ecs.EntityID, records []dataset.Record)
}

// ChoreographySystem 布局过渡编排
//
// 四个过渡（table / sphere / cardFocus / cardFixed）都由同一个 run 按编排表执行：
// 镜头、每张卡片的变换和样式参数各自生成插值任务，并发推进。
// 所有任务（包括随机错峰延迟和链式缩放弹出）由一个 tween.Batch 跟踪，
// 最后一个任务完成后恰好调用一次 done。
//
// 调用方（状态机）负责校验焦点下标，这里假定输入有效。
type ChoreographySystem struct {
	session *game.Session
	tweens  *tween.Manager
	table   *config.ChoreographyTable
	details DetailRenderer
	delays  tween.DelaySource
	rng     *rand.Rand

	// speed 过渡速度倍率，时长除以该值
	speed float64

	current *tween.Batch
	logger  *log.Logger
}

// NewChoreographySystem 创建编排系统
//
// delays 为 nil 时使用基于会话随机源的 RandomDelay
func NewChoreographySystem(session *game.Session, tweens *tween.Manager, table *config.ChoreographyTable, details DetailRenderer, delays tween.DelaySource) *ChoreographySystem {
	if table == nil {
		table = config.DefaultChoreographyTable()
	}
	if delays == nil {
		delays = tween.NewRandomDelay(session.Rand().Int63())
	}
	return &ChoreographySystem{
		session: session,
		tweens:  tweens,
		table:   table,
		details: details,
		delays:  delays,
		rng:     session.Rand(),
		speed:   1.0,
		logger:  logging.For("Choreography"),
	}
}

// SetSpeedFactor 设置过渡速度倍率（用户设置），非正值忽略
func (c *ChoreographySystem) SetSpeedFactor(f float64) {
	if f > 0 {
		c.speed = f
	}
}

// SetTable 替换编排表
func (c *ChoreographySystem) SetTable(table *config.ChoreographyTable) {
	if table != nil {
		c.table = table
	}
}

// Busy 是否有过渡任务尚未完成
func (c *ChoreographySystem) Busy() bool {
	return c.tweens.Busy()
}

// Current 最近一次过渡的任务批次
func (c *ChoreographySystem) Current() *tween.Batch {
	return c.current
}

// ToTable 回到表格网格
func (c *ChoreographySystem) ToTable(done func()) {
	c.run(config.TransitionTable, -1, done)
}

// ToSphere 展开为球面
func (c *ChoreographySystem) ToSphere(done func()) {
	c.run(config.TransitionSphere, -1, done)
}

// ToCardFocus 把 index 卡片放到正前方，其余卡片后退
func (c *ChoreographySystem) ToCardFocus(index int, done func()) {
	c.run(config.TransitionCardFocus, index, done)
}

// ToCardFixed 把 index 卡片固定到侧边，其余卡片回到球面
func (c *ChoreographySystem) ToCardFixed(index int, done func()) {
	c.run(config.TransitionCardFixed, index, done)
}

// scaled 按速度倍率换算时长
func (c *ChoreographySystem) scaled(d time.Duration) time.Duration {
	return time.Duration(float64(d) / c.speed)
}

// run 按编排表执行一个过渡
func (c *ChoreographySystem) run(name config.TransitionName, index int, done func()) {
	cfg, ok := c.table.Get(name)
	if !ok {
		c.logger.Error("unknown transition", "name", name)
		if done != nil {
			done()
		}
		return
	}

	duration := c.scaled(cfg.Duration())
	maxDelay := c.scaled(cfg.MaxDelay())
	start := time.Now()

	cam := c.session.Camera
	cam.ControlsEnabled = false

	var batch *tween.Batch
	batch = tween.NewBatch(func() {
		// 被更新的过渡取代时由新过渡负责恢复
		if c.current == batch {
			cam.ControlsEnabled = true
		}
		c.logger.Debug("transition finished", "name", name, "elapsed", time.Since(start).Round(time.Millisecond))
		if done != nil {
			done()
		}
	})
	c.current = batch

	camEase := easing(cfg.Camera.Ease)
	c.tweens.Add(
		batch.Track(tween.Vec3(&cam.Position, cfg.Camera.Position, duration).Ease(camEase)),
		batch.Track(tween.Vec3(&cam.LookAt, cfg.Camera.LookAt, duration).Ease(camEase)),
	)

	focused := -1
	if cfg.Focus != nil {
		if c.session.ValidIndex(index) {
			focused = index
		} else {
			c.logger.Warn("invalid focus index, treating card as unfocused", "name", name, "index", index)
		}
	}

	// 先移除其他卡片上的详情，再挂载到焦点卡片
	if cfg.ClearDetail {
		c.fadeOutDetails(cfg, batch)
	} else if focused >= 0 {
		c.removeDetailsExcept(focused)
	}

	for i := range c.session.Cards {
		if i == focused {
			c.moveFocused(i, cfg, duration, batch)
			continue
		}
		c.moveCard(i, cfg, duration, maxDelay, batch)
	}

	batch.Seal()
	c.logger.Debug("transition started", "name", name, "index", index, "cards", len(c.session.Cards), "endsAt", batch.EndsAt())
}

// moveCard 非焦点卡片移动到目标布局
func (c *ChoreographySystem) moveCard(i int, cfg *config.TransitionConfig, duration, maxDelay time.Duration, batch *tween.Batch) {
	tr, ok := c.session.Transform(i)
	if !ok {
		return
	}
	style, _ := c.session.Style(i)

	target, ok := c.cardTarget(i, &cfg.Cards)
	if !ok {
		c.logger.Warn("missing layout target", "index", i, "layout", cfg.Cards.Layout)
		return
	}

	delay := c.delays.Delay(maxDelay)
	ease := easing(cfg.Cards.Ease)

	move := tween.Vec3(&tr.Position, target.Position, duration).Delay(delay).Ease(ease)
	turn := tween.Vec3(&tr.Rotation, target.Rotation, duration).Delay(delay).Ease(ease)

	if cfg.Pop != nil {
		move.Chain(c.pop(tr, cfg.Pop))
	} else {
		c.tweens.Add(batch.Track(tween.Vec3(&tr.Scale, utils.V3(1, 1, 1), duration).Delay(delay).Ease(ease)))
	}
	c.tweens.Add(batch.Track(move), batch.Track(turn))

	if style != nil {
		c.styleTweens(style, cfg.Cards.Opacity, cfg.Cards.Glow, duration, delay, ease, batch)
	}
}

// cardTarget 计算卡片在目标布局中的变换
//
// recede 以球面目标为基准，聚焦状态下连续切换焦点时后退位置保持不变。
func (c *ChoreographySystem) cardTarget(i int, m *config.CardMotion) (layout.Target, bool) {
	switch m.Layout {
	case config.CardLayoutTable:
		return c.session.TableTargets.At(i)
	case config.CardLayoutSphere:
		return c.session.SphereTargets.At(i)
	case config.CardLayoutRecede:
		base, ok := c.session.SphereTargets.At(i)
		if !ok {
			return layout.Target{}, false
		}
		p := base.Position
		pos := utils.V3(p.X*m.RecedeScaleXY, p.Y*m.RecedeScaleXY, p.Z+m.RecedePushZ)
		rot := base.Rotation.Add(utils.V3(c.jitter(m.JitterRadians), c.jitter(m.JitterRadians), c.jitter(m.JitterRadians)))
		return layout.Target{Position: pos, Rotation: rot}, true
	}
	return layout.Target{}, false
}

// jitter 返回 [0, max) 的随机旋转偏移
func (c *ChoreographySystem) jitter(max float64) float64 {
	if max <= 0 {
		return 0
	}
	return c.rng.Float64() * max
}

// pop 主运动结束后的缩放弹出，落在 1.0
func (c *ChoreographySystem) pop(tr *components.TransformComponent, p *config.PopConfig) *tween.Tween {
	from := p.FromScale
	return tween.New(c.scaled(time.Duration(p.DurationMs)*time.Millisecond)).
		Ease(easing(p.Ease)).
		OnUpdate(func(progress float64) {
			s := utils.Lerp(from, 1, progress)
			tr.Scale = utils.V3(s, s, s)
		})
}

// moveFocused 焦点卡片移动到前方（聚焦）或侧边（固定）
func (c *ChoreographySystem) moveFocused(i int, cfg *config.TransitionConfig, duration time.Duration, batch *tween.Batch) {
	tr, ok := c.session.Transform(i)
	if !ok {
		return
	}
	style, _ := c.session.Style(i)
	f := cfg.Focus
	ease := easing(f.Ease)

	c.tweens.Add(
		batch.Track(tween.Vec3(&tr.Position, f.Position, duration).Ease(ease)),
		batch.Track(tween.Vec3(&tr.Rotation, f.Rotation, duration).Ease(ease)),
		batch.Track(tween.Vec3(&tr.Scale, f.Scale, duration).Ease(ease)),
	)
	if style == nil {
		return
	}

	one := 1.0
	glow := f.Glow
	c.styleTweens(style, &one, &glow, duration, 0, ease, batch)

	id := c.session.Cards[i]
	switch f.AttachDetail {
	case config.AttachDetailImmediate:
		if !style.Detailed {
			c.details.AttachDetail(id, c.session.Records[i])
		}
		style.DetailAnchor = f.DetailAnchorFrom
		c.tweens.Add(batch.Track(tween.Float(&style.DetailAnchor, f.DetailAnchorTo, duration).Ease(ease)))

	case config.AttachDetailAfterDuration:
		// 等待任务在过渡时长结束时完成，不依赖独立计时器
		wait := tween.Wait(duration).OnComplete(func() {
			c.details.RefreshFocusedDetail(i, c.session.Cards, c.session.Records)
			style.DetailAnchor = f.DetailAnchorFrom
		})
		c.tweens.Add(batch.Track(wait))
	}
}

// styleTweens 透明度和发光强度插值，nil 表示保持不变
func (c *ChoreographySystem) styleTweens(style *components.CardStyleComponent, opacity, glow *float64, duration, delay time.Duration, ease utils.EasingFunc, batch *tween.Batch) {
	if opacity != nil {
		c.tweens.Add(batch.Track(tween.Float(&style.Opacity, *opacity, duration).Delay(delay).Ease(ease)))
	}
	if glow != nil {
		c.tweens.Add(batch.Track(tween.Float(&style.Glow, *glow, duration).Delay(delay).Ease(ease)))
	}
}

// fadeOutDetails 所有带详情的卡片淡出后移除详情
func (c *ChoreographySystem) fadeOutDetails(cfg *config.TransitionConfig, batch *tween.Batch) {
	fade := c.scaled(time.Duration(cfg.DetailFadeMs) * time.Millisecond)
	for i, id := range c.session.Cards {
		style, ok := c.session.Style(i)
		if !ok || !style.Detailed {
			continue
		}
		entity := id
		tw := tween.Float(&style.DetailOpacity, 0, fade).
			Ease(utils.EaseOutQuad).
			OnComplete(func() { c.details.RemoveDetail(entity) })
		c.tweens.Add(batch.Track(tw))
	}
}

// removeDetailsExcept 立即移除除 keep 以外所有卡片的详情
func (c *ChoreographySystem) removeDetailsExcept(keep int) {
	for i, id := range c.session.Cards {
		if i == keep {
			continue
		}
		if style, ok := c.session.Style(i); ok && style.Detailed {
			c.details.RemoveDetail(id)
		}
	}
}

// easing 按名称查找缓动函数，编排表已校验过名称，未知名称退化为线性
func easing(name string) utils.EasingFunc {
	if fn, ok := utils.EasingByName(name); ok {
		return fn
	}
	return utils.EaseLinear
}
