package app

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/game"
	"github.com/gonewx/runner/pkg/minigames"
	"github.com/gonewx/runner/pkg/types"
	"github.com/gonewx/runner/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	skyColor      = color.RGBA{R: 15, G: 23, B: 42, A: 255}
	groundColor   = color.RGBA{R: 30, G: 41, B: 59, A: 255}
	laneLineColor = color.RGBA{R: 71, G: 85, B: 105, A: 255}
	pickupColor   = color.RGBA{R: 250, G: 204, B: 21, A: 255}
	boostColor    = color.RGBA{R: 74, G: 222, B: 128, A: 255}
	shotColor     = color.RGBA{R: 248, G: 250, B: 252, A: 255}
	shieldColor   = color.RGBA{R: 56, G: 189, B: 248, A: 160}
	rampageColor  = color.RGBA{R: 239, G: 68, B: 68, A: 160}
	overlayColor  = color.RGBA{A: 180}
	fallbackColor = color.RGBA{R: 148, G: 163, B: 184, A: 255}
)

// sprite 投影后的屏幕矩形（底边中点锚定）
type sprite struct {
	x, y, w, h float32
	clr        color.RGBA
	round      bool
	depth      float64
}

// Renderer 把 game.Frame 画到屏幕上
// 只读取快照，不持有模拟状态
type Renderer struct {
	camera utils.Camera
	width  float64
	height float64
	config *config.GameConfig
}

// NewRenderer 创建渲染器
func NewRenderer(cfg *config.GameConfig, camera utils.Camera, width, height int) *Renderer {
	return &Renderer{
		camera: camera,
		width:  float64(width),
		height: float64(height),
		config: cfg,
	}
}

// layout 计算实体精灵，按纵深从远到近排序
func (r *Renderer) layout(frame game.Frame) []sprite {
	sprites := make([]sprite, 0, len(frame.Entities)+1)
	for _, e := range frame.Entities {
		if !r.camera.Visible(e.Z) {
			continue
		}
		w, h := e.Width, e.Height
		if w <= 0 {
			w = 0.5
		}
		if h <= 0 {
			h = 0.5
		}
		s := r.project(e.X, e.Y, e.Z, w, h)
		s.clr = r.entityColor(e)
		s.round = e.Category == types.CategoryPickup || e.Category == types.CategoryExplosion
		if e.Category == types.CategoryExplosion {
			// 爆炸随寿命扩散
			grow := float32(2 - e.Life)
			s.w *= grow
			s.h *= grow
			s.clr.A = uint8(255 * math.Max(e.Life, 0))
		}
		sprites = append(sprites, s)
	}

	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].depth > sprites[j].depth
	})
	return sprites
}

func (r *Renderer) project(x, y, z, w, h float64) sprite {
	p := r.camera.Project(x, y, z, r.width, r.height)
	xFactor := r.width / r.camera.LaneSpan
	return sprite{
		x:     float32(p.X),
		y:     float32(p.Y),
		w:     float32(w * xFactor * p.Scale),
		h:     float32(h * r.camera.HeightScale * p.Scale),
		depth: z,
	}
}

func (r *Renderer) entityColor(e game.EntityView) color.RGBA {
	switch e.Category {
	case types.CategoryPickup:
		return pickupColor
	case types.CategorySpeedBoost:
		return boostColor
	case types.CategoryProjectile:
		return shotColor
	}
	if e.Color != "" {
		return utils.HexColorOr(e.Color, fallbackColor)
	}
	return utils.HexColorOr(r.config.EffectColor(e.Category), fallbackColor)
}

// DrawRun 绘制跑局画面和 HUD
func (r *Renderer) DrawRun(screen *ebiten.Image, frame game.Frame) {
	r.drawTrack(screen)

	for _, s := range r.layout(frame) {
		drawSprite(screen, s)
	}
	r.drawPlayer(screen, frame.Player)
	r.drawHUD(screen, frame.HUD)

	if frame.Paused {
		r.drawOverlay(screen, "PAUSED", "Esc resume   Q menu")
	}
}

func (r *Renderer) drawTrack(screen *ebiten.Image) {
	screen.Fill(skyColor)
	horizon := float32(r.height * r.camera.HorizonRatio)
	vector.DrawFilledRect(screen, 0, horizon, float32(r.width), float32(r.height)-horizon, groundColor, false)

	far := r.config.World.DrawDistance
	for lane := r.config.Lanes.Min; lane <= r.config.Lanes.Max+1; lane++ {
		x := (float64(lane) - 0.5) * r.config.Lanes.Width
		near := r.camera.Project(x, 0, r.config.World.PlayerZ-r.config.World.CullMargin, r.width, r.height)
		end := r.camera.Project(x, 0, far, r.width, r.height)
		vector.StrokeLine(screen, float32(near.X), float32(near.Y), float32(end.X), float32(end.Y), 1, laneLineColor, true)
	}
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, p game.PlayerView) {
	body := r.project(p.X, p.Y, p.Z, 1.0, 1.6)
	if p.Locomotion == types.LocomotionRolling {
		body.h /= 2
	}
	body.clr = utils.HexColorOr(p.Color, fallbackColor)
	if p.DamageCooldown {
		body.clr.A = 128
	}
	drawSprite(screen, body)

	accent := body
	accent.h = body.h / 4
	accent.y = body.y - body.h*3/4
	accent.clr = utils.HexColorOr(p.AccentColor, fallbackColor)
	drawSprite(screen, accent)

	switch {
	case p.RampageRemaining > 0:
		vector.StrokeCircle(screen, body.x, body.y-body.h/2, body.h*0.8, 3, rampageColor, true)
	case p.Invincible:
		vector.StrokeCircle(screen, body.x, body.y-body.h/2, body.h*0.8, 2, shieldColor, true)
	}
}

func drawSprite(screen *ebiten.Image, s sprite) {
	if s.round {
		radius := s.w / 2
		vector.DrawFilledCircle(screen, s.x, s.y-radius, radius, s.clr, true)
		return
	}
	vector.DrawFilledRect(screen, s.x-s.w/2, s.y-s.h, s.w, s.h, s.clr, true)
}

// hudLines HUD 文本
func hudLines(h game.HUD) []string {
	lines := []string{
		fmt.Sprintf("SCORE %d   COINS %d   AMMO %d", h.Score, h.Coins, h.Ammo),
		fmt.Sprintf("HEALTH %s   SPEED %.2f   DIST %.0f", healthBar(h.Health, h.MaxHealth), h.Speed, h.Distance),
	}
	if h.RampageSeconds > 0 {
		lines = append(lines, fmt.Sprintf("RAMPAGE %.1fs", h.RampageSeconds))
	}
	if h.SpeedBoostToast {
		lines = append(lines, "SPEED UP!")
	}
	if h.AmmoReloadToast {
		lines = append(lines, "AMMO +3")
	}
	return lines
}

func healthBar(health, max int) string {
	if health < 0 {
		health = 0
	}
	if health > max {
		health = max
	}
	return strings.Repeat("#", health) + strings.Repeat("-", max-health)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, h game.HUD) {
	for i, line := range hudLines(h) {
		ebitenutil.DebugPrintAt(screen, line, 10, 10+i*16)
	}
}

func (r *Renderer) drawOverlay(screen *ebiten.Image, title string, lines ...string) {
	vector.DrawFilledRect(screen, 0, 0, float32(r.width), float32(r.height), overlayColor, false)
	cx := int(r.width)/2 - len(title)*3
	cy := int(r.height) / 3
	ebitenutil.DebugPrintAt(screen, title, cx, cy)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(r.width)/2-len(line)*3, cy+30+i*18)
	}
}

// DrawMenu 角色选择
func (r *Renderer) DrawMenu(screen *ebiten.Image, roster *config.Roster, selected int) {
	screen.Fill(skyColor)
	ebitenutil.DebugPrintAt(screen, "LANE RUNNER", int(r.width)/2-33, 40)
	ebitenutil.DebugPrintAt(screen, "<- -> / 1-9 select   Enter start", int(r.width)/2-96, 64)

	for i, id := range roster.IDs() {
		traits := roster.Lookup(id)
		col, row := i%4, i/4
		x := float32(80 + col*170)
		y := float32(120 + row*110)

		vector.DrawFilledRect(screen, x, y, 60, 60, utils.HexColorOr(traits.Color, fallbackColor), true)
		vector.DrawFilledRect(screen, x+15, y+10, 30, 12, utils.HexColorOr(traits.AccentColor, fallbackColor), true)
		if i == selected {
			vector.StrokeRect(screen, x-4, y-4, 68, 68, 2, shotColor, true)
		}
		ebitenutil.DebugPrintAt(screen, traits.Name, int(x), int(y)+64)
		ebitenutil.DebugPrintAt(screen, traits.PowerUp.String(), int(x), int(y)+80)
	}
}

// DrawMinigame 小游戏界面
func (r *Renderer) DrawMinigame(screen *ebiten.Image, frame game.Frame, mg minigames.Minigame) {
	r.DrawRun(screen, frame)
	if mg == nil {
		return
	}
	lines := []string{mg.Prompt(), fmt.Sprintf("%.1fs", mg.Remaining())}
	switch g := mg.(type) {
	case *minigames.MathMinigame:
		var sb strings.Builder
		for i, opt := range g.Options() {
			if i == g.Cursor() {
				fmt.Fprintf(&sb, "[%d:%d] ", i+1, opt)
			} else {
				fmt.Fprintf(&sb, " %d:%d  ", i+1, opt)
			}
		}
		lines = append(lines, sb.String(), "<- -> choose   Ctrl/Up confirm   1-3 pick")
	case *minigames.CodeMinigame:
		lines = append(lines, "type the arrows in order")
	case *minigames.CannonMinigame:
		lines = append(lines, "<- -> aim   Ctrl charge, Ctrl again to fire")
	case *minigames.DodgeMinigame:
		lines = append(lines, "<- -> dodge until the timer runs out")
	}
	r.drawOverlay(screen, strings.ToUpper(string(mg.Kind()))+" CHALLENGE", lines...)
	for _, s := range r.minigameSprites(mg) {
		drawSprite(screen, s)
	}
}

// minigameSprites 大炮和躲石头小游戏的场景元素（屏幕坐标）
func (r *Renderer) minigameSprites(mg minigames.Minigame) []sprite {
	var out []sprite
	switch g := mg.(type) {
	case *minigames.CannonMinigame:
		sx := float32(r.width / minigames.CannonFieldWidth)
		sy := float32(r.height / minigames.CannonFieldHeight)
		tx, ty := g.Target()
		out = append(out, sprite{x: float32(tx) * sx, y: float32(ty) * sy, w: 40 * sx, h: 40 * sy, clr: rampageColor, round: true})
		out = append(out, sprite{x: float32(minigames.CannonFieldWidth/2) * sx, y: float32(minigames.CannonMuzzleY+40) * sy, w: 50 * sx, h: 40 * sy, clr: fallbackColor})
		if shell := g.Shell(); shell.Active {
			out = append(out, sprite{x: float32(shell.X) * sx, y: float32(shell.Y) * sy, w: 12 * sx, h: 12 * sy, clr: shotColor, round: true})
		}
	case *minigames.DodgeMinigame:
		sx := float32(r.width / 100)
		sy := float32(r.height / 100)
		for _, rock := range g.Rocks() {
			out = append(out, sprite{x: float32(rock.X) * sx, y: float32(rock.Y) * sy, w: 4 * sx, h: 4 * sx, clr: fallbackColor, round: true})
		}
		out = append(out, sprite{x: float32(g.PlayerX()) * sx, y: float32(minigames.DodgeHitBottom) * sy, w: 6 * sx, h: 8 * sy, clr: boostColor})
	}
	return out
}

// DrawGameOver 结算画面
func (r *Renderer) DrawGameOver(screen *ebiten.Image, summary game.SessionState) {
	screen.Fill(skyColor)
	r.drawOverlay(screen, "GAME OVER",
		fmt.Sprintf("SCORE %d", summary.Score),
		fmt.Sprintf("COINS %d", summary.Coins),
		fmt.Sprintf("DISTANCE %.0f", summary.Distance),
		"Enter restart   Q menu",
	)
}
