package starsurge

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/starsurge/internal/core"
)

// Glyphs used by the fallback renderer.
const (
	PlayerGlyph     = '▲'
	BossGlyph       = '█'
	BurstGlyph      = '•'
	MeteorGlyph     = 'o'
	BigMeteorGlyph  = 'O'
	LaserGlyph      = '·'
	CloudGlyph      = '░'
	WarningGlyph    = '!'
	PredictionGlyph = '?'
	FrozenGlyph     = '❄'
	ExplosionGlyph  = '*'
	HitGlyph        = '+'
)

var enemyGlyphs = [categoryCount]rune{
	CategoryRammer:      '◆',
	CategoryShooter:     '▼',
	CategoryBeamShooter: '◎',
	CategoryDestroyer:   '■',
}

var collectibleGlyphs = [collectibleKindCount]rune{
	GoldStar:   '★',
	GreenStar:  '★',
	BlueStar:   '★',
	PurpleStar: '✦',
	RedRocket:  '♥',
	AzureBomb:  '◉',
}

// hudRows is the number of screen rows reserved above the playfield.
const hudRows = 1

// Render draws the current state scaled onto dst. This is the fallback
// path; richer hosts read Frame instead.
func (g *Game) Render(dst *core.Screen) {
	if g.player == nil {
		return
	}
	f := g.peekFrame()
	v := newViewport(dst, f.Width, f.Height)

	for _, e := range f.Entities {
		switch e.Kind {
		case EntityToxicCloud:
			v.fill(dst, e, CloudGlyph)
		case EntityBombWarning:
			v.point(dst, e.X, e.Y, WarningGlyph, core.ColorAzure)
		case EntityBombPrediction:
			v.point(dst, e.X, e.Y, PredictionGlyph, core.ColorGray)
		case EntityCollectible:
			v.point(dst, e.X, e.Y, g.collectibleGlyph(e.Type), e.Color)
		case EntityEnemy:
			g.drawEnemy(dst, v, e)
		case EntityBoss:
			g.drawBoss(dst, v, e)
		case EntityLaser:
			v.line(dst, e.X, e.Y, e.X2, e.Y2, LaserGlyph, e.Color)
		case EntityProjectile:
			v.point(dst, e.X, e.Y, projectileGlyph(e.Type), e.Color)
		case EntityPlayer:
			c := e.Color
			if e.Marked {
				c = core.ColorBrightYellow
			}
			if !e.Fading || g.tickCount%6 < 3 {
				v.point(dst, e.X, e.Y, PlayerGlyph, c)
			}
		}
	}

	for _, fx := range g.effects.Recent(f.Time) {
		switch fx.Kind {
		case EffectExplosion, EffectBossDefeat:
			v.point(dst, fx.X, fx.Y, ExplosionGlyph, fx.Color)
		case EffectHit:
			v.point(dst, fx.X, fx.Y, HitGlyph, fx.Color)
		}
	}

	g.drawHUD(dst, f.HUD)
	g.drawOverlay(dst, f.HUD)
}

func (g *Game) collectibleGlyph(key string) rune {
	for k := range collectibleKindCount {
		if k.String() == key {
			return collectibleGlyphs[k]
		}
	}
	return '?'
}

func projectileGlyph(kind string) rune {
	switch kind {
	case ProjectileMeteor.String():
		return MeteorGlyph
	case ProjectileBigMeteor.String():
		return BigMeteorGlyph
	default:
		return BurstGlyph
	}
}

func (g *Game) drawEnemy(dst *core.Screen, v viewport, e EntityView) {
	glyph := '◆'
	if cat, _, err := ParseTemplateKey(e.Type); err == nil {
		glyph = enemyGlyphs[cat]
	}
	c := e.Color
	if e.Frozen {
		glyph = FrozenGlyph
		c = core.ColorCyan
	}
	v.point(dst, e.X, e.Y, glyph, c)
}

func (g *Game) drawBoss(dst *core.Screen, v viewport, e EntityView) {
	c := e.Color
	if e.Marked {
		c = core.ColorBrightWhite
	}
	v.fill(dst, EntityView{X: e.X, Y: e.Y, W: e.W, H: e.H, Color: c}, BossGlyph)
}

func (g *Game) drawHUD(dst *core.Screen, h HUD) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Score %d  Lives %d  Level %d  Stars %d/%d", h.Score, h.Lives, h.Level, h.Stars, h.StarsRequired)
	for _, p := range h.PowerUps {
		if !p.Unlocked {
			continue
		}
		switch {
		case p.Ready:
			fmt.Fprintf(&sb, "  %s READY!", p.Key)
		case p.Active:
			fmt.Fprintf(&sb, "  %s ON", p.Key)
		case p.Cooldown > 0:
			fmt.Fprintf(&sb, "  %s %.0fs", p.Key, math.Ceil(p.Cooldown))
		default:
			fmt.Fprintf(&sb, "  %s READY", p.Key)
		}
	}
	if h.Boss != nil {
		fmt.Fprintf(&sb, "  %s %.0f/%.0f P%d", h.Boss.Name, math.Max(0, h.Boss.Health), h.Boss.MaxHealth, h.Boss.Phase)
	}
	if h.Endless {
		sb.WriteString("  ENDLESS")
	}
	dst.DrawTextColored(0, 0, sb.String(), core.ColorBrightWhite)
}

func (g *Game) drawOverlay(dst *core.Screen, h HUD) {
	mid := dst.Height() / 2
	switch h.State {
	case StatePaused:
		dst.DrawTextCentered(mid, "PAUSED - press P to resume")
	case StateGameOver:
		dst.DrawTextCentered(mid-1, "GAME OVER")
		dst.DrawTextCentered(mid, fmt.Sprintf("Score: %d  Level: %d", h.Score, h.Level))
		dst.DrawTextCentered(mid+1, "Press N to restart")
	case StateVictory:
		dst.DrawTextCentered(mid-1, "VICTORY")
		dst.DrawTextCentered(mid, fmt.Sprintf("Score: %d", h.Score))
		if g.powerState.IsUnlocked(PowerEndlessMode) {
			dst.DrawTextCentered(mid+1, "Enter: continue endless  N: restart")
		} else {
			dst.DrawTextCentered(mid+1, "Press N to restart")
		}
	}
}

// viewport maps world units onto screen cells below the HUD.
type viewport struct {
	sx, sy float64
	w, h   int
}

func newViewport(dst *core.Screen, worldW, worldH float64) viewport {
	w, h := dst.Width(), dst.Height()-hudRows
	v := viewport{w: w, h: h}
	if worldW > 0 {
		v.sx = float64(w) / worldW
	}
	if worldH > 0 {
		v.sy = float64(h) / worldH
	}
	return v
}

func (v viewport) cell(x, y float64) (int, int) {
	return int(x * v.sx), int(y*v.sy) + hudRows
}

func (v viewport) point(dst *core.Screen, x, y float64, r rune, c core.Color) {
	cx, cy := v.cell(x, y)
	if cy < hudRows {
		return
	}
	dst.SetColored(cx, cy, r, c)
}

func (v viewport) fill(dst *core.Screen, e EntityView, r rune) {
	x0, y0 := v.cell(e.X-e.W/2, e.Y-e.H/2)
	x1, y1 := v.cell(e.X+e.W/2, e.Y+e.H/2)
	y0 = max(y0, hudRows)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, r, e.Color)
		}
	}
}

func (v viewport) line(dst *core.Screen, ax, ay, bx, by float64, r rune, c core.Color) {
	x0, y0 := v.cell(ax, ay)
	x1, y1 := v.cell(bx, by)
	steps := max(core.Abs(x1-x0), core.Abs(y1-y0), 1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(float64(x1-x0)*t))
		y := y0 + int(math.Round(float64(y1-y0)*t))
		if y >= hudRows {
			dst.SetColored(x, y, r, c)
		}
	}
}
