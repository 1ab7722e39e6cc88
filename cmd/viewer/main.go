package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/annel0/fortress-slice/internal/config"
	"github.com/annel0/fortress-slice/internal/game"
	"github.com/annel0/fortress-slice/internal/logging"
	"github.com/annel0/fortress-slice/internal/metrics"
	"github.com/annel0/fortress-slice/internal/vec"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	panSpeed    = 250.0 // пикселей в секунду при zoom = 1
	zoomStep    = 0.02
	minZoom     = 0.1
	maxZoom     = 8.0
	statsPeriod = 60 // кадров между обновлениями статистики процесса
)

var background = color.RGBA{R: 12, G: 12, B: 16, A: 255}

type viewer struct {
	session  *game.Session
	tileSize int

	camera vec.Vec2Float // центр экрана в мировых пикселях
	zoom   float64

	tile  *ebiten.Image // белый квадрат, окрашивается через ColorScale
	shade *ebiten.Image // чёрный квадрат слоя теней

	stats     *metrics.ProcessStats
	statsLine string
	ticks     int
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config (falls back to FORTRESS_CONFIG)")
	flag.Parse()

	if err := logging.InitDefaultLogger("viewer"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cfg.Metrics.Enabled {
		stop := metrics.Serve(fmt.Sprintf(":%d", cfg.Metrics.GetMetricsPort()), reg)
		defer stop(context.Background())
	}

	w, err := game.GenerateWorld(context.Background(), cfg, m)
	if err != nil {
		log.Fatalf("❌ Ошибка генерации мира: %v", err)
	}
	initial, err := cfg.InitialHeight()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	session, err := game.NewSession(w, initial, m)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	v := newViewer(session, cfg.Viewer.TileSize)

	ebiten.SetWindowSize(cfg.Viewer.WindowWidth, cfg.Viewer.WindowHeight)
	ebiten.SetWindowTitle(cfg.Viewer.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logging.GetViewerLogger().Info("🎮 Просмотр мира %s: Z/X – слой, WASD – камера, Q/E – масштаб", w.ID)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func newViewer(s *game.Session, tileSize int) *viewer {
	tile := ebiten.NewImage(tileSize, tileSize)
	tile.Fill(color.White)
	shade := ebiten.NewImage(tileSize, tileSize)
	shade.Fill(color.Black)

	size := s.World().Size()
	v := &viewer{
		session:  s,
		tileSize: tileSize,
		camera:   vec.Vec2Float{X: float64(size.W*tileSize) / 2, Y: float64(size.D*tileSize) / 2},
		zoom:     1,
		tile:     tile,
		shade:    shade,
	}

	if ps, err := metrics.NewProcessStats(); err == nil {
		v.stats = ps
	} else {
		logging.GetViewerLogger().Warn("Статистика процесса недоступна: %v", err)
	}
	return v
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// Один шаг высоты на нажатие
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		v.session.Apply(game.RaiseHeight)
	} else if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		v.session.Apply(game.LowerHeight)
	}
	v.session.Frame()

	v.moveCamera()
	v.refreshStats()
	return nil
}

func (v *viewer) moveCamera() {
	var dir vec.Vec2Float
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		dir.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		dir.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		dir.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		v.zoom -= zoomStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		v.zoom += zoomStep
	}
	v.zoom = min(max(v.zoom, minZoom), maxZoom)

	dt := 1.0 / float64(ebiten.TPS())
	v.camera = v.camera.Add(dir.Scale(panSpeed * dt / v.zoom))
}

func (v *viewer) refreshStats() {
	v.ticks++
	if v.stats == nil || v.ticks%statsPeriod != 1 {
		return
	}
	snap, err := v.stats.Snapshot()
	if err != nil {
		logging.GetViewerLogger().Debug("Снимок процесса: %v", err)
	}
	v.statsLine = snap.String()
}

// place задаёт преобразование тайла (x, y) в экранные координаты
func (v *viewer) place(op *ebiten.DrawImageOptions, pos vec.Vec2, screenW, screenH int) {
	op.GeoM.Translate(float64(pos.X*v.tileSize)-v.camera.X, float64(pos.Y*v.tileSize)-v.camera.Y)
	op.GeoM.Scale(v.zoom, v.zoom)
	op.GeoM.Translate(float64(screenW)/2, float64(screenH)/2)
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()

	w := v.session.World()
	viewed := v.session.Viewed()

	// Один проход на слой снизу вверх; воздух прозрачен, рисуется только видимая земля
	for layer := range w.LayersBetween(w.Heights().Min, viewed) {
		for t := range layer.All() {
			if !t.Visible || !t.IsTerrain() {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			v.place(op, t.Pos.ToVec2(), sw, sh)
			op.ColorScale.ScaleWithColor(t.Tint())
			screen.DrawImage(v.tile, op)
		}
	}

	// Слой теней поверх ландшафта
	if overlay := v.session.Overlay(); overlay != nil {
		for cell := range overlay.All() {
			if cell.Alpha == 0 {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			v.place(op, cell.Pos, sw, sh)
			op.ColorScale.ScaleAlpha(float32(cell.Alpha) / 255)
			screen.DrawImage(v.shade, op)
		}
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f\nLayer: %d\n%s", ebiten.ActualFPS(), viewed, v.statsLine))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
