package render

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"sort"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/san-kum/motionrender/internal/config"
	"github.com/san-kum/motionrender/internal/mocap"
)

// boxEdges are the 12 edges of the world limits box, as corner indices.
// Corner i has min/max per axis selected by the bits of i.
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Renderer draws skeleton frames of one capture. The world box is
// resolved once at construction, either from configured limits or fitted
// to the data, so every frame of a clip shares the same framing.
type Renderer struct {
	series *mocap.TimeSeries
	graph  *mocap.JointGraph
	cam    *Camera
	style  Style

	width, height  int
	center         mocap.Vec3
	invHalf        float64
	boxMin, boxMax mocap.Vec3

	// opentype faces are not safe for concurrent use; parallel
	// animation workers take the lock to draw text
	faceMu    sync.Mutex
	titleFace font.Face
	labelFace font.Face

	frames  *framePool
	scratch *framePool
}

func New(cap *mocap.Capture, cfg *config.Config) (*Renderer, error) {
	style, err := StyleFromConfig(cfg.Render)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		series: cap.Series,
		graph:  cap.Graph,
		style:  style,
		width:  cfg.Render.Width,
		height: cfg.Render.Height,
		cam: &Camera{
			Elevation: cfg.View.Elevation,
			Azimuth:   cfg.View.Azimuth,
			Distance:  cfg.View.Distance,
			Zoom:      cfg.View.Zoom,
			YUp:       cfg.View.Up == "y",
		},
	}
	if r.cam.Distance <= 0 {
		r.cam.Distance = config.DefaultDistance
	}
	if r.cam.Zoom <= 0 {
		r.cam.Zoom = 1
	}

	if err := r.resolveBox(cfg.View.Limits); err != nil {
		return nil, err
	}
	if err := r.loadFaces(); err != nil {
		return nil, err
	}

	r.frames = newFramePool(image.Rect(0, 0, r.width, r.height))
	if style.Supersample > 1 {
		r.scratch = newFramePool(image.Rect(0, 0, r.width*style.Supersample, r.height*style.Supersample))
	}
	return r, nil
}

// resolveBox fixes the world box: configured limits when present,
// otherwise the data bounds padded by 5% per axis.
func (r *Renderer) resolveBox(limits *config.Limits) error {
	if limits != nil {
		r.boxMin = mocap.Vec3{X: limits.XMin, Y: limits.YMin, Z: limits.ZMin}
		r.boxMax = mocap.Vec3{X: limits.XMax, Y: limits.YMax, Z: limits.ZMax}
	} else {
		min, max := r.series.Bounds()
		if min.X > max.X {
			return fmt.Errorf("render: series has no finite joint positions")
		}
		pad := func(lo, hi float64) (float64, float64) {
			span := hi - lo
			if span == 0 {
				return lo - 0.5, hi + 0.5
			}
			return lo - 0.05*span, hi + 0.05*span
		}
		min.X, max.X = pad(min.X, max.X)
		min.Y, max.Y = pad(min.Y, max.Y)
		min.Z, max.Z = pad(min.Z, max.Z)
		r.boxMin, r.boxMax = min, max
	}

	r.center = r.boxMin.Add(r.boxMax).Scale(0.5)
	span := r.boxMax.Sub(r.boxMin)
	half := math.Max(span.X, math.Max(span.Y, span.Z)) / 2
	if half <= 0 {
		return fmt.Errorf("render: view limits span nothing")
	}
	r.invHalf = 1 / half
	return nil
}

func (r *Renderer) loadFaces() error {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("render: parse font: %v", err)
	}
	minDim := r.width
	if r.height < minDim {
		minDim = r.height
	}
	ss := float64(r.style.Supersample)
	titleSize := math.Max(10, 0.028*float64(minDim)) * ss
	labelSize := math.Max(8, 0.016*float64(minDim)) * ss

	r.titleFace, err = opentype.NewFace(fnt, &opentype.FaceOptions{Size: titleSize, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return fmt.Errorf("render: build title face: %v", err)
	}
	r.labelFace, err = opentype.NewFace(fnt, &opentype.FaceOptions{Size: labelSize, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return fmt.Errorf("render: build label face: %v", err)
	}
	return nil
}

func (r *Renderer) Len() int { return r.series.Len() }

func (r *Renderer) Camera() *Camera { return r.cam }

func (r *Renderer) Size() (int, int) { return r.width, r.height }

func (r *Renderer) Series() *mocap.TimeSeries { return r.series }

func (r *Renderer) Graph() *mocap.JointGraph { return r.graph }

func (r *Renderer) Style() Style { return r.style }

// normalize maps a world point into the unit box the camera expects.
func (r *Renderer) normalize(p mocap.Vec3) mocap.Vec3 {
	return p.Sub(r.center).Scale(r.invHalf)
}

// projectPixel runs the full pipeline from world space to pixel
// coordinates on a w-by-h image.
func (r *Renderer) projectPixel(p mocap.Vec3, w, h int) (float64, float64, float64, bool) {
	if !p.IsValid() {
		return 0, 0, 0, false
	}
	x, y, depth, ok := r.cam.Project(r.normalize(p))
	if !ok {
		return 0, 0, 0, false
	}
	minDim := float64(h)
	if w < h {
		minDim = float64(w)
	}
	unit := minDim / 2.6
	return float64(w)/2 + x*unit, float64(h)/2 - y*unit, depth, true
}

// RenderFrame draws one frame into a fresh image.
func (r *Renderer) RenderFrame(i int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	if err := r.RenderInto(i, img); err != nil {
		return nil, err
	}
	return img, nil
}

// RenderInto draws one frame into img, which must be the renderer's
// frame size. Supersampled renderers draw large and downscale.
func (r *Renderer) RenderInto(i int, img *image.RGBA) error {
	if i < 0 || i >= r.series.Len() {
		return fmt.Errorf("%w: %d (series has %d)", mocap.ErrFrameRange, i, r.series.Len())
	}
	if r.scratch != nil {
		big := r.scratch.Get()
		r.draw(i, big)
		draw.CatmullRom.Scale(img, img.Bounds(), big, big.Bounds(), draw.Src, nil)
		r.scratch.Put(big)
		return nil
	}
	r.draw(i, img)
	return nil
}

// renderPooled is the animation path: the returned image comes from the
// frame pool and goes back via recycle.
func (r *Renderer) renderPooled(i int) (*image.RGBA, error) {
	img := r.frames.Get()
	if err := r.RenderInto(i, img); err != nil {
		r.frames.Put(img)
		return nil, err
	}
	return img, nil
}

func (r *Renderer) recycle(img *image.RGBA) {
	r.frames.Put(img)
}

// Projected is a point mapped onto a viewport. Points behind the
// camera or with missing positions have OK false.
type Projected struct {
	X, Y  float64
	Depth float64
	OK    bool
}

// ProjectFrame maps every joint of frame i onto a w-by-h viewport.
// Image output passes the renderer's own size; text front ends pass
// their cell grid instead.
func (r *Renderer) ProjectFrame(i, w, h int) ([]Projected, error) {
	if i < 0 || i >= r.series.Len() {
		return nil, fmt.Errorf("%w: %d (series has %d)", mocap.ErrFrameRange, i, r.series.Len())
	}
	frame := r.series.Frames[i]
	joints := make([]Projected, len(frame))
	for j, p := range frame {
		x, y, depth, ok := r.projectPixel(p, w, h)
		joints[j] = Projected{x, y, depth, ok}
	}
	return joints, nil
}

// ProjectBox maps the world box onto a w-by-h viewport as edge endpoint
// pairs, dropping edges with an endpoint behind the camera.
func (r *Renderer) ProjectBox(w, h int) [][2]Projected {
	var corners [8]Projected
	for c := 0; c < 8; c++ {
		p := r.boxMin
		if c&1 != 0 {
			p.X = r.boxMax.X
		}
		if c&2 != 0 {
			p.Y = r.boxMax.Y
		}
		if c&4 != 0 {
			p.Z = r.boxMax.Z
		}
		x, y, depth, ok := r.projectPixel(p, w, h)
		corners[c] = Projected{x, y, depth, ok}
	}
	edges := make([][2]Projected, 0, len(boxEdges))
	for _, e := range boxEdges {
		a, b := corners[e[0]], corners[e[1]]
		if a.OK && b.OK {
			edges = append(edges, [2]Projected{a, b})
		}
	}
	return edges
}

func (r *Renderer) draw(i int, img *image.RGBA) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	ss := float64(w) / float64(r.width)

	fill(img, r.style.Background)

	if r.style.ShowBox {
		r.drawBox(img, w, h, ss)
	}

	frame := r.series.Frames[i]
	joints := make([]Projected, len(frame))
	for j, p := range frame {
		x, y, depth, ok := r.projectPixel(p, w, h)
		joints[j] = Projected{x, y, depth, ok}
	}

	// bones first, farthest first, then markers on top
	type bone struct {
		a, b  int
		depth float64
	}
	bones := make([]bone, 0, len(r.graph.Edges))
	for _, e := range r.graph.Edges {
		pa, pb := joints[e[0]], joints[e[1]]
		if pa.OK && pb.OK {
			bones = append(bones, bone{e[0], e[1], (pa.Depth + pb.Depth) / 2})
		}
	}
	sort.Slice(bones, func(x, y int) bool { return bones[x].depth < bones[y].depth })
	for _, bn := range bones {
		pa, pb := joints[bn.a], joints[bn.b]
		drawLine(img, pa.X, pa.Y, pb.X, pb.Y, r.style.LineWidth*ss, r.style.BoneColor)
	}

	order := make([]int, 0, len(joints))
	for j := range joints {
		if joints[j].OK {
			order = append(order, j)
		}
	}
	sort.Slice(order, func(x, y int) bool { return joints[order[x]].Depth < joints[order[y]].Depth })
	for _, j := range order {
		fillCircle(img, joints[j].X, joints[j].Y, r.style.MarkerRadius*ss, r.style.JointColor)
	}

	if r.style.LabelJoints {
		r.faceMu.Lock()
		ascent := r.labelFace.Metrics().Ascent.Ceil()
		for _, j := range order {
			x := int(joints[j].X + (r.style.MarkerRadius+3)*ss)
			y := int(joints[j].Y) + ascent/2
			drawText(img, r.labelFace, x, y, r.series.Joints[j], r.style.TextColor)
		}
		r.faceMu.Unlock()
	}

	if r.style.ShowTitle {
		r.faceMu.Lock()
		ascent := r.titleFace.Metrics().Ascent.Ceil()
		title := fmt.Sprintf("Time: %d", int64(math.Round(r.series.Times[i])))
		drawTextCentered(img, r.titleFace, w/2, int(8*ss)+ascent, title, r.style.TextColor)
		r.faceMu.Unlock()
	}
}

func (r *Renderer) drawBox(img *image.RGBA, w, h int, ss float64) {
	for _, e := range r.ProjectBox(w, h) {
		drawLine(img, e[0].X, e[0].Y, e[1].X, e[1].Y, math.Max(1, ss), r.style.BoxColor)
	}
}

// SavePNG writes an image to a PNG file.
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
