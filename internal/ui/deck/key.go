package deck

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

var (
	defaultKeyColor = color.NRGBA{R: 28, G: 28, B: 30, A: 255}
	titleColor      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// keyButton is one slot on the virtual surface. On desktop it reports
// discrete down/up edges; a secondary tap (right click, or long touch on
// mobile) is a tap carrying the hold flag.
type keyButton struct {
	widget.BaseWidget

	instance   string
	size       float32
	background *canvas.Rectangle
	face       *canvas.Image
	title      *canvas.Text

	onDown func(instance string)
	onUp   func(instance string)
	onTap  func(instance string, hold bool)
}

func newKeyButton(size float32) *keyButton {
	background := canvas.NewRectangle(defaultKeyColor)
	background.CornerRadius = size / 10

	face := canvas.NewImageFromResource(nil)
	face.FillMode = canvas.ImageFillContain

	title := canvas.NewText("", titleColor)
	title.Alignment = fyne.TextAlignCenter
	title.TextStyle = fyne.TextStyle{Bold: true}

	key := &keyButton{
		size:       size,
		background: background,
		face:       face,
		title:      title,
	}
	key.ExtendBaseWidget(key)
	return key
}

func (key *keyButton) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(key.background, key.face, container.NewCenter(key.title)))
}

func (key *keyButton) MinSize() fyne.Size {
	return fyne.NewSize(key.size, key.size)
}

// setFace shows a rendered image, or the default key look for nil.
func (key *keyButton) setFace(resource fyne.Resource) {
	key.face.Resource = resource
	key.face.Refresh()
}

func (key *keyButton) setTitle(title string) {
	key.title.Text = title
	key.title.Refresh()
}

func (key *keyButton) clear() {
	key.instance = ""
	key.setFace(nil)
	key.setTitle("")
}

func (key *keyButton) MouseDown(event *desktop.MouseEvent) {
	if event.Button != desktop.MouseButtonPrimary || key.instance == "" || key.onDown == nil {
		return
	}
	key.onDown(key.instance)
}

func (key *keyButton) MouseUp(event *desktop.MouseEvent) {
	if event.Button != desktop.MouseButtonPrimary || key.instance == "" || key.onUp == nil {
		return
	}
	key.onUp(key.instance)
}

// Tapped only acts on touch devices; desktop clicks arrive as MouseDown/MouseUp.
func (key *keyButton) Tapped(*fyne.PointEvent) {
	if !fyne.CurrentDevice().IsMobile() || key.instance == "" || key.onTap == nil {
		return
	}
	key.onTap(key.instance, false)
}

func (key *keyButton) TappedSecondary(*fyne.PointEvent) {
	if key.instance == "" || key.onTap == nil {
		return
	}
	key.onTap(key.instance, true)
}
