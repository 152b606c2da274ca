// internal/app/app.go
package app

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/mainloop"
	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/notify"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/ui/alert"
	"github.com/llehouerou/reel/internal/ui/surface"
	"github.com/llehouerou/reel/internal/ui/widget"
)

// Options configures a Model.
type Options struct {
	Backend  media.Backend
	Loop     *mainloop.Loop
	Source   string
	SeekStep float64
	// Notifier mirrors error alerts as desktop notifications. Nil
	// disables them.
	Notifier notify.Notifier
	Log      logrus.FieldLogger
}

// Model is the root bubbletea model: the playback screen.
type Model struct {
	Controller *playback.Controller
	Loop       *mainloop.Loop
	Surface    *surface.Surface
	Transport  *widget.Transport
	Alerts     *alert.Model
	Keys       KeyMap
	Help       help.Model
	SeekStep   float64
	Width      int
	Height     int
	Quitting   bool

	alerter *alerter
	log     logrus.FieldLogger
}

// New builds the screen around opts.Backend. Playback starts with the
// first message the program delivers.
func New(opts Options) Model {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.SeekStep <= 0 {
		opts.SeekStep = config.DefaultSeekStep
	}

	m := Model{
		Loop:      opts.Loop,
		Surface:   surface.New(),
		Transport: widget.NewTransport(),
		Alerts:    alert.New(),
		Keys:      DefaultKeyMap(),
		Help:      help.New(),
		SeekStep:  opts.SeekStep,
		log:       opts.Log,
	}
	m.alerter = &alerter{popup: m.Alerts, log: opts.Log}
	if opts.Notifier != nil {
		m.alerter.desktop = notify.NewErrors(opts.Notifier)
	}
	m.Controller = playback.New(opts.Backend, opts.Loop, playback.View{
		Surface:   m.Surface,
		Transport: m.Transport,
		Alerts:    m.alerter,
	}, opts.Source)
	m.Controller.SetLogger(opts.Log)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(appearCmd, m.Loop.Listen())
}
