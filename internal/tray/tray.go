// Package tray shows the system tray icon and its menu.
package tray

import (
	_ "embed"
	"log/slog"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
)

//go:embed icon.ico
var iconData []byte

// Tray manages the system tray icon and menu.
type Tray struct {
	title        string
	mirrorURL    string
	onExit       func()
	logger       *slog.Logger
	once         sync.Once
	shuttingDown atomic.Bool
	menuOpen     *systray.MenuItem
	menuExit     *systray.MenuItem
}

// New creates a tray. onExit runs once when "Exit" is clicked. The
// "Open Mirror" item is only shown when mirrorURL is set.
func New(title, mirrorURL string, onExit func(), logger *slog.Logger) *Tray {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tray{
		title:     title,
		mirrorURL: mirrorURL,
		onExit:    onExit,
		logger:    logger,
	}
}

// Run initializes and runs the system tray (blocks until Quit()).
func (t *Tray) Run() {
	systray.Run(t.onReady, func() {
		t.shuttingDown.Store(true)
		t.logger.Debug("System tray exiting")
	})
}

// Quit removes the tray icon and makes Run return.
func (t *Tray) Quit() {
	t.shuttingDown.Store(true)
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetIcon(iconData)
	systray.SetTitle(t.title)
	systray.SetTooltip(t.title)

	if t.mirrorURL != "" {
		t.menuOpen = systray.AddMenuItem("Open Mirror", "Open the remote mirror in a browser")
	}
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")

	go t.handleMenuClicks()

	t.logger.Info("System tray initialized")
}

func (t *Tray) handleMenuClicks() {
	var openCh chan struct{}
	if t.menuOpen != nil {
		openCh = t.menuOpen.ClickedCh
	}
	for {
		select {
		case <-openCh:
			if !t.shuttingDown.Load() {
				t.openBrowser()
			}
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				t.once.Do(t.onExit)
				systray.Quit()
				return
			}
		}
	}
}

func (t *Tray) openBrowser() {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", t.mirrorURL)
	case "darwin":
		cmd = exec.Command("open", t.mirrorURL)
	default:
		cmd = exec.Command("xdg-open", t.mirrorURL)
	}

	if err := cmd.Start(); err != nil {
		t.logger.Warn("Failed to open browser", "url", t.mirrorURL, "error", err)
	}
}
