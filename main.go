package main

import (
	"context"
	"embed"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	wailswindows "github.com/wailsapp/wails/v2/pkg/options/windows"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"reply-overlay/internal/capture"
	"reply-overlay/internal/config"
	"reply-overlay/internal/hotkey"
	"reply-overlay/internal/logutil"
	"reply-overlay/internal/overlay"
	"reply-overlay/internal/position"
	"reply-overlay/internal/prompt"
	"reply-overlay/internal/window"
)

//go:embed all:frontend/dist
var assets embed.FS

// overlayTitle is also used to find the native window handle
const overlayTitle = "Reply Overlay"

// Events sent to the frontend
const (
	EventAnalyzeChat    = "analyze-chat"
	EventAnalyzeError   = "analyze-error"
	EventTriggerAnalyze = "trigger-analyze"
)

// App struct
type App struct {
	ctx      context.Context
	config   *config.Service
	prompt   *prompt.Service
	tracker  window.Tracker
	pipeline *capture.Pipeline
	store    *position.Store
	overlay  *overlay.Service
	hotkey   *hotkey.Listener

	overlayHWND atomic.Uintptr
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{}
}

// OnStartup is called when the app starts up
func (a *App) OnStartup(ctx context.Context) {
	a.ctx = ctx

	// Initialize config service
	configSvc, err := config.New()
	if err != nil {
		fmt.Printf("Failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	a.config = configSvc
	cfg := configSvc.Get()

	logutil.Setup(cfg.EnableFileLogging)
	log.Printf("Config loaded from %s", configSvc.Path())

	// Prompt template lives next to the executable
	promptSvc, err := prompt.New()
	if err != nil {
		log.Printf("Failed to initialize prompt template: %v", err)
	}
	a.prompt = promptSvc

	// Capture pipeline: focused window -> matching candidate -> PNG
	a.tracker = window.NewTracker()
	a.pipeline = capture.NewPipeline(a.tracker, window.NewRegistry(), capture.NewCodec(capture.Options{
		MaxWidth:  cfg.Capture.MaxWidth,
		MaxHeight: cfg.Capture.MaxHeight,
	}))

	a.store = position.New()
	a.overlay = overlay.New(a, a.pipeline, &wailsEmitter{ctx: ctx}, a.store, overlay.Options{
		Presets: overlay.Presets{
			Widget:        overlay.Size{Width: cfg.Widget.Width, Height: cfg.Widget.Height},
			Dialog:        overlay.Size{Width: cfg.Dialog.Width, Height: cfg.Dialog.Height},
			Expanded:      overlay.Size{Width: cfg.Expanded.Width, Height: cfg.Expanded.Height},
			AnchorPadding: overlay.Size{Width: cfg.AnchorPadding.Width, Height: cfg.AnchorPadding.Height},
		},
		SettleDelay: cfg.SettleDelay(),
	})

	// Global hotkey; a bad chord only disables the hotkey
	listener, err := hotkey.New(cfg.Hotkey)
	if err != nil {
		log.Printf("Hotkey disabled: %v", err)
		return
	}
	a.hotkey = listener
	listener.Start(a.onHotkey)
}

// OnDomReady sizes the overlay once the window exists
func (a *App) OnDomReady(ctx context.Context) {
	if err := a.Setup(); err != nil {
		log.Printf("Setup failed: %v", err)
	}
}

// OnShutdown is called when the app is shutting down
func (a *App) OnShutdown(ctx context.Context) {
	if a.hotkey != nil {
		a.hotkey.Stop()
	}
}

func (a *App) onHotkey() {
	runtime.EventsEmit(a.ctx, EventTriggerAnalyze)
	go func() {
		if err := a.Analyze(false); err != nil {
			log.Printf("Hotkey analyze failed: %v", err)
		}
	}()
}

// Locate resolves the overlay window for the controller
func (a *App) Locate() (overlay.Window, error) {
	if a.ctx == nil || !a.overlayAvailable() {
		return nil, overlay.ErrTargetMissing
	}
	return &wailsWindow{app: a}, nil
}

// Setup sizes the overlay as a widget centered on its monitor
func (a *App) Setup() error {
	if a.overlay == nil {
		return overlay.ErrTargetMissing
	}
	return a.overlay.Setup()
}

// Analyze captures the focused window and shows the overlay again,
// as a widget when silent or as a centered dialog otherwise.
func (a *App) Analyze(silent bool) error {
	if a.overlay == nil {
		return overlay.ErrTargetMissing
	}
	return a.overlay.Analyze(a.ctx, silent)
}

// Reset returns the overlay to the widget at its saved position
func (a *App) Reset() error {
	if a.overlay == nil {
		return overlay.ErrTargetMissing
	}
	return a.overlay.Reset()
}

// Expand grows the overlay to the expanded card size
func (a *App) Expand() error {
	if a.overlay == nil {
		return overlay.ErrTargetMissing
	}
	return a.overlay.Expand()
}

// Drag starts an OS interactive move of the overlay
func (a *App) Drag() error {
	if a.overlay == nil {
		return overlay.ErrTargetMissing
	}
	return a.overlay.Drag()
}

// State returns the overlay mode name
func (a *App) State() string {
	if a.overlay == nil {
		return overlay.ModeWidget.String()
	}
	return a.overlay.State().String()
}

// GetPromptTemplate returns the reply prompt, creating prompt.txt if missing
func (a *App) GetPromptTemplate() (string, error) {
	if a.prompt == nil {
		return prompt.DefaultTemplate, nil
	}
	return a.prompt.Template()
}

// GetActiveWindow returns the currently focused window
func (a *App) GetActiveWindow() (window.ActiveInfo, error) {
	if a.tracker == nil {
		return window.ActiveInfo{}, capture.ErrNoActiveWindow
	}
	info, ok := a.tracker.Foreground()
	if !ok {
		return window.ActiveInfo{}, capture.ErrNoActiveWindow
	}
	return info, nil
}

// Quit terminates the process
func (a *App) Quit() {
	log.Printf("Quit requested")
	if a.ctx == nil {
		os.Exit(0)
	}
	runtime.Quit(a.ctx)

	// runtime.Quit can be swallowed if the frontend is wedged
	time.AfterFunc(3*time.Second, func() {
		log.Printf("Forcing exit")
		os.Exit(0)
	})
}

func main() {
	// Create an instance of the app structure
	app := NewApp()

	// Create application with options
	err := wails.Run(&options.App{
		Title:  overlayTitle,
		Width:  overlay.DefaultPresets().Widget.Width,
		Height: overlay.DefaultPresets().Widget.Height,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Frameless:        true,
		AlwaysOnTop:      true,
		DisableResize:    true,
		BackgroundColour: &options.RGBA{R: 0, G: 0, B: 0, A: 0}, // Transparent
		Windows: &wailswindows.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
		},
		OnStartup:  app.OnStartup,
		OnDomReady: app.OnDomReady,
		OnShutdown: app.OnShutdown,
		Bind:       []interface{}{app},
	})

	if err != nil {
		fmt.Printf("Error starting application: %v\n", err)
		os.Exit(1)
	}
}
