package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ayusman/kathak/internal/app"
	"github.com/ayusman/kathak/internal/server"
	"github.com/ayusman/kathak/internal/store"
	"github.com/ayusman/kathak/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cameraID := flag.Int("camera", 0, "camera device ID")
	noTray := flag.Bool("no-tray", false, "run without the menu bar icon")
	flag.Parse()

	fmt.Println("Kathak - Gesture Game Control")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".kathak")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "kathak.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	a, err := app.New(app.Config{
		Store:     st,
		PluginDir: findPluginDir(dataDir),
		CameraID:  *cameraID,
		Gesture:   app.LoadGestureConfig(st.Settings()),
	})
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	if err := a.LoadProfiles(); err != nil {
		log.Fatalf("Failed to load profiles: %v", err)
	}
	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}

	if err := a.Start(); err != nil {
		log.Printf("Camera pipeline not started: %v", err)
	}
	defer a.Stop()

	webDir := findWebDir(dataDir)
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		App:       a,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if *noTray {
		select {}
	}

	runTray(a, *addr)
}

// runTray wires the menu bar to the app and blocks until quit.
func runTray(a *app.App, addr string) {
	var names []string
	for _, p := range a.Profiles().List() {
		names = append(names, p.Name)
	}

	t := tray.New(names, a.Profiles().ActiveName())
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnProfileSelect(func(name string) {
		if err := a.ActivateProfile(name); err != nil {
			log.Printf("Failed to activate profile %q: %v", name, err)
		}
	})
	t.OnSettings(func() {
		openBrowser("http://localhost" + addr)
	})
	t.OnQuit(func() {
		a.Stop()
	})

	// Mirror confirmed commands into the menu. The event channel itself
	// feeds the WebSocket broadcaster.
	a.OnEvent(func(ev app.Event) {
		t.SetLastAction(string(ev.Action))
	})

	t.Run()
}

// findPluginDir returns the injector plugin directory, preferring a
// local ./plugins tree during development over ~/.kathak/plugins.
func findPluginDir(dataDir string) string {
	for _, p := range []string{"plugins", "../plugins"} {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if absPath, err := filepath.Abs(p); err == nil {
				return absPath
			}
			return p
		}
	}
	return filepath.Join(dataDir, "plugins")
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.kathak/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	for _, p := range []string{"web", "../web", "../../web"} {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if absPath, err := filepath.Abs(p); err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		log.Printf("Open %s in your browser", url)
		return
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
