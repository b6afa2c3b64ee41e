package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/themix/internal/image"
)

const defaultDebounce = 500 * time.Millisecond

func newWatchCmd(g *globalOptions) *cobra.Command {
	opts := &generateOptions{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <image> <theme-name>",
		Short: "Regenerate a theme whenever the wallpaper changes",
		Long: `Generate a theme, then regenerate it each time the wallpaper file changes.

If the image is a symlink, both the link and its target are watched, so
repointing the link at a new wallpaper rebuilds the theme from the new image.
Stop with Ctrl-C.

Example:
  themix watch ~/.config/wallpaper current`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, g, opts, debounce, args[0], args[1])
		},
	}

	addGenerateFlags(cmd.Flags(), opts)
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "quiet period after a change before regenerating")

	return cmd
}

func runWatch(cmd *cobra.Command, g *globalOptions, opts *generateOptions, debounce time.Duration, imagePath, name string) error {
	if image.IsRemote(imagePath) {
		return errors.New("watch requires a local image")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := newThemeBuilder(cmd, g, opts)
	if err != nil {
		return err
	}

	res, err := b.build(ctx, imagePath, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(b.out, "Theme '%s' created at %s\n", name, res.dir)

	w, err := newWallpaperWatcher(imagePath, b.logger.Named("watch"))
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintf(b.out, "Watching %s for changes...\n", imagePath)
	return w.run(ctx, debounce, func() {
		res, err := b.build(ctx, imagePath, name)
		if err != nil {
			b.logger.Error("regeneration failed", "error", err)
			return
		}
		fmt.Fprintf(b.out, "Theme '%s' updated at %s\n", name, res.dir)
	})
}

// wallpaperWatcher reports changes to an image path and, when it is a
// symlink, to the file it points at. Parent directories are watched so
// editors that replace files by rename are seen too.
type wallpaperWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	targets map[string]struct{}
	dirs    map[string]struct{}
	logger  hclog.Logger
}

func newWallpaperWatcher(path string, logger hclog.Logger) (*wallpaperWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &wallpaperWatcher{
		path:    abs,
		watcher: fw,
		targets: make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
		logger:  logger,
	}
	if err := w.refresh(); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// watchTargets returns path and, if path is a symlink, its resolved target.
func watchTargets(path string) []string {
	targets := []string{filepath.Clean(path)}
	if resolved, err := filepath.EvalSymlinks(path); err == nil && resolved != targets[0] {
		targets = append(targets, resolved)
	}
	return targets
}

// refresh re-resolves the targets and watches any new parent directories.
func (w *wallpaperWatcher) refresh() error {
	clear(w.targets)
	for _, t := range watchTargets(w.path) {
		w.targets[t] = struct{}{}

		dir := filepath.Dir(t)
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
		w.logger.Debug("watching directory", "dir", dir)
	}
	return nil
}

func (w *wallpaperWatcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	_, ok := w.targets[filepath.Clean(ev.Name)]
	return ok
}

// run calls rebuild once per burst of relevant events, after debounce of
// quiet. It returns when ctx is cancelled.
func (w *wallpaperWatcher) run(ctx context.Context, debounce time.Duration, rebuild func()) error {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("wallpaper changed", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-timer.C:
			rebuild()
			if err := w.refresh(); err != nil {
				w.logger.Warn("failed to follow wallpaper link", "error", err)
			}
		}
	}
}

// Close stops watching.
func (w *wallpaperWatcher) Close() error {
	return w.watcher.Close()
}
