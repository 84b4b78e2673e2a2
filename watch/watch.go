// Package watch reruns the build when source files change.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// Options selects which files trigger a rebuild.
type Options struct {
	Dir       string   // directory to watch, not recursive
	Extension string   // markup extension, e.g. ".mmd"
	Extra     []string // further base names that trigger a rebuild
	Debounce  time.Duration
}

func (o *Options) relevant(fn string) bool {
	bn := filepath.Base(fn)
	if strings.EqualFold(filepath.Ext(bn), o.Extension) {
		return true
	}
	for _, x := range o.Extra {
		if x == bn {
			return true
		}
	}
	return false
}

// Watch calls rebuild once per burst of relevant changes until ctx is
// cancelled. Rebuild errors are logged; they do not stop watching.
func Watch(ctx context.Context, o Options, rebuild func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err = w.Add(o.Dir); err != nil {
		return err
	}
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}

	log.Printf("watching %s\n", o.Dir)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			log.Printf("watch stopped\n")
			return nil

		case <-fire:
			fire = nil
			if err := rebuild(ctx); err != nil {
				log.Errorf("rebuild failed: %v\n", err)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 || !o.relevant(ev.Name) {
				continue
			}
			log.Debugf("changed: %s (%s)\n", ev.Name, ev.Op)
			if timer == nil {
				timer = time.NewTimer(o.Debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(o.Debounce)
			}
			fire = timer.C

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watcher error: %v\n", werr)
		}
	}
}
