package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag"

// filteringHandler drops records by tag, package or file before the base handler sees them.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
	tag         string // tag bound through WithAttrs
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{
		baseHandler: base,
		cfg:         cfg,
	}
}

// Enabled defers to the base handler.
func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

func foundInSet(set map[string]struct{}, key string) bool {
	if set == nil {
		return false
	}
	_, found := set[key]
	return found
}

// allowed applies the enabled/disabled pair for one dimension.
func allowed(enabled, disabled map[string]struct{}, value string) bool {
	value = strings.ToLower(value)
	if foundInSet(disabled, value) {
		return false
	}
	if enabled != nil && !foundInSet(enabled, value) {
		return false
	}
	return true
}

// recordSource resolves the package directory and file of a record.
func recordSource(r slog.Record) (pkg, file string, ok bool) {
	if r.PC == 0 {
		return "", "", false
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "", "", false
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File), true
}

// Handle applies the filters and forwards surviving records.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}

	if pkg, file, ok := recordSource(r); ok {
		if !allowed(h.cfg.enabledPackagesSet, h.cfg.disabledPackagesSet, pkg) {
			h.trace("package %q filtered: %s", pkg, r.Message)
			return nil
		}
		if !allowed(h.cfg.enabledFilesSet, h.cfg.disabledFilesSet, file) {
			h.trace("file %q filtered: %s", file, r.Message)
			return nil
		}
	}

	tag := h.tag
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = a.Value.String()
			return false
		}
		return true
	})

	if tag == "" {
		// Untagged records are dropped only when a tag allow-list exists.
		if h.cfg.enabledTagsSet != nil {
			h.trace("untagged record filtered: %s", r.Message)
			return nil
		}
	} else if !allowed(h.cfg.enabledTagsSet, h.cfg.disabledTagsSet, tag) {
		h.trace("tag %q filtered: %s", tag, r.Message)
		return nil
	}

	return h.baseHandler.Handle(ctx, r)
}

func (h *filteringHandler) trace(format string, args ...interface{}) {
	if debugFilter {
		fmt.Fprintf(os.Stderr, "[FILTER] "+format+"\n", args...)
	}
}

// WithAttrs returns a new handler with attributes added.
func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
	next.tag = h.tag
	for _, a := range attrs {
		if a.Key == tagKey {
			next.tag = a.Value.String()
		}
	}
	return next
}

// WithGroup returns a new handler with a group added.
func (h *filteringHandler) WithGroup(name string) slog.Handler {
	next := newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
	next.tag = h.tag
	return next
}
