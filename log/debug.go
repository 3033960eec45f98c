// Package log provides file-backed loggers plus a debug mode with overlay
// traces and render profiling. Enable debug mode with NOTEDECK_DEBUG=1.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// DebugEnvVar turns on debug logging when set to "1".
const DebugEnvVar = "NOTEDECK_DEBUG"

var (
	DebugEnabled bool
	DebugLog     *log.Logger
	debugLogFile *os.File
)

var debugLogFileName = filepath.Join(os.TempDir(), "notedeck-debug.log")

// slowFrame is the 60fps frame budget.
const slowFrame = 16 * time.Millisecond

// frameWindow is the number of recent frames kept for stats.
const frameWindow = 100

// InitDebug initializes debug logging if NOTEDECK_DEBUG=1 is set.
func InitDebug() {
	if os.Getenv(DebugEnvVar) != "1" {
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugEnabled = true

	f, err := os.OpenFile(debugLogFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		ErrorLog.Printf("could not open debug log file: %s", err)
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugLog = log.New(f, "DEBUG:", log.Ldate|log.Ltime|log.Lmicroseconds)
	debugLogFile = f

	DebugLog.Printf("debug log: %s", debugLogFileName)
}

// CloseDebug closes the debug log file.
func CloseDebug() {
	if debugLogFile == nil {
		return
	}
	_ = debugLogFile.Close()
	debugLogFile = nil
	DebugLog = log.New(io.Discard, "", 0)
}

func debugf(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf(format, v...)
	}
}

// Debug logs a debug message if debug mode is enabled.
func Debug(format string, v ...interface{}) {
	debugf(format, v...)
}

// OverlayTrace logs overlay lifecycle and placement events.
func OverlayTrace(overlay, format string, v ...interface{}) {
	if !DebugEnabled {
		return
	}
	debugf("[OVERLAY:%s] %s", overlay, fmt.Sprintf(format, v...))
}

// LayoutTrace logs layout computation events.
func LayoutTrace(format string, v ...interface{}) {
	debugf("[LAYOUT] "+format, v...)
}

// InputTrace logs input handling events.
func InputTrace(format string, v ...interface{}) {
	debugf("[INPUT] "+format, v...)
}

// RenderTrace logs render events.
func RenderTrace(component, format string, v ...interface{}) {
	if !DebugEnabled {
		return
	}
	debugf("[RENDER:%s] %s", component, fmt.Sprintf(format, v...))
}

// RenderProfiler tracks rendering performance metrics.
type RenderProfiler struct {
	mu           sync.RWMutex
	components   map[string]*ComponentMetrics
	frameCount   int64
	totalTime    time.Duration
	frameTimings []time.Duration
}

// ComponentMetrics tracks metrics for a single component.
type ComponentMetrics struct {
	Name        string
	RenderCount int64
	TotalTime   time.Duration
	MinTime     time.Duration
	MaxTime     time.Duration
}

var profiler = newRenderProfiler()

func newRenderProfiler() *RenderProfiler {
	return &RenderProfiler{
		components:   make(map[string]*ComponentMetrics),
		frameTimings: make([]time.Duration, 0, frameWindow),
	}
}

// GetProfiler returns the global render profiler.
func GetProfiler() *RenderProfiler {
	return profiler
}

// StartRender begins timing a component render and returns the function that
// stops the clock.
func (p *RenderProfiler) StartRender(component string) func() {
	if !DebugEnabled {
		return func() {}
	}

	start := time.Now()
	return func() {
		p.recordRender(component, time.Since(start))
	}
}

func (p *RenderProfiler) recordRender(component string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	metrics, ok := p.components[component]
	if !ok {
		metrics = &ComponentMetrics{
			Name:    component,
			MinTime: elapsed,
			MaxTime: elapsed,
		}
		p.components[component] = metrics
	}

	metrics.RenderCount++
	metrics.TotalTime += elapsed
	if elapsed < metrics.MinTime {
		metrics.MinTime = elapsed
	}
	if elapsed > metrics.MaxTime {
		metrics.MaxTime = elapsed
	}
}

// RecordFrame records a complete frame render.
func (p *RenderProfiler) RecordFrame(elapsed time.Duration) {
	if !DebugEnabled {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	p.totalTime += elapsed

	if len(p.frameTimings) >= frameWindow {
		p.frameTimings = p.frameTimings[1:]
	}
	p.frameTimings = append(p.frameTimings, elapsed)

	if elapsed > slowFrame {
		debugf("SLOW FRAME: %v", elapsed)
	}
}

// GetStats returns a summary of render statistics.
func (p *RenderProfiler) GetStats() string {
	if !DebugEnabled {
		return ""
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("\n=== Render Profile ===\n")
	sb.WriteString(fmt.Sprintf("Total frames: %d\n", p.frameCount))

	if p.frameCount > 0 {
		avgFrame := p.totalTime / time.Duration(p.frameCount)
		sb.WriteString(fmt.Sprintf("Avg frame time: %v\n", avgFrame))
	}

	sb.WriteString("\n--- Components ---\n")

	sorted := make([]*ComponentMetrics, 0, len(p.components))
	for _, m := range p.components {
		sorted = append(sorted, m)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TotalTime > sorted[j].TotalTime
	})

	for _, m := range sorted {
		avg := m.TotalTime / time.Duration(m.RenderCount)
		sb.WriteString(fmt.Sprintf("  %s: count=%d total=%v avg=%v min=%v max=%v\n",
			m.Name, m.RenderCount, m.TotalTime, avg, m.MinTime, m.MaxTime))
	}

	return sb.String()
}

// LogStats logs the current render statistics.
func (p *RenderProfiler) LogStats() {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Print(p.GetStats())
	}
}

// Reset clears all profiling data.
func (p *RenderProfiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.components = make(map[string]*ComponentMetrics)
	p.frameCount = 0
	p.totalTime = 0
	p.frameTimings = make([]time.Duration, 0, frameWindow)
}

// ComponentTrace logs component lifecycle events relative to its start.
type ComponentTrace struct {
	component string
	startTime time.Time
}

// TraceComponent creates a new component trace. It returns nil when debug is
// off; a nil trace is safe to use.
func TraceComponent(component string) *ComponentTrace {
	if !DebugEnabled {
		return nil
	}
	return &ComponentTrace{
		component: component,
		startTime: time.Now(),
	}
}

// Event logs a component event.
func (t *ComponentTrace) Event(event string, details ...interface{}) {
	if t == nil || !DebugEnabled || DebugLog == nil {
		return
	}

	elapsed := time.Since(t.startTime)
	if len(details) > 0 {
		DebugLog.Printf("[%s] %s (+%v): %v", t.component, event, elapsed, details)
	} else {
		DebugLog.Printf("[%s] %s (+%v)", t.component, event, elapsed)
	}
}
