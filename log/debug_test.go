package log

import (
	"strings"
	"testing"
	"time"
)

func TestDebugDisabledByDefault(t *testing.T) {
	DebugEnabled = false
	DebugLog = nil

	t.Setenv(DebugEnvVar, "")
	InitDebug()

	if DebugEnabled {
		t.Error("Debug should be disabled by default")
	}
	if DebugLog == nil {
		t.Error("DebugLog should be a no-op logger, not nil")
	}
}

func TestDebugEnabledWithEnvVar(t *testing.T) {
	DebugEnabled = false
	DebugLog = nil

	t.Setenv(DebugEnvVar, "1")

	InitDebug()
	defer func() {
		CloseDebug()
		DebugEnabled = false
	}()

	if !DebugEnabled {
		t.Errorf("Debug should be enabled with %s=1", DebugEnvVar)
	}
	if DebugLog == nil {
		t.Error("DebugLog should be initialized")
	}
}

func TestDebugFunction(t *testing.T) {
	DebugEnabled = false
	DebugLog = nil
	Debug("test message %s", "arg")

	DebugEnabled = true
	DebugLog = nil
	Debug("test message %s", "arg")
	DebugEnabled = false
}

func TestRenderProfiler(t *testing.T) {
	profiler.Reset()
	defer func() { DebugEnabled = false }()

	t.Run("StartRender returns noop when disabled", func(t *testing.T) {
		DebugEnabled = false
		done := profiler.StartRender("test")
		done()

		if len(profiler.components) != 0 {
			t.Error("Should not record when disabled")
		}
	})

	t.Run("StartRender records when enabled", func(t *testing.T) {
		DebugEnabled = true
		profiler.Reset()

		done := profiler.StartRender("exportMenu")
		time.Sleep(1 * time.Millisecond)
		done()

		metrics := profiler.components["exportMenu"]
		if metrics == nil {
			t.Fatal("Expected metrics for exportMenu")
		}
		if metrics.RenderCount != 1 {
			t.Errorf("Expected render count 1, got %d", metrics.RenderCount)
		}
		if metrics.TotalTime < time.Millisecond {
			t.Errorf("Expected total time >= 1ms, got %v", metrics.TotalTime)
		}
	})

	t.Run("multiple renders accumulate", func(t *testing.T) {
		DebugEnabled = true
		profiler.Reset()

		for i := 0; i < 5; i++ {
			done := profiler.StartRender("noteList")
			done()
		}

		if got := profiler.components["noteList"].RenderCount; got != 5 {
			t.Errorf("Expected render count 5, got %d", got)
		}
	})
}

func TestRecordFrameRollingWindow(t *testing.T) {
	profiler.Reset()
	DebugEnabled = true
	defer func() { DebugEnabled = false }()

	profiler.RecordFrame(10 * time.Millisecond)
	profiler.RecordFrame(20 * time.Millisecond)

	if profiler.frameCount != 2 {
		t.Errorf("Expected frame count 2, got %d", profiler.frameCount)
	}
	if profiler.totalTime != 30*time.Millisecond {
		t.Errorf("Expected total time 30ms, got %v", profiler.totalTime)
	}

	for i := 0; i < 150; i++ {
		profiler.RecordFrame(time.Millisecond)
	}
	if len(profiler.frameTimings) != frameWindow {
		t.Errorf("Expected %d frame timings, got %d", frameWindow, len(profiler.frameTimings))
	}
}

func TestGetStats(t *testing.T) {
	profiler.Reset()
	DebugEnabled = true
	defer func() { DebugEnabled = false }()

	profiler.RecordFrame(10 * time.Millisecond)
	done := profiler.StartRender("footer")
	done()

	stats := profiler.GetStats()
	if !strings.Contains(stats, "Render Profile") {
		t.Error("Expected 'Render Profile' in stats")
	}
	if !strings.Contains(stats, "footer") {
		t.Error("Expected 'footer' in stats")
	}
}

func TestComponentTrace(t *testing.T) {
	DebugEnabled = false
	if trace := TraceComponent("menu"); trace != nil {
		t.Error("Expected nil trace when disabled")
	}

	DebugEnabled = true
	defer func() { DebugEnabled = false }()
	trace := TraceComponent("menu")
	if trace == nil {
		t.Fatal("Expected non-nil trace when enabled")
	}

	DebugLog = nil
	trace.Event("open")
	trace.Event("placed", "above", 3)
}

func TestTraceHelpers(t *testing.T) {
	DebugEnabled = false
	DebugLog = nil

	OverlayTrace("menu", "placed %s", "above")
	LayoutTrace("test %s", "arg")
	RenderTrace("component", "test %s", "arg")
	InputTrace("test %s", "arg")

	DebugEnabled = true
	DebugLog = nil

	OverlayTrace("menu", "placed %s", "above")
	LayoutTrace("test %s", "arg")
	RenderTrace("component", "test %s", "arg")
	InputTrace("test %s", "arg")
	DebugEnabled = false
}
