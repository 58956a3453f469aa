package observability

import (
	"context"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	NoopPipelineHooks
	compiles int
	renders  int
}

func (h *recordingPipelineHooks) OnCompileStart(context.Context) { h.compiles++ }
func (h *recordingPipelineHooks) OnRenderStart(context.Context, string) {
	h.renders++
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses, sets int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *recordingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestHookRegistration(t *testing.T) {
	defer Reset()
	ctx := context.Background()

	ph := &recordingPipelineHooks{}
	ch := &recordingCacheHooks{}
	SetPipelineHooks(ph)
	SetCacheHooks(ch)

	Pipeline().OnCompileStart(ctx)
	Pipeline().OnCompileComplete(ctx, 3, 6, 12, time.Millisecond, nil)
	Pipeline().OnRenderStart(ctx, "svg")
	Cache().OnCacheMiss(ctx, "render")
	Cache().OnCacheSet(ctx, "render", 128)
	Cache().OnCacheHit(ctx, "render")

	if ph.compiles != 1 || ph.renders != 1 {
		t.Errorf("pipeline hooks = %+v", ph)
	}
	if ch.hits != 1 || ch.misses != 1 || ch.sets != 1 {
		t.Errorf("cache hooks = %+v", ch)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	defer Reset()

	ph := &recordingPipelineHooks{}
	SetPipelineHooks(ph)
	SetPipelineHooks(nil)

	Pipeline().OnCompileStart(context.Background())
	if ph.compiles != 1 {
		t.Errorf("nil registration replaced the active hooks: %+v", ph)
	}
}

func TestReset(t *testing.T) {
	SetPipelineHooks(&recordingPipelineHooks{})
	SetCacheHooks(&recordingCacheHooks{})
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
}
