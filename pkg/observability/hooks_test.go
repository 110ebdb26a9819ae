package observability

import (
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	started   []string
	completed []string
	fallbacks []string
}

func (r *recordingPipelineHooks) OnStageStart(stage string) {
	r.started = append(r.started, stage)
}

func (r *recordingPipelineHooks) OnStageComplete(stage string, _ time.Duration) {
	r.completed = append(r.completed, stage)
}

func (r *recordingPipelineHooks) OnFallback(reason string) {
	r.fallbacks = append(r.fallbacks, reason)
}

func TestSetPipelineHooks(t *testing.T) {
	t.Cleanup(func() { SetPipelineHooks(NoopPipelineHooks{}) })

	rec := &recordingPipelineHooks{}
	SetPipelineHooks(rec)

	Pipeline().OnStageStart(StageSkeleton)
	Pipeline().OnStageComplete(StageSkeleton, time.Millisecond)
	Pipeline().OnFallback("short path")

	if len(rec.started) != 1 || rec.started[0] != StageSkeleton {
		t.Errorf("started = %v, want [%s]", rec.started, StageSkeleton)
	}
	if len(rec.completed) != 1 {
		t.Errorf("completed = %v, want one entry", rec.completed)
	}
	if len(rec.fallbacks) != 1 || rec.fallbacks[0] != "short path" {
		t.Errorf("fallbacks = %v, want [short path]", rec.fallbacks)
	}
}

func TestSetPipelineHooksNil(t *testing.T) {
	t.Cleanup(func() { SetPipelineHooks(NoopPipelineHooks{}) })

	SetPipelineHooks(nil)
	if Pipeline() == nil {
		t.Fatal("Pipeline() returned nil after SetPipelineHooks(nil)")
	}
	// Must not panic.
	Pipeline().OnStageStart(StageMask)
}

func TestDefaultHooksAreNoop(t *testing.T) {
	// The defaults must be callable without registration.
	Pipeline().OnStageComplete(StageWalk, 0)
	Cache().OnCacheHit("skeleton")
	Cache().OnCacheMiss("skeleton")
	Cache().OnCacheSet("skeleton", 128)
}
