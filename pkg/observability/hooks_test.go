package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnResolveStart(ctx, "bukhari-1", 2)
	p.OnResolveComplete(ctx, "bukhari-1", 11, 1, time.Second, nil)
	p.OnDataGap(ctx, "bukhari-1", 0, 9999)
	p.OnBuildComplete(ctx, "bukhari-1", 10, 11, true, time.Millisecond)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "diagram")
	c.OnCacheMiss(ctx, "diagram")
	c.OnCacheSet(ctx, "diagram", 1024)

	r := NoopRepositoryHooks{}
	r.OnFetch(ctx, "sqlite", "narrators", 7, time.Millisecond, nil)
	r.OnFetch(ctx, "mongo", "hadith", 0, time.Millisecond, errors.New("down"))

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "example.org", "/all_rawis.csv")
	h.OnResponse(ctx, "GET", "example.org", "/all_rawis.csv", 200, time.Second)
	h.OnError(ctx, "GET", "example.org", "/all_rawis.csv", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Repository().(NoopRepositoryHooks); !ok {
		t.Error("Repository() should return NoopRepositoryHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customRepo := &testRepositoryHooks{}
	SetRepositoryHooks(customRepo)
	if Repository() != customRepo {
		t.Error("SetRepositoryHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Repository().(NoopRepositoryHooks); !ok {
		t.Error("Reset() should restore NoopRepositoryHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testRepositoryHooks struct{ NoopRepositoryHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
