package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	e := NoopEmbedHooks{}
	e.OnEmbedStart(ctx, "Algorithm2009", 42)
	e.OnEmbedComplete(ctx, "Algorithm2009", time.Second, nil)

	s := NoopSearchHooks{}
	s.OnBudgetExceeded(ctx, 9, 100001, false)

	tg := NoopTanglegramHooks{}
	tg.OnRound(ctx, 1, 3)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "tanglegram")
	c.OnCacheMiss(ctx, "tanglegram")
	c.OnCacheSet(ctx, "tanglegram", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Embed().(NoopEmbedHooks); !ok {
		t.Error("Embed() should return NoopEmbedHooks by default")
	}
	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Search() should return NoopSearchHooks by default")
	}
	if _, ok := Tanglegram().(NoopTanglegramHooks); !ok {
		t.Error("Tanglegram() should return NoopTanglegramHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customEmbed := &testEmbedHooks{}
	SetEmbedHooks(customEmbed)
	if Embed() != customEmbed {
		t.Error("SetEmbedHooks should set custom hooks")
	}

	customSearch := &testSearchHooks{}
	SetSearchHooks(customSearch)
	if Search() != customSearch {
		t.Error("SetSearchHooks should set custom hooks")
	}

	customTanglegram := &testTanglegramHooks{}
	SetTanglegramHooks(customTanglegram)
	if Tanglegram() != customTanglegram {
		t.Error("SetTanglegramHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Embed().(NoopEmbedHooks); !ok {
		t.Error("Reset() should restore NoopEmbedHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testEmbedHooks{}
	SetEmbedHooks(custom)
	SetEmbedHooks(nil)

	if Embed() != custom {
		t.Error("SetEmbedHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testEmbedHooks struct{ NoopEmbedHooks }
type testSearchHooks struct{ NoopSearchHooks }
type testTanglegramHooks struct{ NoopTanglegramHooks }
type testCacheHooks struct{ NoopCacheHooks }
