package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/husonlab/dendroscope3-sub003/pkg/cache"
	"github.com/husonlab/dendroscope3-sub003/pkg/embed"
	"github.com/husonlab/dendroscope3-sub003/pkg/errors"
	nio "github.com/husonlab/dendroscope3-sub003/pkg/io"
	"github.com/husonlab/dendroscope3-sub003/pkg/observability"
	"github.com/husonlab/dendroscope3-sub003/pkg/taxa"
)

const hybridNewick = "((A,(C)#H1),(#H1,B));"

// execute runs the root command with args and returns what it wrote to
// its output stream.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeInput(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestEmbedCommandStdout(t *testing.T) {
	path := writeInput(t, "hybrid.nwk", hybridNewick)

	out, err := execute(t, "embed", path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, ";\n"), "newick output %q", out)

	n, err := nio.ReadNewick(strings.NewReader(out))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, n.Taxa())
	assert.Len(t, n.Reticulations(), 1)

	out, err = execute(t, "embed", "--format", "json", "--strategy", embed.AlgorithmLSA, path)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), "json output %q", out)
}

func TestEmbedCommandOutputFiles(t *testing.T) {
	path := writeInput(t, "hybrid.nwk", hybridNewick)

	for _, name := range []string{"out.json", "out.nwk", "out.dot"} {
		t.Run(name, func(t *testing.T) {
			target := filepath.Join(t.TempDir(), name)
			_, err := execute(t, "embed", "-o", target, path)
			require.NoError(t, err)

			data, err := os.ReadFile(target)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
			if filepath.Ext(name) == ".dot" {
				assert.Contains(t, string(data), "digraph")
			} else {
				n, err := nio.Import(target)
				require.NoError(t, err)
				assert.ElementsMatch(t, []string{"A", "B", "C"}, n.Taxa())
			}
		})
	}
}

func TestEmbedCommandErrors(t *testing.T) {
	path := writeInput(t, "hybrid.nwk", hybridNewick)
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown strategy", []string{"embed", "--strategy", "Fastest", path}, errors.ErrCodeInvalidStrategy},
		{"unknown format", []string{"embed", "--format", "nexus", path}, errors.ErrCodeUnsupported},
		{"unknown extension", []string{"embed", "-o", filepath.Join(dir, "out.png"), path}, errors.ErrCodeUnsupported},
		{"missing input", []string{"embed", filepath.Join(dir, "missing.nwk")}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestEmbedCommandConfigStrategy(t *testing.T) {
	cfg := writeConfig(t, "[embed]\nstrategy = \"AlgorithmLSA\"\n")

	out, err := execute(t, "--config", cfg, "strategies")
	require.NoError(t, err)

	var marked []string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "(default)") {
			marked = append(marked, strings.Fields(line)[0])
		}
	}
	assert.Equal(t, []string{embed.AlgorithmLSA}, marked)
}

func TestStrategiesCommand(t *testing.T) {
	out, err := execute(t, "strategies")
	require.NoError(t, err)
	for _, name := range embed.Names() {
		assert.Contains(t, out, name)
	}
	assert.Equal(t, 1, strings.Count(out, "(default)"))
}

func TestTanglegramCommand(t *testing.T) {
	left := writeInput(t, "left.nwk", "((A,B),(C,(D,E)));")
	right := writeInput(t, "right.nwk", "(((E,D),C),(B,A));")
	result := filepath.Join(t.TempDir(), "result.json")
	drawing := filepath.Join(t.TempDir(), "right.dot")

	_, err := execute(t, "tanglegram", "--no-cache", "-o", result, "--out2", drawing, left, right)
	require.NoError(t, err)

	data, err := os.ReadFile(result)
	require.NoError(t, err)
	var out tanglegramOutput
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, 0, out.Crossings)
	assert.Equal(t, out.Orders[0], out.Orders[1])
	assert.Len(t, out.Orders[0], 5)

	assert.FileExists(t, drawing)
}

func TestTanglegramCommandCorrespondence(t *testing.T) {
	hosts := writeInput(t, "hosts.nwk", "((H1,H2),(H3,H4));")
	parasites := writeInput(t, "parasites.nwk", "((P4,P3),(P2,P1));")
	links := writeInput(t, "links.toml", "H1 = [\"P1\"]\nH2 = [\"P2\"]\nH3 = [\"P3\"]\nH4 = [\"P4\", \"P3\"]\n")
	result := filepath.Join(t.TempDir(), "result.json")

	_, err := execute(t, "tanglegram", "--no-cache", "--correspondence", links, "-o", result, hosts, parasites)
	require.NoError(t, err)

	data, err := os.ReadFile(result)
	require.NoError(t, err)
	var out tanglegramOutput
	require.NoError(t, json.Unmarshal(data, &out))
	corr := map[string][]string{"H1": {"P1"}, "H2": {"P2"}, "H3": {"P3"}, "H4": {"P4", "P3"}}
	assert.Equal(t, taxa.ManyToManyCrossingCount(out.Orders[0], out.Orders[1], corr), out.Crossings)

	_, err = execute(t, "tanglegram", "--no-cache", "--correspondence", filepath.Join(t.TempDir(), "absent.toml"), hosts, parasites)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "error = %v", err)
}

func TestTanglegramCommandArgs(t *testing.T) {
	left := writeInput(t, "left.nwk", "((A,B),C);")
	_, err := execute(t, "tanglegram", left)
	assert.Error(t, err)
}

// countingCache records traffic to an inner cache.
type countingCache struct {
	cache.Cache
	hits, sets int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if ok {
		c.hits++
	}
	return data, ok, err
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	return c.Cache.Set(ctx, key, data, ttl)
}

func TestTanglegramCaching(t *testing.T) {
	left := writeInput(t, "left.nwk", "((A,(B)#H1),((#H1,C),D));")
	right := writeInput(t, "right.nwk", "((D,C),(B,A));")

	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	store := &countingCache{Cache: fc}

	c := New(io.Discard, LogInfo)
	ctx := withLogger(context.Background(), c.Logger)
	opts := tanglegramOptions{MaxRounds: embed.DefaultMaxRounds}
	paths := [2]string{left, right}

	first := filepath.Join(t.TempDir(), "first.json")
	opts.Output = first
	require.NoError(t, c.runTanglegram(ctx, store, paths, opts))
	assert.Equal(t, 1, store.sets)
	assert.Equal(t, 0, store.hits)

	second := filepath.Join(t.TempDir(), "second.json")
	opts.Output = second
	require.NoError(t, c.runTanglegram(ctx, store, paths, opts))
	assert.Equal(t, 1, store.sets, "a cached result is not recomputed")
	assert.Equal(t, 1, store.hits)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))

	opts.Fast = true
	require.NoError(t, c.runTanglegram(ctx, store, paths, opts))
	assert.Equal(t, 2, store.sets, "different settings use a different key")

	opts.Correspondence = writeInput(t, "links.json", `{"A": ["A"], "B": ["B"], "C": ["C"], "D": ["D"]}`)
	require.NoError(t, c.runTanglegram(ctx, store, paths, opts))
	assert.Equal(t, 3, store.sets, "a correspondence uses a different key")
}

func TestLookupTanglegramCorruptEntry(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, fc.Set(ctx, "tanglegram:x", []byte("not json"), 0))

	_, ok := lookupTanglegram(ctx, fc, "tanglegram:x", New(io.Discard, LogInfo).Logger)
	assert.False(t, ok)
}

func TestClearDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ab"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ab", "one.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two.json"), []byte("{}"), 0o644))

	removed, failed := clearDir(dir)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, failed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	removed, _ = clearDir(filepath.Join(dir, "missing"))
	assert.Zero(t, removed)
}

func TestCachePathCommand(t *testing.T) {
	want, err := cache.DefaultDir()
	require.NoError(t, err)

	out, err := execute(t, "cache", "path")
	require.NoError(t, err)
	assert.Equal(t, want, strings.TrimSpace(out))
}

func TestVersionAndCompletion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "netembed version "), "version output %q", out)

	out, err = execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "netembed")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestNewCacheBackends(t *testing.T) {
	c := New(io.Discard, LogInfo)
	ctx := withLogger(context.Background(), c.Logger)

	_, isNull := c.newCache(ctx, true).(*cache.NullCache)
	assert.True(t, isNull, "--no-cache disables caching")

	c.Config.Cache.Backend = backendNone
	_, isNull = c.newCache(ctx, false).(*cache.NullCache)
	assert.True(t, isNull)

	c.Config.Cache.Backend = backendRedis
	c.Config.Cache.RedisURL = "redis://127.0.0.1:1/0"
	_, isNull = c.newCache(ctx, false).(*cache.NullCache)
	assert.True(t, isNull, "an unreachable server degrades to no caching")
}

func TestHooksLogLibraryEvents(t *testing.T) {
	RegisterHooks()
	t.Cleanup(observability.Reset)

	var logs bytes.Buffer
	c := New(&logs, LogDebug)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"embed", writeInput(t, "hybrid.nwk", hybridNewick)})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Contains(t, logs.String(), "embed start")
	assert.Contains(t, logs.String(), "embed done")
}
