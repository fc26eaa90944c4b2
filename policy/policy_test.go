package policy

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/commander/logger"
	"github.com/viant/commander/service/dao/blocklist"
	"github.com/viant/commander/service/dao/blocklist/fs"
	"github.com/viant/commander/service/dao/blocklist/memory"
)

type failingStore struct {
	loadErr error
	saveErr error
	saves   int
}

func (f *failingStore) Load(context.Context) (*blocklist.Document, error) {
	return nil, f.loadErr
}

func (f *failingStore) Save(context.Context, *blocklist.Document) error {
	f.saves++
	return f.saveErr
}

func TestBaseCommand(t *testing.T) {
	testCases := []struct {
		commandLine string
		expect      string
	}{
		{commandLine: "rm -rf /tmp", expect: "rm"},
		{commandLine: "  RM\t-rf /tmp", expect: "rm"},
		{commandLine: "ls rm.txt", expect: "ls"},
		{commandLine: "", expect: ""},
		{commandLine: "   ", expect: ""},
		{commandLine: "Format", expect: "format"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, BaseCommand(testCase.commandLine), testCase.commandLine)
	}
}

func TestPolicy_Validate(t *testing.T) {
	ctx := context.Background()
	p := New(memory.New("rm", "Format"))
	p.Load(ctx)

	testCases := []struct {
		commandLine string
		expect      bool
	}{
		{commandLine: "rm -rf /tmp", expect: false},
		{commandLine: "rm", expect: false},
		{commandLine: "RM file", expect: false},
		{commandLine: "format c:", expect: false},
		{commandLine: "ls rm.txt", expect: true},
		{commandLine: "echo rm", expect: true},
		{commandLine: "rmdir x", expect: true},
		{commandLine: "", expect: true},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, p.Validate(testCase.commandLine), testCase.commandLine)
	}
}

func TestPolicy_BlockUnblock(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	p := New(store)
	p.Load(ctx)

	assert.True(t, p.Block(ctx, "Format"))
	assert.False(t, p.Block(ctx, "format"))
	assert.False(t, p.Block(ctx, "  FORMAT "))
	assert.Contains(t, p.List(), "format")
	assert.False(t, p.Validate("format c:"))

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"format"}, persisted.BlockedCommands)

	assert.True(t, p.Unblock(ctx, "FORMAT"))
	assert.False(t, p.Unblock(ctx, "format"))
	assert.NotContains(t, p.List(), "format")
	assert.True(t, p.Validate("format c:"))

	persisted, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, persisted.BlockedCommands)

	assert.False(t, p.Block(ctx, "   "))
}

func TestPolicy_ListSorted(t *testing.T) {
	ctx := context.Background()
	p := New(memory.New())
	p.Load(ctx)
	for _, command := range []string{"sudo", "chmod", "rm", "dd"} {
		assert.True(t, p.Block(ctx, command))
	}
	assert.Equal(t, []string{"chmod", "dd", "rm", "sudo"}, p.List())
}

func TestPolicy_LoadFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("store error", func(t *testing.T) {
		buffer := &bytes.Buffer{}
		p := New(&failingStore{loadErr: errors.New("boom")}, WithLogger(logger.NewWithWriter(buffer, "debug", "text")))
		p.Load(ctx)
		assert.Empty(t, p.List())
		assert.Contains(t, buffer.String(), "boom")
	})

	t.Run("corrupted file", func(t *testing.T) {
		URL := "mem://localhost/policy/corrupted.json"
		require.NoError(t, afs.New().Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader([]byte("]]"))))
		store, err := fs.New(URL)
		require.NoError(t, err)
		p := New(store, WithSeed("rm"))
		p.Load(ctx)
		assert.Empty(t, p.List())
	})

	t.Run("reload replaces previous set", func(t *testing.T) {
		store := memory.New("rm")
		p := New(store)
		p.Load(ctx)
		assert.Equal(t, []string{"rm"}, p.List())
		require.NoError(t, store.Save(ctx, &blocklist.Document{BlockedCommands: []string{"dd"}}))
		p.Load(ctx)
		assert.Equal(t, []string{"dd"}, p.List())
	})
}

func TestPolicy_Seed(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	p := New(store, WithSeed("Sudo", "rm"))
	p.Load(ctx)
	assert.Equal(t, []string{"rm", "sudo"}, p.List())

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"rm", "sudo"}, persisted.BlockedCommands)

	existing := memory.New("dd")
	p = New(existing, WithSeed("sudo"))
	p.Load(ctx)
	assert.Equal(t, []string{"dd"}, p.List())
}

func TestPolicy_SaveFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	buffer := &bytes.Buffer{}
	store := &failingStore{loadErr: blocklist.ErrNotFound, saveErr: errors.New("read-only")}
	p := New(store, WithLogger(logger.NewWithWriter(buffer, "info", "text")))
	p.Load(ctx)

	assert.True(t, p.Block(ctx, "rm"))
	assert.False(t, p.Validate("rm -rf /"))
	assert.True(t, p.Unblock(ctx, "rm"))
	assert.Equal(t, 2, store.saves)
	assert.Contains(t, buffer.String(), "failed to save blocked commands")
}

func TestContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	p := New(memory.New())
	ctx := WithPolicy(context.Background(), p)
	assert.Same(t, p, FromContext(ctx))
}
