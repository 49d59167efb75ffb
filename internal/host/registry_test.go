package host

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
)

// fakeSession finds only the paths it was given
type fakeSession struct {
	present map[string]bool
	lookups []string
	failErr error
}

type fakeElement struct {
	Element
	path string
}

func (s *fakeSession) FindByID(ctx context.Context, path string) (Element, error) {
	s.lookups = append(s.lookups, path)
	if s.failErr != nil {
		return nil, s.failErr
	}
	if s.present[path] {
		return &fakeElement{path: path}, nil
	}
	return nil, ErrNotFound
}

func (s *fakeSession) StartTransaction(ctx context.Context, code string) error  { return nil }
func (s *fakeSession) SendVKey(ctx context.Context, window int, key VKey) error { return nil }
func (s *fakeSession) StatusText(ctx context.Context) (string, error)           { return "", nil }

type readySession struct {
	fakeSession
	waited int
}

func (s *readySession) WaitReady(ctx context.Context) error {
	s.waited++
	return nil
}

func TestRegistry_ResolveFirstCandidate(t *testing.T) {
	r := NewRegistry()
	first := r.Candidates(FieldOrderSuperfield)[0]
	s := &fakeSession{present: map[string]bool{first: true}}

	el, err := r.Resolve(context.Background(), s, FieldOrderSuperfield)
	require.NoError(t, err)
	assert.Equal(t, first, el.(*fakeElement).path)
	assert.Len(t, s.lookups, 1)
}

func TestRegistry_ResolveFallsBackToSecondCandidate(t *testing.T) {
	r := NewRegistry()
	candidates := r.Candidates(FieldOrderSuperfield)
	require.Len(t, candidates, 2)
	assert.Contains(t, candidates[0], "SAPLMEGUI:0013")
	assert.Contains(t, candidates[1], "SAPLMEGUI:0016")

	s := &fakeSession{present: map[string]bool{candidates[1]: true}}
	el, err := r.Resolve(context.Background(), s, FieldOrderSuperfield)
	require.NoError(t, err)
	assert.Equal(t, candidates[1], el.(*fakeElement).path)
	assert.Equal(t, candidates, s.lookups)
}

func TestRegistry_ResolveNoneFound(t *testing.T) {
	r := NewRegistry()
	s := &fakeSession{}

	_, err := r.Resolve(context.Background(), s, FieldOrderDocDate)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrElementNotFound))

	var nf *entity.ElementNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, string(FieldOrderDocDate), nf.Field)
	assert.Equal(t, r.Candidates(FieldOrderDocDate), nf.Tried)
}

func TestRegistry_ResolveStopsOnSessionError(t *testing.T) {
	r := NewRegistry()
	broken := errors.New("connection reset")
	s := &fakeSession{failErr: broken}

	_, err := r.Resolve(context.Background(), s, FieldOrderSuperfield)
	assert.True(t, errors.Is(err, broken))
	assert.False(t, errors.Is(err, entity.ErrElementNotFound))
	assert.Len(t, s.lookups, 1)
}

func TestRegistry_UnknownField(t *testing.T) {
	_, err := NewRegistry().Resolve(context.Background(), &fakeSession{}, Field("nope"))
	assert.True(t, errors.Is(err, entity.ErrElementNotFound))
}

func TestRegistry_LoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locators.yaml")
	content := `locators:
  order.superfield:
    - wnd[0]/usr/custom/SUPERFIELD
    - wnd[0]/usr/other/SUPERFIELD
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r := NewRegistry()
	before := r.Candidates(FieldOrderDocDate)
	require.NoError(t, r.LoadOverrides(path))

	assert.Equal(t, []string{"wnd[0]/usr/custom/SUPERFIELD", "wnd[0]/usr/other/SUPERFIELD"}, r.Candidates(FieldOrderSuperfield))
	assert.Equal(t, before, r.Candidates(FieldOrderDocDate))

	// defaults are not shared between registries
	assert.NotEqual(t, r.Candidates(FieldOrderSuperfield), NewRegistry().Candidates(FieldOrderSuperfield))
}

func TestRegistry_LoadOverridesErrors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("locators:\n  order.superfield: []\n"), 0o644))
	assert.Error(t, NewRegistry().LoadOverrides(empty))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("locators: [oops"), 0o644))
	assert.Error(t, NewRegistry().LoadOverrides(bad))

	assert.Error(t, NewRegistry().LoadOverrides(filepath.Join(dir, "missing.yaml")))
}

func TestRegistry_EveryFieldHasCandidates(t *testing.T) {
	r := NewRegistry()
	for _, f := range r.Fields() {
		assert.NotEmpty(t, r.Candidates(f), string(f))
	}
}

func TestSettle(t *testing.T) {
	t.Run("ready waiter is preferred", func(t *testing.T) {
		s := &readySession{}
		start := time.Now()
		require.NoError(t, Settle(context.Background(), s, time.Hour))
		assert.Equal(t, 1, s.waited)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("fixed delay", func(t *testing.T) {
		start := time.Now()
		require.NoError(t, Settle(context.Background(), &fakeSession{}, 20*time.Millisecond))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Settle(ctx, &fakeSession{}, time.Hour)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
