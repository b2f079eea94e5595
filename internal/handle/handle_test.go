package handle

import (
	"bytes"
	"sync"
	"testing"

	"github.com/born-ml/synapse/internal/nn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry(nn.Config{Seed: 1})

	h := r.Create()
	assert.NotZero(t, h)
	assert.Equal(t, 1, r.Len())

	require.NoError(t, r.Setup(h, []int{2, 3, 1}))

	out := make([]float64, 1)
	n, err := r.ForwardPass(h, []float64{0.5, 1}, out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, r.BackPropagate(h, []float64{1}))
	require.NoError(t, r.BackPropagateRMS(h, []float64{1}))
	assert.Empty(t, r.LastError(h))

	text, err := r.Report(h)
	require.NoError(t, err)
	assert.Contains(t, text, "Neural Network Visualization")

	r.Destroy(h)
	assert.Equal(t, 0, r.Len())
	_, err = r.ForwardPass(h, []float64{0.5, 1}, out)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestRegistry_NoOps(t *testing.T) {
	r := NewRegistry(nn.Config{})
	out := make([]float64, 4)

	assert.ErrorIs(t, r.Setup(0, []int{2, 1}), ErrInvalidHandle)
	_, err := r.ForwardPass(0, []float64{1}, out)
	assert.ErrorIs(t, err, ErrInvalidHandle)
	assert.ErrorIs(t, r.BackPropagate(42, []float64{1}), ErrInvalidHandle)
	assert.ErrorIs(t, r.BackPropagateRMS(42, []float64{1}), ErrInvalidHandle)
	assert.Empty(t, r.LastError(0))

	h := r.Create()
	assert.ErrorIs(t, r.Setup(h, nil), ErrEmptyArgument)
	_, err = r.ForwardPass(h, nil, out)
	assert.ErrorIs(t, err, ErrEmptyArgument)
	assert.ErrorIs(t, r.BackPropagate(h, []float64{}), ErrEmptyArgument)
	assert.ErrorIs(t, r.BackPropagateRMS(h, nil), ErrEmptyArgument)

	// Destroying twice or destroying 0 is harmless.
	r.Destroy(h)
	r.Destroy(h)
	r.Destroy(0)
}

func TestRegistry_LastError(t *testing.T) {
	r := NewRegistry(nn.Config{})
	h := r.Create()

	_, err := r.ForwardPass(h, []float64{1}, nil)
	assert.ErrorIs(t, err, nn.ErrEmptyNetwork)
	assert.Equal(t, nn.ErrEmptyNetwork.Error(), r.LastError(h))

	require.NoError(t, r.Setup(h, []int{2, 2}))
	assert.Empty(t, r.LastError(h))

	_, err = r.ForwardPass(h, []float64{1, 2, 3}, nil)
	assert.ErrorIs(t, err, nn.ErrShapeMismatch)
	assert.Contains(t, r.LastError(h), "shape mismatch")
}

func TestRegistry_ShortOutputBuffer(t *testing.T) {
	r := NewRegistry(nn.Config{Seed: 2})
	h := r.Create()
	require.NoError(t, r.Setup(h, []int{1, 3}))

	out := []float64{-1}
	n, err := r.ForwardPass(h, []float64{1}, out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NotEqual(t, -1.0, out[0])
}

func TestRegistry_SaveLoad(t *testing.T) {
	r := NewRegistry(nn.Config{Seed: 3})
	h := r.Create()
	require.NoError(t, r.Setup(h, []int{2, 2, 1}))

	var buf bytes.Buffer
	require.NoError(t, r.Save(h, &buf))

	h2, err := r.Load(&buf)
	require.NoError(t, err)
	assert.NotEqual(t, h, h2)

	a, b := make([]float64, 1), make([]float64, 1)
	_, err = r.ForwardPass(h, []float64{0.3, 0.7}, a)
	require.NoError(t, err)
	_, err = r.ForwardPass(h2, []float64{0.3, 0.7}, b)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry(nn.Config{Seed: 4})

	var wg sync.WaitGroup
	handles := make([]Handle, 8)
	for i := range handles {
		handles[i] = r.Create()
		require.NoError(t, r.Setup(handles[i], []int{2, 4, 1}))
	}

	for _, h := range handles {
		for w := 0; w < 4; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				out := make([]float64, 1)
				for i := 0; i < 100; i++ {
					if _, err := r.ForwardPass(h, []float64{0, 1}, out); err != nil {
						t.Error(err)
						return
					}
					if err := r.BackPropagateRMS(h, []float64{1}); err != nil {
						t.Error(err)
						return
					}
				}
			}()
		}
	}
	wg.Wait()
	assert.Equal(t, len(handles), r.Len())
}
