// Package handle maps opaque integer handles to networks for callers that
// cannot hold Go pointers, such as the C library in cabi.
//
// Every operation on an unknown or zero handle, or with an empty argument,
// is a no-op that returns an error; no operation panics on caller input.
// Each handle carries its own lock, so concurrent callers serialize per
// network and never block each other across networks.
package handle

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/born-ml/synapse/internal/nn"
)

// Handle identifies one network in a Registry. The zero Handle is never
// issued.
type Handle uint64

// Common errors.
var (
	ErrInvalidHandle = errors.New("invalid network handle")
	ErrEmptyArgument = errors.New("empty argument")
)

type entry struct {
	mu      sync.Mutex
	net     *nn.Network
	lastErr error
}

// Registry owns the networks behind handles.
type Registry struct {
	mu      sync.Mutex
	next    Handle
	entries map[Handle]*entry
	cfg     nn.Config
}

// NewRegistry creates an empty registry. cfg is used for every network it
// creates.
func NewRegistry(cfg nn.Config) *Registry {
	return &Registry{
		entries: make(map[Handle]*entry),
		cfg:     cfg,
	}
}

// Default is the registry used by the C library.
var Default = NewRegistry(nn.Config{})

// Create allocates an unconfigured network and returns its handle.
func (r *Registry) Create() Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	r.entries[r.next] = &entry{net: nn.New(r.cfg)}
	return r.next
}

// Destroy releases the network behind h. Unknown handles are ignored.
func (r *Registry) Destroy(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, h)
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) lookup(h Handle) (*entry, error) {
	if h == 0 {
		return nil, ErrInvalidHandle
	}
	r.mu.Lock()
	e, ok := r.entries[h]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	return e, nil
}

// do runs f on the network behind h under its lock and records the result
// as the handle's last error.
func (r *Registry) do(h Handle, f func(net *nn.Network) error) error {
	e, err := r.lookup(h)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastErr = f(e.net)
	return e.lastErr
}

// Setup builds the layers of the network behind h.
func (r *Registry) Setup(h Handle, structure []int) error {
	if len(structure) == 0 {
		return ErrEmptyArgument
	}
	return r.do(h, func(net *nn.Network) error {
		return net.Setup(structure)
	})
}

// ForwardPass runs inputs through the network behind h and copies the
// outputs into out. It returns the number of output values, which may exceed
// len(out); only min(n, len(out)) values are written.
func (r *Registry) ForwardPass(h Handle, inputs, out []float64) (int, error) {
	if len(inputs) == 0 {
		return 0, ErrEmptyArgument
	}
	var n int
	err := r.do(h, func(net *nn.Network) error {
		result, err := net.ForwardPass(inputs)
		if err != nil {
			return err
		}
		copy(out, result)
		n = len(result)
		return nil
	})
	return n, err
}

// BackPropagate runs one gradient-descent pass on the network behind h.
func (r *Registry) BackPropagate(h Handle, expected []float64) error {
	if len(expected) == 0 {
		return ErrEmptyArgument
	}
	return r.do(h, func(net *nn.Network) error {
		return net.BackPropagate(expected)
	})
}

// BackPropagateRMS runs one RMSProp pass on the network behind h.
func (r *Registry) BackPropagateRMS(h Handle, expected []float64) error {
	if len(expected) == 0 {
		return ErrEmptyArgument
	}
	return r.do(h, func(net *nn.Network) error {
		return net.BackPropagateRMS(expected)
	})
}

// Report renders the visualization table of the network behind h.
func (r *Registry) Report(h Handle) (string, error) {
	var text string
	err := r.do(h, func(net *nn.Network) error {
		text = net.Report().String()
		return nil
	})
	return text, err
}

// Save writes a checkpoint of the network behind h to w.
func (r *Registry) Save(h Handle, w io.Writer) error {
	return r.do(h, func(net *nn.Network) error {
		return net.SaveCheckpoint(w)
	})
}

// Load reads a checkpoint from rd and returns a handle to the restored
// network.
func (r *Registry) Load(rd io.Reader) (Handle, error) {
	net, err := nn.LoadCheckpoint(rd, r.cfg)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.entries[r.next] = &entry{net: net}
	return r.next, nil
}

// LastError returns the message of the last failed operation on h, or ""
// when it succeeded or h is unknown.
func (r *Registry) LastError(h Handle) string {
	e, err := r.lookup(h)
	if err != nil {
		return ""
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastErr == nil {
		return ""
	}
	return e.lastErr.Error()
}
