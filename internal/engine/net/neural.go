package net

import (
	"fmt"
	"math"
	"sync"

	xml "github.com/drakos74/go-ex-machina/xmachina/ml"
	"github.com/drakos74/go-ex-machina/xmachina/net"
	"github.com/drakos74/go-ex-machina/xmachina/net/ff"
	"github.com/drakos74/go-ex-machina/xmath"

	"github.com/mindkey/fraud/internal/model"
)

// LayerWeights is the fitted state of one activation layer.
type LayerWeights struct {
	W [][]float64 `json:"w"`
	B []float64   `json:"b"`
}

// Neural is a feed-forward member classifier with a 2-class softmax head.
// The underlying network keeps per-cell state during the forward pass,
// so every call into it is serialized behind the mutex.
type Neural struct {
	features int
	epochs   int
	mutex    sync.Mutex
	net      *ff.Network
	cells    []*net.Weights
}

// hidden returns the activation layer widths in order.
func hidden(features int) []int {
	return []int{2 * features, 9, 2}
}

// build assembles the network with one weight and bias generator per
// activation layer, keeping hold of each layer's weights so the fitted
// state can be exported after training.
func build(features int, weights, biases []xmath.VectorGenerator) (*ff.Network, []*net.Weights) {
	rate := xml.Learn(1, 0.1)

	cells := make([]*net.Weights, 0, len(weights))
	capture := func(n, m int, module xml.Module, w *net.Weights, meta net.Meta) net.Neuron {
		cells = append(cells, w)
		return net.NewActivationCell(n, m, module, w, meta)
	}

	network := ff.New(features, 2)
	for i, size := range hidden(features) {
		network.Add(size, net.NewBuilder().
			WithModule(xml.Base().
				WithRate(rate).
				WithActivation(xml.TanH)).
			WithWeights(weights[i], biases[i]).
			Factory(capture))
	}
	network.Add(2, net.NewBuilder().CellFactory(net.NewSoftCell))
	network.Loss(xml.Pow)

	return network, cells
}

// NewNeural creates an untrained network for the given feature width.
func NewNeural(features, epochs int) *Neural {
	layers := len(hidden(features))
	weights := make([]xmath.VectorGenerator, layers)
	biases := make([]xmath.VectorGenerator, layers)
	for i := 0; i < layers; i++ {
		weights[i] = xmath.Rand(-1, 1, math.Sqrt)
		biases[i] = xmath.Rand(-1, 1, math.Sqrt)
	}
	network, cells := build(features, weights, biases)
	return &Neural{
		features: features,
		epochs:   epochs,
		net:      network,
		cells:    cells,
	}
}

// RestoreNeural rebuilds a fitted network from its persisted layer state.
func RestoreNeural(features int, state []LayerWeights) (*Neural, error) {
	sizes := hidden(features)
	if len(state) != len(sizes) {
		return nil, fmt.Errorf("state has %d layers, network has %d: %w",
			len(state), len(sizes), model.ContractErr)
	}

	weights := make([]xmath.VectorGenerator, len(sizes))
	biases := make([]xmath.VectorGenerator, len(sizes))
	in := features
	for i, layer := range state {
		if len(layer.W) != sizes[i] || len(layer.B) != sizes[i] {
			return nil, fmt.Errorf("layer %d state has %d rows and %d biases, layer size is %d: %w",
				i, len(layer.W), len(layer.B), sizes[i], model.ContractErr)
		}
		rows := make([]xmath.Vector, len(layer.W))
		for j, row := range layer.W {
			if len(row) != in {
				return nil, fmt.Errorf("layer %d row %d has %d values, input size is %d: %w",
					i, j, len(row), in, model.ContractErr)
			}
			rows[j] = xmath.Vec(len(row)).With(row...)
		}
		weights[i] = xmath.Row(rows...)
		biases[i] = xmath.Row(xmath.Vec(len(layer.B)).With(layer.B...))
		in = sizes[i]
	}

	network, cells := build(features, weights, biases)
	return &Neural{
		features: features,
		net:      network,
		cells:    cells,
	}, nil
}

func (n *Neural) Features() int {
	return n.features
}

// Weights exports the fitted state of the activation layers.
func (n *Neural) Weights() []LayerWeights {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	state := make([]LayerWeights, len(n.cells))
	for i, cell := range n.cells {
		w := make([][]float64, len(cell.W))
		for j, row := range cell.W {
			w[j] = append([]float64{}, row...)
		}
		state[i] = LayerWeights{
			W: w,
			B: append([]float64{}, cell.B...),
		}
	}
	return state
}

func (n *Neural) Fit(x [][]float64, y []int) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("invalid training set: %d samples for %d labels", len(x), len(y))
	}
	if len(x[0]) != n.features {
		return fmt.Errorf("samples have %d features, network expects %d: %w",
			len(x[0]), n.features, model.ContractErr)
	}
	n.mutex.Lock()
	defer n.mutex.Unlock()
	for epoch := 0; epoch < n.epochs; epoch++ {
		for i, sample := range x {
			inp := xmath.Vec(len(sample)).With(sample...)
			out := xmath.Vec(2)
			out[y[i]] = 1
			n.net.Train(inp, out)
		}
	}
	return nil
}

// Prob returns the softmax output for the fraud class.
func (n *Neural) Prob(x []float64) (float64, error) {
	if len(x) != n.features {
		return 0, fmt.Errorf("vector has %d values, network expects %d: %w",
			len(x), n.features, model.ContractErr)
	}
	n.mutex.Lock()
	out := n.net.Predict(xmath.Vec(len(x)).With(x...))
	n.mutex.Unlock()
	if len(out) < 2 {
		return 0, fmt.Errorf("unexpected network output of size %d", len(out))
	}
	return out[1], nil
}
