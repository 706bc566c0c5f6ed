// Package nn runs the forward pass of a fully connected feed-forward
// classifier exported from a Keras Sequential model.
package nn

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrShapeMismatch     = errors.New("input shape mismatch")
	ErrColumnMismatch    = errors.New("input column mismatch")
	ErrInvalidArtifact   = errors.New("invalid model artifact")
	ErrUnknownActivation = errors.New("unknown activation")
)

type Activation string

const (
	ActivationLinear  Activation = "linear"
	ActivationReLU    Activation = "relu"
	ActivationSigmoid Activation = "sigmoid"
	ActivationTanh    Activation = "tanh"
	ActivationSoftmax Activation = "softmax"
)

// artifact is the on-disk JSON layout. Weights are stored the way Keras
// keeps them for Dense layers: one row per input unit.
type artifact struct {
	Name         string          `json:"name"`
	InputColumns []string        `json:"input_columns"`
	Layers       []artifactLayer `json:"layers"`
}

type artifactLayer struct {
	Activation Activation  `json:"activation"`
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
}

type dense struct {
	weights    *mat.Dense // in × out
	bias       *mat.VecDense
	activation Activation
}

// Network is immutable once decoded and safe for concurrent use.
type Network struct {
	Name         string
	InputColumns []string
	layers       []dense
}

// Decode reads a JSON artifact and checks that every layer chains into the
// next one.
func Decode(r io.Reader) (*Network, error) {
	var a artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	if len(a.Layers) == 0 {
		return nil, fmt.Errorf("%w: no layers", ErrInvalidArtifact)
	}

	n := &Network{
		Name:         a.Name,
		InputColumns: a.InputColumns,
		layers:       make([]dense, 0, len(a.Layers)),
	}

	prevOut := -1
	for i, l := range a.Layers {
		layer, err := buildLayer(l)
		if err != nil {
			return nil, fmt.Errorf("%w: layer %d: %w", ErrInvalidArtifact, i, err)
		}
		in, out := layer.weights.Dims()
		if prevOut >= 0 && in != prevOut {
			return nil, fmt.Errorf("%w: layer %d expects %d inputs, previous layer emits %d", ErrInvalidArtifact, i, in, prevOut)
		}
		prevOut = out
		n.layers = append(n.layers, layer)
	}

	if len(n.InputColumns) > 0 && len(n.InputColumns) != n.InputWidth() {
		return nil, fmt.Errorf("%w: %d input columns for %d inputs", ErrInvalidArtifact, len(n.InputColumns), n.InputWidth())
	}

	return n, nil
}

func buildLayer(l artifactLayer) (dense, error) {
	switch l.Activation {
	case ActivationLinear, ActivationReLU, ActivationSigmoid, ActivationTanh, ActivationSoftmax:
	case "":
		l.Activation = ActivationLinear
	default:
		return dense{}, fmt.Errorf("%w %q", ErrUnknownActivation, l.Activation)
	}

	rows := len(l.Weights)
	if rows == 0 || len(l.Weights[0]) == 0 {
		return dense{}, errors.New("empty weights")
	}
	cols := len(l.Weights[0])

	data := make([]float64, 0, rows*cols)
	for r, row := range l.Weights {
		if len(row) != cols {
			return dense{}, fmt.Errorf("weights row %d has %d columns, want %d", r, len(row), cols)
		}
		data = append(data, row...)
	}
	if len(l.Bias) != cols {
		return dense{}, fmt.Errorf("bias has %d entries, want %d", len(l.Bias), cols)
	}

	return dense{
		weights:    mat.NewDense(rows, cols, data),
		bias:       mat.NewVecDense(cols, append([]float64(nil), l.Bias...)),
		activation: l.Activation,
	}, nil
}

// InputWidth is the number of features the first layer consumes.
func (n *Network) InputWidth() int {
	in, _ := n.layers[0].weights.Dims()
	return in
}

// CheckColumns verifies that columns is exactly the input order the artifact
// declares. Artifacts without input_columns accept any order.
func (n *Network) CheckColumns(columns []string) error {
	if len(n.InputColumns) == 0 {
		return nil
	}
	if len(columns) != len(n.InputColumns) {
		return fmt.Errorf("%w: got %d columns, model %q declares %d", ErrColumnMismatch, len(columns), n.Name, len(n.InputColumns))
	}
	for i, c := range columns {
		if c != n.InputColumns[i] {
			return fmt.Errorf("%w: column %d is %q, model %q expects %q", ErrColumnMismatch, i, c, n.Name, n.InputColumns[i])
		}
	}
	return nil
}

// Predict returns the output layer activations for one row.
func (n *Network) Predict(row []float64) ([]float64, error) {
	if len(row) != n.InputWidth() {
		return nil, fmt.Errorf("%w: got %d features, model %q expects %d", ErrShapeMismatch, len(row), n.Name, n.InputWidth())
	}

	x := mat.NewVecDense(len(row), append([]float64(nil), row...))
	for _, l := range n.layers {
		_, out := l.weights.Dims()
		y := mat.NewVecDense(out, nil)
		y.MulVec(l.weights.T(), x)
		y.AddVec(y, l.bias)
		activate(y, l.activation)
		x = y
	}

	return mat.Col(nil, 0, x), nil
}

// PredictClass mirrors Keras predict_classes: a single output unit is
// thresholded at 0.5, wider outputs pick the argmax.
func (n *Network) PredictClass(row []float64) (int, error) {
	out, err := n.Predict(row)
	if err != nil {
		return 0, err
	}

	if len(out) == 1 {
		if out[0] > 0.5 {
			return 1, nil
		}
		return 0, nil
	}

	best := 0
	for i := 1; i < len(out); i++ {
		if out[i] > out[best] {
			best = i
		}
	}
	return best, nil
}

func activate(v *mat.VecDense, a Activation) {
	n := v.Len()
	switch a {
	case ActivationReLU:
		for i := range n {
			if v.AtVec(i) < 0 {
				v.SetVec(i, 0)
			}
		}
	case ActivationSigmoid:
		for i := range n {
			v.SetVec(i, 1/(1+math.Exp(-v.AtVec(i))))
		}
	case ActivationTanh:
		for i := range n {
			v.SetVec(i, math.Tanh(v.AtVec(i)))
		}
	case ActivationSoftmax:
		maxVal := math.Inf(-1)
		for i := range n {
			maxVal = math.Max(maxVal, v.AtVec(i))
		}
		sum := 0.0
		for i := range n {
			e := math.Exp(v.AtVec(i) - maxVal)
			v.SetVec(i, e)
			sum += e
		}
		for i := range n {
			v.SetVec(i, v.AtVec(i)/sum)
		}
	}
}
