package feedforward

import "fmt"
import "io"

import "github.com/goccy/go-json"

import "github.com/neurlang/concrete/hashtron"

// Weights returns a copy of every hashtron in network order.
func (f FeedforwardNetwork) Weights() (o []hashtron.Hashtron) {
	o = make([]hashtron.Hashtron, 0, f.Len())
	for _, v := range f.layers {
		o = append(o, v...)
	}
	return
}

// SetWeights replaces every hashtron, the count must match the network.
func (f *FeedforwardNetwork) SetWeights(w []hashtron.Hashtron) error {
	if len(w) != f.Len() {
		return fmt.Errorf("feedforward: %d hashtrons for a network of %d", len(w), f.Len())
	}
	for i := range w {
		*f.GetHashtron(i) = w[i]
	}
	return nil
}

// WriteJSON writes model weights to a writer as one JSON array
func (f FeedforwardNetwork) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(f.Weights())
}

// ReadJSON reads model weights written by WriteJSON
func (f *FeedforwardNetwork) ReadJSON(r io.Reader) error {
	var w []hashtron.Hashtron
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return err
	}
	return f.SetWeights(w)
}
