package report

import (
	"encoding/json"
	"fmt"

	"schoolbuild/pkg/engine"
)

// Response is the JSON document returned to browser callers: every output
// rendered as text, keyed by file name, plus the build summary.
type Response struct {
	Outputs map[string]string `json:"outputs"`
	Summary *Summary          `json:"summary"`
}

// NewResponse renders every output of res.
func NewResponse(res *engine.Result) (*Response, error) {
	r := &Response{
		Outputs: make(map[string]string, len(res.Outputs)),
		Summary: Summarize(res),
	}
	for _, o := range res.Outputs {
		data, err := o.Bytes()
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", o.Name, err)
		}
		r.Outputs[o.Name] = string(data)
	}
	return r, nil
}

// MarshalResponse renders res as a JSON Response document.
func MarshalResponse(res *engine.Result) ([]byte, error) {
	r, err := NewResponse(res)
	if err != nil {
		return nil, err
	}
	return json.Marshal(r)
}
