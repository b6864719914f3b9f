package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Scenario is a named script of list operations.
type Scenario struct {
	Name  string           `yaml:"name"`
	Lists map[string][]int `yaml:"lists"`
	Steps []Step           `yaml:"steps"`
}

// Step applies one operation to the list named List.
// Which of the other fields are used depends on Op.
type Step struct {
	Op    string `yaml:"op"`
	List  string `yaml:"list"`
	Label string `yaml:"label,omitempty"`

	Value  *int   `yaml:"value,omitempty"`
	Values []int  `yaml:"values,omitempty"`
	At     *int   `yaml:"at,omitempty"`    // position of the first node holding this value
	Index  *int   `yaml:"index,omitempty"` // position by steps from the first node
	N      int    `yaml:"n,omitempty"`
	From   string `yaml:"from,omitempty"`
	Pred   string `yaml:"pred,omitempty"`
	Fn     string `yaml:"fn,omitempty"`
	Arg    int    `yaml:"arg,omitempty"`

	Expect    []int  `yaml:"expect,omitempty"`
	ExpectLen *int   `yaml:"expect_len,omitempty"`
	ExpectErr string `yaml:"expect_err,omitempty"`
}

func LoadFile(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Load(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Load decodes and validates a yaml scenario. Unknown keys are errors.
func Load(b []byte) (*Scenario, error) {
	m := make(map[string]any)
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("failed to decode yaml, %w", err)
	}
	s := new(Scenario)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		TagName:     "yaml",
		Result:      s,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init decoder, %w", err)
	}
	if err := decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("failed to decode scenario, %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New("scenario has no step")
	}
	for i, st := range s.Steps {
		h, ok := ops[st.Op]
		if !ok {
			return &StepError{Idx: i, Op: st.Op, Err: errUnknownOp}
		}
		if len(st.List) == 0 {
			return &StepError{Idx: i, Op: st.Op, Err: errors.New("missing list name")}
		}
		if h.needValue && st.Value == nil {
			return &StepError{Idx: i, Op: st.Op, Err: errors.New("missing value")}
		}
		if h.needFrom && len(st.From) == 0 {
			return &StepError{Idx: i, Op: st.Op, Err: errors.New("missing source list")}
		}
		if len(st.ExpectErr) > 0 {
			if _, ok := errKinds[st.ExpectErr]; !ok {
				return &StepError{Idx: i, Op: st.Op, Err: fmt.Errorf("unknown error kind %q", st.ExpectErr)}
			}
		}
	}
	return nil
}

// Template returns a scenario that shows every field.
func Template() *Scenario {
	v, at, idx := 6, 4, 0
	return &Scenario{
		Name:  "template",
		Lists: map[string][]int{"my": {3, 4, 5}, "other": {10, 20}, "empty": {}},
		Steps: []Step{
			{Op: "push_back", List: "my", Value: &v, Expect: []int{3, 4, 5, 6}},
			{Op: "insert", List: "my", At: &at, Value: &v, Label: "Insert 6 before 4"},
			{Op: "splice", List: "my", From: "other", Index: &idx},
			{Op: "remove_if", List: "my", Pred: "gt", Arg: 5},
			{Op: "pop_back", List: "empty", ExpectErr: "empty_container"},
		},
	}
}

// Encode returns s as yaml, indented by 2 spaces.
func (s *Scenario) Encode() ([]byte, error) {
	b := new(bytes.Buffer)
	encoder := yaml.NewEncoder(b)
	encoder.SetIndent(2)
	if err := encoder.Encode(s); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
