package codegen

import (
	json "github.com/goccy/go-json"
)

// The Indicator IR is the metadata/input/plot descriptor bundle a compiled
// script exposes: it is enough for a host to build a settings UI without
// executing the compiled body.

type Metadata struct {
	Title      string `json:"title"`
	ShortTitle string `json:"shortTitle"`
	Overlay    bool   `json:"overlay"`
}

type InputDescriptor struct {
	Name    string `json:"name"`
	Title   string `json:"title,omitempty"`
	Type    string `json:"type"` //int, float, bool or string
	Default any    `json:"default"`
}

type PlotDescriptor struct {
	Title string `json:"title,omitempty"`
	Color string `json:"color,omitempty"`
	Kind  string `json:"kind"` //plot, hline or shape
}

type IndicatorIR struct {
	Meta          Metadata          `json:"meta"`
	DefaultInputs map[string]any    `json:"defaultInputs"`
	Inputs        []InputDescriptor `json:"inputs"`
	Plots         []PlotDescriptor  `json:"plots"`
}

func NewIndicatorIR() *IndicatorIR {
	return &IndicatorIR{
		DefaultInputs: map[string]any{},
		Inputs:        []InputDescriptor{},
		Plots:         []PlotDescriptor{},
	}
}

func (ir *IndicatorIR) ToJSON() ([]byte, error) {
	return json.MarshalIndent(ir, "", "  ")
}
