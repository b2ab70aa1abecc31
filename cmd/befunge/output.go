package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/befunge/vm"
	"github.com/hokaccha/go-prettyjson"
	"gopkg.in/yaml.v3"
)

func formatState(snap vm.Snapshot, format string, colored bool) (string, error) {
	switch strings.ToLower(format) {
	case "json":
		output, err := getOutputJSON(snap, colored)
		if err != nil {
			return "", err
		}
		return string(output), nil
	case "yaml":
		output, err := yaml.Marshal(snap)
		if err != nil {
			return "", err
		}
		return strings.TrimSuffix(string(output), "\n"), nil
	case "text":
		return formatStateText(snap), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

func formatStateText(snap vm.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "state: %s\n", snap.State)
	fmt.Fprintf(&b, "cursor: %d:%d %s\n", snap.Row, snap.Col, snap.Direction)
	fmt.Fprintf(&b, "steps: %d\n", snap.Steps)
	values := make([]string, len(snap.Stack))
	for i, v := range snap.Stack {
		values[i] = strconv.Itoa(v)
	}
	fmt.Fprintf(&b, "stack: [%s]\n", strings.Join(values, " "))
	fmt.Fprintf(&b, "grid: %dx%d", snap.Rows, snap.Cols)
	for _, line := range snap.Grid {
		b.WriteString("\n  |" + line + "|")
	}
	return b.String()
}

func getOutputJSON(value any, colored bool) ([]byte, error) {
	if !colored {
		return json.MarshalIndent(value, "", "  ")
	}
	return prettyjson.Marshal(value)
}
