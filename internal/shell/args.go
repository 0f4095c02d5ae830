package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vegasq/parshape/config"
	"github.com/vegasq/parshape/reshape"
	"github.com/vegasq/parshape/table"
	"github.com/vegasq/parshape/window"
)

// parseArgs splits key=value arguments, rejecting keys outside allowed.
func parseArgs(args []string, allowed ...string) (map[string]string, error) {
	known := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		known[k] = true
	}

	kv := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("%w: expected key=value, got %q", table.ErrInvalidSpec, arg)
		}
		k = strings.ToLower(k)
		if !known[k] {
			return nil, fmt.Errorf("%w: unknown argument %q (want one of %s)", table.ErrInvalidSpec, k, strings.Join(allowed, ", "))
		}
		kv[k] = v
	}
	return kv, nil
}

// list splits a comma-separated argument, dropping empty items.
func list(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func windowSpec(args []string) (window.Spec, error) {
	kv, err := parseArgs(args, "kind", "value", "as", "partition", "order", "offset")
	if err != nil {
		return window.Spec{}, err
	}

	cfg := config.WindowConfig{
		Kind:        kv["kind"],
		Value:       kv["value"],
		Output:      kv["as"],
		PartitionBy: list(kv["partition"]),
		OrderBy:     list(kv["order"]),
	}
	if raw, ok := kv["offset"]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return window.Spec{}, fmt.Errorf("%w: offset %q is not an integer", table.ErrInvalidSpec, raw)
		}
		cfg.Offset = &n
	}
	if cfg.Output == "" {
		cfg.Output = strings.ToLower(cfg.Kind)
	}
	return cfg.Spec()
}

func pivotSpec(args []string) (reshape.PivotSpec, error) {
	kv, err := parseArgs(args, "index", "pivot", "values", "group")
	if err != nil {
		return reshape.PivotSpec{}, err
	}
	return config.PivotConfig{
		Index:   kv["index"],
		Pivot:   kv["pivot"],
		Values:  kv["values"],
		GroupBy: list(kv["group"]),
	}.Spec(), nil
}

func unpivotSpec(args []string) (reshape.UnpivotSpec, error) {
	kv, err := parseArgs(args, "id", "values", "var", "value")
	if err != nil {
		return reshape.UnpivotSpec{}, err
	}
	return config.UnpivotConfig{
		IDColumns:    list(kv["id"]),
		ValueColumns: list(kv["values"]),
		Variable:     kv["var"],
		Value:        kv["value"],
	}.Spec(), nil
}
