package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/printcost/pkg/mesh"
)

// parseScale accepts "2" for a uniform scale or "x,y,z".
func parseScale(s string) (mesh.Vec3, error) {
	fields := strings.Split(s, ",")
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return mesh.Vec3{}, fmt.Errorf("scale %q: %w", s, err)
		}
		if v <= 0 {
			return mesh.Vec3{}, fmt.Errorf("scale %q: factors must be positive", s)
		}
		vals[i] = v
	}
	switch len(vals) {
	case 1:
		return mesh.Uniform(vals[0]), nil
	case 3:
		return mesh.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}, nil
	default:
		return mesh.Vec3{}, fmt.Errorf("scale %q: want 1 or 3 factors", s)
	}
}
