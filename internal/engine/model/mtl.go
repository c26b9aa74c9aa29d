package model

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseMTL parses a Wavefront material library.
func ParseMTL(r io.Reader) (map[string]*Material, error) {
	result := make(map[string]*Material)
	var current *Material

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parts := strings.Fields(text)

		if parts[0] == "newmtl" {
			if len(parts) < 2 {
				return nil, fmt.Errorf("line %d: newmtl without name", line)
			}
			current = NewMaterial(parts[1])
			result[parts[1]] = current
			continue
		}
		if current == nil {
			continue
		}

		var err error
		switch parts[0] {
		case "Ka":
			current.Ambient, err = parseColor(parts[1:])
		case "Kd":
			current.Diffuse, err = parseColor(parts[1:])
		case "Ks":
			current.Specular, err = parseColor(parts[1:])
		case "Ns":
			current.Shininess, err = parseScalar(parts[1:])
		case "d":
			current.Opacity, err = parseScalar(parts[1:])
		case "Tr":
			var tr float32
			tr, err = parseScalar(parts[1:])
			current.Opacity = 1 - tr
		case "map_Kd":
			current.DiffuseMap = mapFile(parts[1:])
		case "map_Ks":
			current.SpecularMap = mapFile(parts[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, parts[0], err)
		}
	}

	return result, scanner.Err()
}

// mapFile returns the file name of a map statement, skipping any options.
// Options take arguments, so the file is always the last field.
func mapFile(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func parseColor(fields []string) ([3]float32, error) {
	v, err := parseFloats(fields, 3)
	if err != nil {
		return [3]float32{}, err
	}
	return [3]float32{v[0], v[1], v[2]}, nil
}

func parseScalar(fields []string) (float32, error) {
	if len(fields) == 0 {
		return 0, fmt.Errorf("missing value")
	}
	f, err := strconv.ParseFloat(fields[0], 32)
	return float32(f), err
}
