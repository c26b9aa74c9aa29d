package model

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/village-viewer/internal/logger"
)

// Source reads asset files by slash-separated path.
type Source interface {
	Load(name string) ([]byte, error)
}

// LoadOBJ loads name and every material library it references from src.
// A missing or broken material library is logged and skipped.
func LoadOBJ(src Source, name string) (*Mesh, error) {
	data, err := src.Load(name)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}

	mesh, libs, err := ParseOBJ(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	mesh.Name = name

	dir := path.Dir(name)
	for _, lib := range libs {
		libPath := path.Join(dir, lib)
		mtlData, err := src.Load(libPath)
		if err != nil {
			logger.Warn("failed to load material library", zap.String("path", libPath), zap.Error(err))
			continue
		}
		mats, err := ParseMTL(bytes.NewReader(mtlData))
		if err != nil {
			logger.Warn("failed to parse material library", zap.String("path", libPath), zap.Error(err))
			continue
		}
		for k, m := range mats {
			m.DiffuseMap = resolve(dir, m.DiffuseMap)
			m.SpecularMap = resolve(dir, m.SpecularMap)
			mesh.Materials[k] = m
		}
	}

	logger.Debug("loaded mesh",
		zap.String("name", name),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("groups", len(mesh.Groups)),
		zap.Int("materials", len(mesh.Materials)))

	return mesh, nil
}

func resolve(dir, file string) string {
	if file == "" {
		return ""
	}
	return path.Join(dir, strings.ReplaceAll(file, "\\", "/"))
}

// objParser holds the state of one ParseOBJ call.
type objParser struct {
	positions [][3]float32
	normals   [][3]float32
	uvs       [][2]float32

	mesh     *Mesh
	vertexOf map[vertexKey]uint32
	libs     []string
	material string
	line     int
}

// vertexKey identifies a mesh vertex by its absolute attribute indices.
// Vertices without a normal index also key on the flat normal of the face
// that uses them, so faces meeting at an edge keep their own normals.
type vertexKey struct {
	position, uv, normal int
	flat                 [3]float32
}

// ParseOBJ parses Wavefront OBJ text into a single indexed mesh. Polygons
// are fan triangulated and indices are split into groups by usemtl. It also
// returns the material library names in the order they were referenced.
func ParseOBJ(r io.Reader) (*Mesh, []string, error) {
	p := &objParser{
		mesh: &Mesh{
			Materials: make(map[string]*Material),
			Bounds:    emptyBounds(),
		},
		vertexOf: make(map[vertexKey]uint32),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", p.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	if len(p.mesh.Indices) == 0 {
		return nil, nil, fmt.Errorf("no faces found")
	}
	p.closeGroups()

	return p.mesh, p.libs, nil
}

func (p *objParser) parseLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	parts := strings.Fields(line)

	switch parts[0] {
	case "v":
		v, err := parseFloats(parts[1:], 3)
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		p.positions = append(p.positions, [3]float32{v[0], v[1], v[2]})
	case "vn":
		v, err := parseFloats(parts[1:], 3)
		if err != nil {
			return fmt.Errorf("normal: %w", err)
		}
		p.normals = append(p.normals, [3]float32{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(parts[1:], 2)
		if err != nil {
			return fmt.Errorf("texcoord: %w", err)
		}
		p.uvs = append(p.uvs, [2]float32{v[0], v[1]})
	case "f":
		return p.face(parts[1:])
	case "usemtl":
		if len(parts) > 1 {
			p.useMaterial(parts[1])
		}
	case "mtllib":
		p.libs = append(p.libs, parts[1:]...)
	}
	// o, g, s and anything else do not affect the indexed mesh.
	return nil
}

func (p *objParser) face(refs []string) error {
	if len(refs) < 3 {
		return fmt.Errorf("face with %d vertices", len(refs))
	}

	keys := make([]vertexKey, 0, len(refs))
	missingNormal := false
	for _, ref := range refs {
		k, err := p.reference(ref)
		if err != nil {
			return err
		}
		if k.normal < 0 {
			missingNormal = true
		}
		keys = append(keys, k)
	}

	if missingNormal {
		flat := p.flatNormal(keys)
		for i := range keys {
			if keys[i].normal < 0 {
				keys[i].flat = flat
			}
		}
	}

	idx := make([]uint32, 0, len(keys))
	for _, k := range keys {
		idx = append(idx, p.vertex(k))
	}

	// Faces before the first usemtl go into an unnamed group.
	if len(p.mesh.Groups) == 0 {
		p.mesh.Groups = append(p.mesh.Groups, Group{Material: p.material})
	}

	for i := 2; i < len(idx); i++ {
		p.mesh.Indices = append(p.mesh.Indices, idx[0], idx[i-1], idx[i])
	}
	return nil
}

// reference turns a "v/vt/vn" reference into absolute indices. Missing
// texcoord and normal indices are -1.
func (p *objParser) reference(ref string) (vertexKey, error) {
	fields := strings.Split(ref, "/")
	k := vertexKey{uv: -1, normal: -1}

	var err error
	if k.position, err = resolveIndex(fields[0], len(p.positions)); err != nil {
		return k, fmt.Errorf("position index %q: %w", fields[0], err)
	}
	if len(fields) > 1 && fields[1] != "" {
		if k.uv, err = resolveIndex(fields[1], len(p.uvs)); err != nil {
			return k, fmt.Errorf("texcoord index %q: %w", fields[1], err)
		}
	}
	if len(fields) > 2 && fields[2] != "" {
		if k.normal, err = resolveIndex(fields[2], len(p.normals)); err != nil {
			return k, fmt.Errorf("normal index %q: %w", fields[2], err)
		}
	}
	return k, nil
}

// vertex returns the index of the vertex for k, adding it on first use.
func (p *objParser) vertex(k vertexKey) uint32 {
	if i, ok := p.vertexOf[k]; ok {
		return i
	}

	v := Vertex{Position: p.positions[k.position], Normal: k.flat}
	if k.uv >= 0 {
		v.TexCoord = p.uvs[k.uv]
	}
	if k.normal >= 0 {
		v.Normal = p.normals[k.normal]
	}

	i := uint32(len(p.mesh.Vertices))
	p.mesh.Vertices = append(p.mesh.Vertices, v)
	p.mesh.Bounds.Extend(v.Position)
	p.vertexOf[k] = i
	return i
}

// flatNormal is the normal of the face's first triangle, or zero when it is
// degenerate.
func (p *objParser) flatNormal(keys []vertexKey) [3]float32 {
	a := mgl32.Vec3(p.positions[keys[0].position])
	b := mgl32.Vec3(p.positions[keys[1].position])
	c := mgl32.Vec3(p.positions[keys[2].position])

	cr := b.Sub(a).Cross(c.Sub(a))
	if cr.Len() < 1e-12 {
		return [3]float32{}
	}
	return [3]float32(cr.Normalize())
}

// useMaterial starts a new group unless the open group is empty or already
// uses name.
func (p *objParser) useMaterial(name string) {
	p.material = name
	groups := p.mesh.Groups
	if n := len(groups); n > 0 {
		open := &groups[n-1]
		if open.StartIndex == int32(len(p.mesh.Indices)) {
			open.Material = name
			return
		}
		if open.Material == name {
			return
		}
	}
	p.mesh.Groups = append(p.mesh.Groups, Group{
		Material:   name,
		StartIndex: int32(len(p.mesh.Indices)),
	})
}

// closeGroups computes index counts and drops empty groups.
func (p *objParser) closeGroups() {
	total := int32(len(p.mesh.Indices))
	groups := p.mesh.Groups[:0]
	for i, g := range p.mesh.Groups {
		end := total
		if i+1 < len(p.mesh.Groups) {
			end = p.mesh.Groups[i+1].StartIndex
		}
		g.IndexCount = end - g.StartIndex
		if g.IndexCount > 0 {
			groups = append(groups, g)
		}
	}
	p.mesh.Groups = groups
}

// resolveIndex converts a 1-based or negative relative OBJ index.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i = n + i
	} else {
		i--
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("out of range (have %d)", n)
	}
	return i, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}
