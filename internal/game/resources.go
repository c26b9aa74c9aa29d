package game

import (
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/village-viewer/internal/assets"
	"github.com/Faultbox/village-viewer/internal/config"
	"github.com/Faultbox/village-viewer/internal/engine/model"
	"github.com/Faultbox/village-viewer/internal/engine/shader"
	"github.com/Faultbox/village-viewer/internal/engine/shader/shaders"
	"github.com/Faultbox/village-viewer/internal/engine/skybox"
	"github.com/Faultbox/village-viewer/internal/engine/texture"
	"github.com/Faultbox/village-viewer/internal/engine/transform"
	"github.com/Faultbox/village-viewer/internal/logger"
)

// resources owns every GPU object of the scene.
type resources struct {
	assets *assets.Manager

	shaderFS fs.FS
	watcher  *shader.Watcher
	programs map[string]*shader.Program
	basic    *shader.Program
	sky      *shader.Program

	meshes   [len(transform.Objects)]*model.GPUMesh
	skybox   *skybox.Skybox
	textures map[string]*texture.Texture
	white    *texture.Texture
	black    *texture.Texture
	srgb     bool

	log *zap.Logger
}

func loadResources(cfg *config.Config) (*resources, error) {
	r := &resources{
		assets:   assets.NewManager(),
		programs: make(map[string]*shader.Program),
		textures: make(map[string]*texture.Texture),
		srgb:     cfg.Graphics.SRGB,
		log:      logger.Named("resources"),
	}

	if err := r.assets.AddDir(cfg.Assets.Root); err != nil {
		return nil, err
	}
	for _, dir := range cfg.Assets.Extra {
		if err := r.assets.AddDir(dir); err != nil {
			r.log.Warn("skipping extra asset dir", zap.String("dir", dir), zap.Error(err))
		}
	}

	if err := r.loadShaders(cfg.Assets); err != nil {
		r.Close()
		return nil, err
	}

	r.white = texture.Solid(255, 255, 255)
	r.black = texture.Solid(0, 0, 0)

	paths := map[transform.ObjectID]string{
		transform.ObjectScene: cfg.Assets.Scene,
		transform.ObjectPropA: cfg.Assets.PropA,
		transform.ObjectPropB: cfg.Assets.PropB,
	}
	for _, id := range transform.Objects {
		mesh, err := model.LoadOBJ(r.assets, paths[id])
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("loading %s model: %w", id, err)
		}
		r.meshes[id], err = model.Upload(mesh, r.texture, r.white, r.black)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("uploading %s model: %w", id, err)
		}
	}

	var err error
	r.skybox, err = skybox.Load(r.assets, cfg.Assets.SkyboxDir, cfg.Assets.SkyboxBase, cfg.Assets.SkyboxExt, r.srgb)
	if err != nil {
		r.Close()
		return nil, err
	}

	hits, misses := r.assets.Stats()
	r.log.Info("scene loaded",
		zap.Int("textures", len(r.textures)),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses),
	)
	return r, nil
}

// loadShaders compiles every program from the embedded sources or, when
// configured, from a directory on disk that may be watched for edits.
func (r *resources) loadShaders(cfg config.AssetsConfig) error {
	r.shaderFS = shaders.FS
	if cfg.ShaderDir != "" {
		r.shaderFS = os.DirFS(cfg.ShaderDir)
		if cfg.HotReload {
			w, err := shader.NewWatcher(cfg.ShaderDir)
			if err != nil {
				r.log.Warn("shader hot reload disabled", zap.Error(err))
			} else {
				r.watcher = w
			}
		}
	}

	for _, name := range []string{shaders.Basic, shaders.Skybox} {
		src, err := shader.Load(r.shaderFS, name)
		if err != nil {
			return err
		}
		prog, err := shader.NewProgram(src)
		if err != nil {
			return err
		}
		r.programs[name] = prog
	}
	r.basic = r.programs[shaders.Basic]
	r.sky = r.programs[shaders.Skybox]
	return nil
}

// reloadShaders recompiles programs whose files changed. A broken edit
// keeps the previous program.
func (r *resources) reloadShaders() {
	if r.watcher == nil {
		return
	}
	for _, name := range r.watcher.Changed() {
		prog, ok := r.programs[name]
		if !ok {
			continue
		}
		src, err := shader.Load(r.shaderFS, name)
		if err == nil {
			err = prog.Reload(src)
		}
		if err != nil {
			r.log.Warn("shader reload failed", zap.String("program", name), zap.Error(err))
			continue
		}
		r.log.Info("shader reloaded", zap.String("program", name))
	}
}

// texture loads a material map once. Failures fall back to the defaults.
func (r *resources) texture(name string) *texture.Texture {
	if t, ok := r.textures[name]; ok {
		return t
	}

	tex, err := r.uploadTexture(name)
	if err != nil {
		r.log.Warn("texture unavailable", zap.String("name", name), zap.Error(err))
	}
	r.textures[name] = tex
	return tex
}

func (r *resources) uploadTexture(name string) (*texture.Texture, error) {
	data, err := r.assets.Load(name)
	if err != nil {
		return nil, err
	}
	img, err := texture.Decode(name, data)
	if err != nil {
		return nil, err
	}
	return texture.Upload2D(img, r.srgb)
}

// drawObjects draws the scene and the props with their own matrices.
func (r *resources) drawObjects(u frameUniforms, p *transform.Pipeline) {
	prog := r.basic
	prog.Use()
	u.apply(prog)

	for _, id := range transform.Objects {
		prog.SetMat4("model", p.Model(id))
		prog.SetMat3("normalMatrix", p.Normal(id))
		r.meshes[id].Draw(prog)
	}
}

// drawSky draws the skybox last so it only fills uncovered pixels.
func (r *resources) drawSky(p *transform.Pipeline) {
	r.skybox.Draw(r.sky, p.SkyboxView(), p.Projection)
}

// Close frees all GPU objects and stops the shader watcher.
func (r *resources) Close() {
	if r.watcher != nil {
		if err := r.watcher.Close(); err != nil {
			r.log.Warn("closing shader watcher", zap.Error(err))
		}
	}
	for _, m := range r.meshes {
		if m != nil {
			m.Delete()
		}
	}
	if r.skybox != nil {
		r.skybox.Delete()
	}
	for _, t := range r.textures {
		t.Delete()
	}
	r.white.Delete()
	r.black.Delete()
	for _, p := range r.programs {
		p.Delete()
	}
	r.assets.Close()
}
