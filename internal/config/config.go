// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics" toml:"graphics"`
	Camera   CameraConfig   `yaml:"camera" toml:"camera"`
	Scene    SceneConfig    `yaml:"scene" toml:"scene"`
	Lighting LightingConfig `yaml:"lighting" toml:"lighting"`
	Fog      FogConfig      `yaml:"fog" toml:"fog"`
	Intro    IntroConfig    `yaml:"intro" toml:"intro"`
	Assets   AssetsConfig   `yaml:"assets" toml:"assets"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
	Debug    DebugConfig    `yaml:"debug" toml:"debug"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Title      string     `yaml:"title" toml:"title"`
	Width      int        `yaml:"width" toml:"width"`
	Height     int        `yaml:"height" toml:"height"`
	Fullscreen bool       `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool       `yaml:"vsync" toml:"vsync"`
	SRGB       bool       `yaml:"srgb" toml:"srgb"`
	ClearColor [3]float32 `yaml:"clear_color" toml:"clear_color"`

	// SharedNormalMatrix makes the props reuse the scene's normal matrix.
	SharedNormalMatrix bool `yaml:"shared_normal_matrix" toml:"shared_normal_matrix"`
}

// CameraConfig holds the free camera setup.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position" toml:"position"`
	Target      [3]float32 `yaml:"target" toml:"target"`
	Up          [3]float32 `yaml:"up" toml:"up"`
	Speed       float32    `yaml:"speed" toml:"speed"`             // units per frame
	Sensitivity float32    `yaml:"sensitivity" toml:"sensitivity"` // degrees per pixel
	FOV         float32    `yaml:"fov" toml:"fov"`
	MinFOV      float32    `yaml:"min_fov" toml:"min_fov"`
	MaxFOV      float32    `yaml:"max_fov" toml:"max_fov"`
	Near        float32    `yaml:"near" toml:"near"`
	Far         float32    `yaml:"far" toml:"far"`

	// StartCursor is the synthetic mouse position fed on the first frame.
	StartCursor  [2]float64 `yaml:"start_cursor" toml:"start_cursor"`
	BookmarkFile string     `yaml:"bookmark_file" toml:"bookmark_file"`
}

// SceneConfig holds object placement and animation rates.
type SceneConfig struct {
	SceneStep  float32    `yaml:"scene_step" toml:"scene_step"` // degrees per frame while Q/E held
	PropStep   float32    `yaml:"prop_step" toml:"prop_step"`   // degrees per frame
	PropPivotA [3]float32 `yaml:"prop_pivot_a" toml:"prop_pivot_a"`
	PropPivotB [3]float32 `yaml:"prop_pivot_b" toml:"prop_pivot_b"`
}

// PointLightConfig describes one point light.
type PointLightConfig struct {
	Position [3]float32 `yaml:"position" toml:"position"`
	Color    [3]float32 `yaml:"color" toml:"color"`
}

// LightingConfig holds the light rig.
type LightingConfig struct {
	Direction   [3]float32         `yaml:"direction" toml:"direction"`
	Color       [3]float32         `yaml:"color" toml:"color"`
	AngleStep   float32            `yaml:"angle_step" toml:"angle_step"`
	PointLights []PointLightConfig `yaml:"point_lights" toml:"point_lights"`
}

// MaxFogDensity is the upper bound for FogConfig.Max.
const MaxFogDensity = 0.3

// FogConfig holds fog settings.
type FogConfig struct {
	Density float32 `yaml:"density" toml:"density"`
	Step    float32 `yaml:"step" toml:"step"`
	Max     float32 `yaml:"max" toml:"max"`
}

// IntroConfig holds the intro camera dolly timeline.
type IntroConfig struct {
	Enabled       bool     `yaml:"enabled" toml:"enabled"`
	RetreatEnd    Duration `yaml:"retreat_end" toml:"retreat_end"`
	ApproachStart Duration `yaml:"approach_start" toml:"approach_start"`
	ApproachEnd   Duration `yaml:"approach_end" toml:"approach_end"`
}

// AssetsConfig holds asset locations relative to Root.
type AssetsConfig struct {
	Root       string   `yaml:"root" toml:"root"`
	Scene      string   `yaml:"scene" toml:"scene"`
	PropA      string   `yaml:"prop_a" toml:"prop_a"`
	PropB      string   `yaml:"prop_b" toml:"prop_b"`
	SkyboxDir  string   `yaml:"skybox_dir" toml:"skybox_dir"`
	SkyboxBase string   `yaml:"skybox_base" toml:"skybox_base"`
	SkyboxExt  string   `yaml:"skybox_ext" toml:"skybox_ext"`
	ShaderDir  string   `yaml:"shader_dir" toml:"shader_dir"` // empty uses the embedded shaders
	HotReload  bool     `yaml:"hot_reload" toml:"hot_reload"`
	Extra      []string `yaml:"extra,omitempty" toml:"extra,omitempty"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level" toml:"level"`
	LogFile    string `yaml:"log_file" toml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days"`
	Compress   bool   `yaml:"compress" toml:"compress"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ShowFPS       bool   `yaml:"show_fps" toml:"show_fps"`
	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
	CheckGLErrors bool   `yaml:"check_gl_errors" toml:"check_gl_errors"`
}

// Default returns a Config with the village scene defaults.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:      "Project - Village",
			Width:      1324,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
			SRGB:       true,
			ClearColor: [3]float32{0.7, 0.7, 0.7},
		},
		Camera: CameraConfig{
			Position:     [3]float32{-1.00754, 0.707724, 2.29122},
			Target:       [3]float32{-1.00754, 0, 1.35013},
			Up:           [3]float32{0, 1, 0},
			Speed:        0.1,
			Sensitivity:  0.1,
			FOV:          45,
			MinFOV:       1,
			MaxFOV:       45,
			Near:         0.1,
			Far:          100,
			StartCursor:  [2]float64{400, 100},
			BookmarkFile: "camera.yaml",
		},
		Scene: SceneConfig{
			SceneStep:  1,
			PropStep:   0.4,
			PropPivotA: [3]float32{18.9, 6.41205, -16.7575},
			PropPivotB: [3]float32{14.1481, 6.25291, -16.6224},
		},
		Lighting: LightingConfig{
			Direction: [3]float32{0, 1, 1},
			Color:     [3]float32{1, 1, 1},
			AngleStep: 2,
			PointLights: []PointLightConfig{
				{Position: [3]float32{-5.77464, 2.01812, -0.85487}, Color: [3]float32{1, 1, 0}},
				{Position: [3]float32{-5.77464, 2.01812, -5.8723}, Color: [3]float32{1, 1, 0}},
			},
		},
		Fog: FogConfig{
			Density: 0,
			Step:    0.002,
			Max:     0.3,
		},
		Intro: IntroConfig{
			Enabled:       true,
			RetreatEnd:    Seconds(10),
			ApproachStart: Seconds(11.5),
			ApproachEnd:   Seconds(16),
		},
		Assets: AssetsConfig{
			Root:       "assets",
			Scene:      "models/scene/scene.obj",
			PropA:      "models/scene/lance1.obj",
			PropB:      "models/scene/lance2.obj",
			SkyboxDir:  "skybox",
			SkyboxBase: "hills",
			SkyboxExt:  ".tga",
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		Debug: DebugConfig{
			ShowFPS:       false,
			ScreenshotDir: "screenshots",
			CheckGLErrors: true,
		},
	}
}
