package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window WindowConfig `yaml:"window" toml:"window"`
	Assets AssetsConfig `yaml:"assets" toml:"assets"`
	Scene  SceneConfig  `yaml:"scene" toml:"scene"`
}

type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Background Color  `yaml:"background" toml:"background"`
}

type AssetsConfig struct {
	// Root is the directory asset paths are resolved against.
	Root string `yaml:"root" toml:"root"`
	// MaxTextureSize caps the longest side of a decoded texture, 0 for no cap.
	MaxTextureSize int `yaml:"max_texture_size" toml:"max_texture_size"`
}

type SceneConfig struct {
	Camera   CameraConfig   `yaml:"camera" toml:"camera"`
	Ambient  float64        `yaml:"ambient" toml:"ambient"`
	Lights   []LightConfig  `yaml:"lights" toml:"lights"`
	Floor    BoxConfig      `yaml:"floor" toml:"floor"`
	Walls    []BoxConfig    `yaml:"walls" toml:"walls"`
	Logo     LogoConfig     `yaml:"logo" toml:"logo"`
	Actors   []ActorConfig  `yaml:"actors" toml:"actors"`
	Fallback FallbackConfig `yaml:"fallback" toml:"fallback"`
	Shadow   Color          `yaml:"shadow" toml:"shadow"`
}

type CameraConfig struct {
	Position mgl64.Vec3 `yaml:"position" toml:"position"`
	Target   mgl64.Vec3 `yaml:"target" toml:"target"`
	FOV      float64    `yaml:"fov" toml:"fov"`
}

type LightConfig struct {
	Position  mgl64.Vec3 `yaml:"position" toml:"position"`
	Intensity float64    `yaml:"intensity" toml:"intensity"`
}

type BoxConfig struct {
	Name     string     `yaml:"name" toml:"name"`
	Position mgl64.Vec3 `yaml:"position" toml:"position"`
	Size     mgl64.Vec3 `yaml:"size" toml:"size"`
	Color    Color      `yaml:"color" toml:"color"`
	// Edge outlines every face when set.
	Edge *Color `yaml:"edge,omitempty" toml:"edge,omitempty"`
	// ReceiveShadow makes the box's top a shadow receiver.
	ReceiveShadow bool `yaml:"receive_shadow" toml:"receive_shadow"`
}

type LogoConfig struct {
	Position    mgl64.Vec3 `yaml:"position" toml:"position"`
	Width       float64    `yaml:"width" toml:"width"`
	Height      float64    `yaml:"height" toml:"height"`
	Texture     string     `yaml:"texture" toml:"texture"`
	ColorSpace  string     `yaml:"color_space" toml:"color_space"`
	Transparent bool       `yaml:"transparent" toml:"transparent"`
}

type ActorConfig struct {
	Name     string     `yaml:"name" toml:"name"`
	Path     string     `yaml:"path" toml:"path"`
	Position mgl64.Vec3 `yaml:"position" toml:"position"`
	Scale    float64    `yaml:"scale" toml:"scale"`
	Recolor  *Color     `yaml:"recolor,omitempty" toml:"recolor,omitempty"`
	Enabled  bool       `yaml:"enabled" toml:"enabled"`
}

type FallbackConfig struct {
	Size  float64 `yaml:"size" toml:"size"`
	Color Color   `yaml:"color" toml:"color"`
	Label string  `yaml:"label" toml:"label"`
}

// Default is the login room as it ships.
func Default() Config {
	black := RGBA(0, 0, 0, 255)
	white := RGBA(255, 255, 255, 255)
	return Config{
		Window: WindowConfig{
			Title:      "sieroom",
			Width:      1024,
			Height:     768,
			Background: RGBA(0xf0, 0xf0, 0xf0, 255),
		},
		Assets: AssetsConfig{
			Root:           "public",
			MaxTextureSize: 1024,
		},
		Scene: SceneConfig{
			Camera: CameraConfig{
				Position: mgl64.Vec3{0, 5, 10},
				Target:   mgl64.Vec3{0, 0, 0},
				FOV:      60,
			},
			Ambient: 0.55,
			Lights: []LightConfig{
				{Position: mgl64.Vec3{10, 10, 10}, Intensity: 0.6},
			},
			Floor: BoxConfig{
				Name:          "floor",
				Position:      mgl64.Vec3{0, -0.1, 0},
				Size:          mgl64.Vec3{6.4, 0.3, 6},
				Color:         white,
				ReceiveShadow: true,
			},
			Walls: []BoxConfig{
				{Name: "back", Position: mgl64.Vec3{0, 2.5, -3}, Size: mgl64.Vec3{6, 5, 0.2}, Color: white, Edge: &black, ReceiveShadow: true},
				{Name: "left", Position: mgl64.Vec3{-3.1, 2.5, 0}, Size: mgl64.Vec3{0.2, 5, 6.2}, Color: white, Edge: &black, ReceiveShadow: true},
				{Name: "right", Position: mgl64.Vec3{3.1, 2.5, 0}, Size: mgl64.Vec3{0.2, 5, 6.2}, Color: white, Edge: &black, ReceiveShadow: true},
			},
			Logo: LogoConfig{
				Position:    mgl64.Vec3{0, 1.5, -2.89},
				Width:       1.5,
				Height:      1.5,
				Texture:     "assets/aumlogo.png",
				ColorSpace:  "srgb",
				Transparent: true,
			},
			Actors: []ActorConfig{
				{Name: "chair", Path: "/models/surgical_chair.glb", Position: mgl64.Vec3{0, 0.9, 0}, Scale: 0.8, Enabled: true},
				{Name: "nurse", Path: "/models/nurse_surgical_rigged.glb", Position: mgl64.Vec3{-0.3, 1.3, -1}, Scale: 0.8, Enabled: true},
				{Name: "table", Path: "/models/surgical__instrument_table_collection.glb", Position: mgl64.Vec3{-1.6, 0, 0}, Scale: 0.8, Enabled: true},
				{Name: "bottle", Path: "/models/Purple_Water_Bottle_o_0409083005_texture.glb", Position: mgl64.Vec3{-1.6, 0, 5}, Scale: 0.8, Enabled: false},
			},
			Fallback: FallbackConfig{
				Size:  0.3,
				Color: RGBA(255, 0, 0, 255),
				Label: "Model Error",
			},
			Shadow: RGBA(0, 0, 0, 70),
		},
	}
}

// Load reads a YAML or TOML file over Default. Lists in the file replace
// the default lists.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &raw); err == nil {
			resetLists(&cfg, raw)
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			if err = dec.Decode(&cfg); errors.Is(err, io.EOF) {
				err = nil
			}
		}
	case ".toml":
		if err = toml.Unmarshal(data, &raw); err == nil {
			resetLists(&cfg, raw)
			err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg)
		}
	default:
		return cfg, fmt.Errorf("config %s: unknown format %q", path, filepath.Ext(path))
	}
	if err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// resetLists drops the default lists the file provides so that decoding
// replaces them instead of merging element by element.
func resetLists(cfg *Config, raw map[string]any) {
	scene, ok := raw["scene"].(map[string]any)
	if !ok {
		return
	}
	if _, ok := scene["lights"]; ok {
		cfg.Scene.Lights = nil
	}
	if _, ok := scene["walls"]; ok {
		cfg.Scene.Walls = nil
	}
	if _, ok := scene["actors"]; ok {
		cfg.Scene.Actors = nil
	}
}

// EnabledActors returns the actors to place in the room, in order.
func (s SceneConfig) EnabledActors() []ActorConfig {
	var out []ActorConfig
	for _, a := range s.Actors {
		if a.Enabled {
			out = append(out, a)
		}
	}
	return out
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Scene.Camera.FOV <= 0 || c.Scene.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %v must be in (0, 180)", c.Scene.Camera.FOV))
	}
	if c.Scene.Camera.Position.ApproxEqual(c.Scene.Camera.Target) {
		errs = append(errs, errors.New("camera position and target coincide"))
	}
	if c.Scene.Ambient < 0 || c.Scene.Ambient > 1 {
		errs = append(errs, fmt.Errorf("ambient %v must be in [0, 1]", c.Scene.Ambient))
	}
	if c.Scene.Logo.Width <= 0 || c.Scene.Logo.Height <= 0 {
		errs = append(errs, errors.New("logo size must be positive"))
	}
	switch strings.ToLower(c.Scene.Logo.ColorSpace) {
	case "", "srgb", "linear":
	default:
		errs = append(errs, fmt.Errorf("logo color space %q must be srgb or linear", c.Scene.Logo.ColorSpace))
	}
	if c.Scene.Fallback.Size <= 0 {
		errs = append(errs, errors.New("fallback size must be positive"))
	}

	seen := make(map[string]bool)
	for i, a := range c.Scene.Actors {
		switch {
		case a.Name == "":
			errs = append(errs, fmt.Errorf("actor %d has no name", i))
		case seen[a.Name]:
			errs = append(errs, fmt.Errorf("actor %q defined twice", a.Name))
		}
		seen[a.Name] = true
		if a.Path == "" {
			errs = append(errs, fmt.Errorf("actor %q has no path", a.Name))
		}
		if a.Scale <= 0 {
			errs = append(errs, fmt.Errorf("actor %q scale %v must be positive", a.Name, a.Scale))
		}
	}
	return errors.Join(errs...)
}
