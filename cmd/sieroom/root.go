package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/smasonuk/sieroom/internal/assets"
	"github.com/smasonuk/sieroom/internal/config"
	"github.com/smasonuk/sieroom/internal/room"
	"github.com/smasonuk/sieroom/internal/view"
	"github.com/smasonuk/sieroom/pkg/logger"
)

type options struct {
	configPath string
	assetRoot  string
	width      int
	height     int
	showFPS    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "sieroom",
		Short:         "Show the login room",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			r := room.New(cfg.Scene, newCache(cfg))
			defer r.Close()

			g := view.NewGame(r, cfg.Window)
			g.ShowFPS = opts.showFPS
			return view.Run(g)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML or TOML config file")
	f.StringVar(&opts.assetRoot, "assets", "", "directory asset paths are resolved against")
	f.IntVar(&opts.width, "width", 0, "window width")
	f.IntVar(&opts.height, "height", 0, "window height")
	cmd.Flags().BoolVar(&opts.showFPS, "fps", false, "show frame rate")

	cmd.AddCommand(newTreeCmd(opts))
	return cmd
}

// load reads the config file, if any, and applies the flags set on cmd.
func (o *options) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("assets") {
		cfg.Assets.Root = o.assetRoot
	}
	if flags.Changed("width") {
		cfg.Window.Width = o.width
	}
	if flags.Changed("height") {
		cfg.Window.Height = o.height
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	if _, err := os.Stat(cfg.Assets.Root); err != nil {
		return cfg, fmt.Errorf("asset root: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"config": o.configPath,
		"assets": cfg.Assets.Root,
		"actors": len(cfg.Scene.EnabledActors()),
	}).Info("configuration loaded")
	return cfg, nil
}

func newCache(cfg config.Config) *assets.Cache {
	return assets.NewCache(os.DirFS(cfg.Assets.Root),
		assets.WithLoader(assets.KindImage, &assets.TextureLoader{
			MaxSize:    cfg.Assets.MaxTextureSize,
			ColorSpace: assets.ParseColorSpace(cfg.Scene.Logo.ColorSpace),
		}),
	)
}
