package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	cfg "github.com/jonpas/SensExp/config"
	"github.com/jonpas/SensExp/logging"
	"github.com/jonpas/SensExp/orchestrator"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	conf    *cfg.Root
}

func newRootCmd() *cobra.Command {
	a := &app{v: cfg.New()}
	root := &cobra.Command{
		Use:               "sensexp-analysis <audio> <accel>",
		Short:             "Plot a SensExp audio recording above its accelerometer log",
		Args:              cobra.ExactArgs(2),
		PersistentPreRunE: a.setup,
		RunE:              a.run,
		SilenceErrors:     true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default config/$CONFIG_ENV/config.yaml or ./sensexp.yaml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")
	a.bind("log.level", pf, "log-level")
	a.bind("log.format", pf, "log-format")

	f := root.Flags()
	f.Bool("prompt", true, "overlay the rescaled prompt flag on the accelerometer panel")
	f.Bool("save", false, "write figure.png and summary.json to the outputs directory")
	f.String("out", "outputs", "outputs directory used with --save")
	f.Bool("view", true, "show the figure and wait for the viewer window to close")
	f.Bool("browser", true, "open the viewer in the default browser")
	f.String("addr", "127.0.0.1:0", "viewer listen address")
	f.String("ffmpeg", "ffmpeg", "ffmpeg binary used to decode non-wav audio")
	a.bind("plot.prompt", f, "prompt")
	a.bind("save", f, "save")
	a.bind("paths.outputs", f, "out")
	a.bind("viewer.enabled", f, "view")
	a.bind("viewer.open_browser", f, "browser")
	a.bind("viewer.addr", f, "addr")
	a.bind("audio.ffmpeg", f, "ffmpeg")

	root.AddCommand(a.configCmd())
	return root
}

func (a *app) bind(key string, fs *pflag.FlagSet, name string) {
	if err := a.v.BindPFlag(key, fs.Lookup(name)); err != nil {
		panic(err)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	conf, err := cfg.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	if err := logging.Setup(conf.Log.Level, conf.Log.Format); err != nil {
		return err
	}
	a.conf = conf
	return nil
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return orchestrator.NewPipeline(a.conf).Run(cmd.Context(), args[0], args[1])
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.conf.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
