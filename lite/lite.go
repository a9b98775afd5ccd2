// Package lite is the thin command scaffolding of this repository:
// cobra commands with viper-backed configuration, where every flag can
// also come from a config file or a WEBSITE_* environment variable.
package lite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/databricks/databricks-sdk-go/logger"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Command[C, T any] struct {
	Name  string
	Short string
	Long  string
	Flags func(flags *pflag.FlagSet, req *T)
	Run   func(root *Root[C], req *T) error
}

func (s *Command[C, T]) Register(root *Root[C]) {
	cmd := &cobra.Command{
		Use:   s.Name,
		Short: s.Short,
		Long:  s.Long,
	}
	root.AddCommand(cmd)

	var req T
	if s.Flags != nil {
		s.Flags(cmd.Flags(), &req)
	}
	cmd.RunE = func(_ *cobra.Command, args []string) error {
		return s.Run(root, &req)
	}
}

type Init[T any] struct {
	Name      string
	Version   string
	Short     string
	Long      string
	EnvPrefix string
	Bind      func(flags *pflag.FlagSet, cfg *T)
}

func New[T any](ctx context.Context, init Init[T]) *Root[T] {
	cmd := &Root[T]{
		Command: cobra.Command{
			Use:     init.Name,
			Short:   init.Short,
			Long:    init.Long,
			Version: init.Version,

			// usage only on flag errors, runtime errors are printed
			// by Run below
			SilenceUsage:  true,
			SilenceErrors: true,
		},
	}
	cmd.SetContext(ctx)
	cmd.SetVersionTemplate(fmt.Sprintf("%s v%s", init.Name, init.Version))
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, c.UsageString())
	})
	if init.EnvPrefix == "" {
		init.EnvPrefix = strings.ToUpper(init.Name)
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&cmd.configPath, "config", ".", "Location of the config file")
	flags.BoolVar(&cmd.Debug, "debug", false, "Enable debug log output")
	if init.Bind != nil {
		init.Bind(flags, &cmd.Config)
	}
	cmd.PersistentPreRunE = cmd.preRun(init)
	return cmd
}

type Root[T any] struct {
	cobra.Command
	Logger     *slog.Logger
	Debug      bool
	Config     T
	configPath string
}

func (r *Root[T]) initLogger() {
	level := slog.LevelInfo
	if r.Debug {
		level = slog.LevelDebug
	}
	w := r.ErrOrStderr()
	r.Logger = slog.New(&friendlyHandler{
		Handler: slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
		}),
		w: w,
	})
	logger.DefaultLogger = &slogAdapter{r.Logger}
}

func (r *Root[T]) preRun(init Init[T]) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		r.initLogger()
		v := viper.NewWithOptions(viper.WithLogger(r.Logger))
		v.SetConfigName(init.Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(r.configPath)
		v.SetEnvPrefix(init.EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		v.AutomaticEnv()

		err := v.ReadInConfig()
		if _, ok := err.(viper.ConfigFileNotFoundError); err != nil && !ok {
			return fmt.Errorf("config: %w", err)
		}
		err = r.overrideFlags(v, r.PersistentFlags())
		if err != nil {
			return fmt.Errorf("root flags: %w", err)
		}
		err = r.overrideFlags(v, cmd.Flags())
		if err != nil {
			return fmt.Errorf("command flags: %w", err)
		}
		return nil
	}
}

// overrideFlags fills every flag the user did not set explicitly from
// the config file or the matching environment variable.
func (r *Root[T]) overrideFlags(v *viper.Viper, flags *pflag.FlagSet) (err error) {
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Name == "help" {
			return
		}
		propName := strings.ReplaceAll(f.Name, "-", "_")
		if !v.IsSet(propName) {
			v.SetDefault(propName, f.DefValue)
		}
		if !f.Changed && v.IsSet(propName) {
			err = f.Value.Set(fmt.Sprintf("%v", v.Get(propName)))
		}
	})
	return err
}

type Registerable[T any] interface {
	Register(root *Root[T])
}

func (r *Root[T]) With(subs ...Registerable[T]) *Root[T] {
	for _, sub := range subs {
		sub.Register(r)
	}
	return r
}

func (r *Root[T]) Run(ctx context.Context) {
	if !r.Debug {
		defer func() {
			p := recover()
			if p != nil {
				fmt.Fprint(os.Stderr, color.RedString("PANIC: %s\n", p))
				os.Exit(2)
			}
		}()
	}
	_, err := r.ExecuteContextC(ctx)
	if err != nil {
		fmt.Fprint(os.Stderr, color.RedString("ERROR: %s\n", err.Error()))
		os.Exit(1)
	}
}
