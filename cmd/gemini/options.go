package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xhd2015/gemini/config"
	"github.com/xhd2015/gemini/generate"
)

const envPrefix = "GEMINI"

// opt is a single command line option, also read from GEMINI_<FLAG>.
type opt struct {
	destP interface{}
	flag  string
	dflt  interface{}
	desc  string
}

// bindOptions adds opts to flags and registers them with v.
func bindOptions(v *viper.Viper, flags *pflag.FlagSet, opts []opt) {
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	// This normalizes "-" to an underscore in env names.
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	for _, o := range opts {
		switch destP := o.destP.(type) {
		case *string:
			var d string
			if o.dflt != nil {
				d = o.dflt.(string)
			}
			flags.StringVar(destP, o.flag, d, o.desc)
		case *int:
			var d int
			if o.dflt != nil {
				d = o.dflt.(int)
			}
			flags.IntVar(destP, o.flag, d, o.desc)
		case *bool:
			var d bool
			if o.dflt != nil {
				d = o.dflt.(bool)
			}
			flags.BoolVar(destP, o.flag, d, o.desc)
		default:
			panic(fmt.Errorf("unknown destination type %T", o.destP))
		}
		if err := v.BindPFlag(o.flag, flags.Lookup(o.flag)); err != nil {
			panic(err)
		}
	}
}

// options are shared by gen, check and explain.
type options struct {
	v *viper.Viper

	configFile  string
	tag         string
	asyncPkg    string
	concurrency int
	dryRun      bool
	noPrune     bool
	logLevel    string
	logDebug    string
}

func newOptions() *options {
	return &options{v: viper.New()}
}

func (o *options) bind(cmd *cobra.Command, generating bool) {
	opts := []opt{
		{&o.configFile, "config", "", "config file, " + config.DefaultFile + " if present"},
		{&o.asyncPkg, "async-pkg", "", "import path of the async package"},
	}
	if generating {
		opts = append(opts,
			opt{&o.logLevel, "log-level", "", "log level: debug, info, warn or error"},
			opt{&o.logDebug, "log-debug", "", "debug log target: stderr, stdout or a file"},
			opt{&o.tag, "tag", "", "build tag selecting the blocking variants, default " + config.DefaultTag},
			opt{&o.concurrency, "concurrency", 0, "files processed in parallel, GOMAXPROCS if 0"},
			opt{&o.noPrune, "no-prune", false, "keep generated files whose source has no annotation left"},
		)
	}
	bindOptions(o.v, cmd.Flags(), opts)
}

// resolve loads the config file and applies env and flags on top:
// flag > env > file > default.
func (o *options) resolve() (config.Config, error) {
	v := o.v
	cfg, err := config.Load(v.GetString("config"))
	if err != nil {
		return cfg, err
	}
	if v.IsSet("tag") {
		cfg.Tag = v.GetString("tag")
	}
	if v.IsSet("async-pkg") {
		cfg.AsyncPkg = v.GetString("async-pkg")
	}
	if v.IsSet("concurrency") {
		cfg.Concurrency = v.GetInt("concurrency")
	}
	if v.IsSet("no-prune") {
		cfg.NoPrune = v.GetBool("no-prune")
	}
	if v.IsSet("log-level") {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
			return cfg, fmt.Errorf("log-level: %w", err)
		}
		cfg.Log.Level = level
	}
	if v.IsSet("log-debug") {
		cfg.Log.Debug = v.GetString("log-debug")
	}
	return cfg, cfg.Validate()
}

// setupLogger installs the logger described by cfg for the generate
// package. The returned func flushes it.
func setupLogger(cfg config.Config, stderr io.Writer) (func(), error) {
	logger, closeLog, err := config.SetupLogger(cfg.Log, stderr)
	if err != nil {
		return nil, err
	}
	generate.SetLogger(logger)
	return func() {
		logger.Sync()
		if closeLog != nil {
			closeLog()
		}
		generate.SetLogger(zap.NewNop())
	}, nil
}

// defaultPaths is what to generate when no path is given: the file
// go generate runs for, else the working directory.
func defaultPaths(args []string) []string {
	if len(args) > 0 {
		return args
	}
	if file := os.Getenv("GOFILE"); file != "" {
		return []string{file}
	}
	return []string{"."}
}
