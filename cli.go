package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"zeusemu/emu/log"
)

type mode byte

const (
	runMode     mode = iota // Replay bus traces
	dumpMode                // Dump bank 0 of wave RAM after a trace
	versionMode             // Show zeusemu version
)

type (
	CLI struct {
		Run         Run         `cmd:"" help:"Replay bus traces, writing the frames they ask for."`
		WaveramDump WaveramDump `cmd:"" help:"Replay a bus trace and dump wave RAM bank 0." name:"waveram-dump"`
		Version     Version     `cmd:"" help:"Show zeusemu version."`

		Config string     `help:"${config_help}" type:"existingfile" placeholder:"FILE"`
		Log    logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		Traces []string `arg:"" name:"trace" help:"Bus trace files to replay." type:"existingfile"`

		OutDir   string   `name:"out-dir" help:"Directory frames are written to." default:"." type:"path"`
		Format   string   `name:"format" help:"Frame format, png or bmp. (overrides config)"`
		Scale    int      `name:"scale" help:"Frame upscaling factor. (overrides config)"`
		Jobs     int      `name:"jobs" short:"j" help:"Number of traces replayed concurrently." default:"4"`
		LogFifo  bool     `name:"log-fifo" help:"Log every FIFO command."`
		Restore  string   `name:"restore" help:"${restore_help}" type:"existingfile" placeholder:"FILE"`
		Snapshot string   `name:"snapshot" help:"${snapshot_help}" type:"path" placeholder:"FILE"`
		RegUsage *outfile `name:"reg-usage" help:"Write a JSON register usage report." placeholder:"FILE|stdout|stderr"`
	}

	WaveramDump struct {
		Trace string   `arg:"" name:"trace" help:"Bus trace file to replay." type:"existingfile"`
		Out   *outfile `name:"out" short:"o" help:"Dump destination." placeholder:"FILE|stdout|stderr"`
	}

	Version struct{}
)

var vars = kong.Vars{
	"config_help":   "Configuration file. (default: config.toml in the user config directory)",
	"log_help":      "Enable logging for specified modules.",
	"restore_help":  "Load a machine snapshot before replaying each trace.",
	"snapshot_help": "Write a machine snapshot after each trace. With several traces, the trace name is appended to FILE.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("zeusemu"),
		kong.Description("Midway Zeus2 video coprocessor emulator."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch strings.Fields(ctx.Command())[0] {
	case "waveram-dump":
		cfg.mode = dumpMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") || strings.HasPrefix(ctx.Command(), "waveram-dump") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
