package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"zeusemu/emu"
)

func main() {
	cli := parseArgs(os.Args[1:])

	if cli.mode == versionMode {
		printVersion()
		return
	}

	var cfg emu.Config
	if cli.Config != "" {
		var err error
		cfg, err = emu.LoadConfig(cli.Config)
		checkf(err, "failed to load configuration")
	} else {
		cfg = emu.LoadConfigOrDefault()
	}

	switch cli.mode {
	case runMode:
		checkf(runMain(cli.Run, cfg), "replay failed")
	case dumpMode:
		checkf(dumpMain(cli.WaveramDump, cfg), "wave RAM dump failed")
	}
}

func printVersion() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		fmt.Println("zeusemu (unknown version)")
		return
	}
	fmt.Println("zeusemu", bi.Main.Version)
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision", "vcs.time", "vcs.modified":
			fmt.Printf("  %s: %s\n", s.Key, s.Value)
		}
	}
}
