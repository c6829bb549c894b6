package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"zeusemu/emu"
	"zeusemu/emu/log"
)

// applyRunFlags overrides configuration values with the command line ones.
func applyRunFlags(args Run, cfg emu.Config) emu.Config {
	if args.Format != "" {
		cfg.Video.Format = args.Format
	}
	if args.Scale > 0 {
		cfg.Video.Scale = args.Scale
	}
	if args.LogFifo {
		cfg.Zeus.LogFifo = true
	}
	if args.RegUsage != nil {
		cfg.Zeus.RegUsage = true
	}
	cfg.Check()
	return cfg
}

func traceBase(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// snapshotPath returns where the snapshot of a trace is written. With
// several traces, the trace name is inserted before the extension of path.
func snapshotPath(path, trace string, multi bool) string {
	if !multi {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + traceBase(trace) + ext
}

// runMain replays each trace on its own machine.
func runMain(args Run, cfg emu.Config) error {
	cfg = applyRunFlags(args, cfg)
	if args.RegUsage != nil {
		defer args.RegUsage.Close()
	}
	if err := os.MkdirAll(args.OutDir, 0755); err != nil {
		return err
	}

	traces := make([]*emu.Trace, len(args.Traces))
	for i, path := range args.Traces {
		t, err := emu.LoadTrace(path)
		if err != nil {
			return err
		}
		traces[i] = t
	}

	var restore []byte
	if args.Restore != "" {
		var err error
		if restore, err = os.ReadFile(args.Restore); err != nil {
			return err
		}
	}

	multi := len(traces) > 1
	machines := make([]*emu.Machine, len(traces))

	var g errgroup.Group
	g.SetLimit(max(args.Jobs, 1))
	for i, t := range traces {
		m := emu.NewMachine(cfg)
		machines[i] = m
		if !multi {
			log.AddContext(m.Sched)
			defer log.RemoveContext(m.Sched)
		}
		g.Go(func() error {
			return replay(m, t, args, cfg, restore, multi)
		})
	}
	err := g.Wait()

	if args.RegUsage != nil {
		for i, m := range machines {
			if uerr := writeUsage(args.RegUsage, traces[i].Name, m, multi); uerr != nil && err == nil {
				err = uerr
			}
		}
	}
	return err
}

func replay(m *emu.Machine, t *emu.Trace, args Run, cfg emu.Config, restore []byte, multi bool) error {
	if restore != nil {
		if err := m.LoadSnapshot(restore); err != nil {
			return fmt.Errorf("%s: restore %s: %w", t.Name, args.Restore, err)
		}
	}

	sink := &emu.FileSink{
		Dir:    args.OutDir,
		Prefix: traceBase(t.Name) + "-",
		Format: cfg.Video.Format,
		Scale:  cfg.Video.Scale,
	}
	log.ModEmu.InfoZ("replay").
		String("trace", t.Name).
		Int("ops", len(t.Ops)).
		End()
	if err := m.RunTrace(t, sink); err != nil {
		return err
	}
	log.ModEmu.InfoZ("replay done").
		String("trace", t.Name).
		Duration("now", m.Now()).
		Int("irqs", m.IRQCount()).
		Int("vblanks", m.VBlankCount()).
		End()

	if args.Snapshot == "" {
		return nil
	}
	buf, err := m.SaveSnapshot()
	if err != nil {
		return fmt.Errorf("%s: snapshot: %w", t.Name, err)
	}
	return os.WriteFile(snapshotPath(args.Snapshot, t.Name, multi), buf, 0644)
}

func writeUsage(w io.Writer, name string, m *emu.Machine, multi bool) error {
	if multi {
		if _, err := fmt.Fprintf(w, "# %s\n", name); err != nil {
			return err
		}
	}
	if err := m.Usage.WriteJSON(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// dumpMain replays a trace and writes the textual dump of wave RAM bank 0.
func dumpMain(args WaveramDump, cfg emu.Config) error {
	t, err := emu.LoadTrace(args.Trace)
	if err != nil {
		return err
	}
	m := emu.NewMachine(cfg)
	log.AddContext(m.Sched)
	defer log.RemoveContext(m.Sched)

	if err := m.RunTrace(t, nil); err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if args.Out != nil {
		defer args.Out.Close()
		w = args.Out
	}
	return m.Zeus.DumpWaveRAM(w)
}
