package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/stepsmith/stepsmith/internal/batch"
	"github.com/stepsmith/stepsmith/internal/ssc"
	"github.com/stepsmith/stepsmith/internal/tool"
	"github.com/stepsmith/stepsmith/internal/tool/fakemines"
)

// ErrConflicts is returned when a transform refuses to run because of mine
// conflicts. The full report has already been printed by the time callers
// see this.
var ErrConflicts = errors.New("conflicting mines found")

// resolvePath turns the command-line path argument into the .ssc file to
// operate on. A sibling .sm file is only reported when the argument is a
// song directory, matching how the path was most likely chosen.
func resolvePath(path string) (sscPath, smPath string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", "", err
	}
	if !info.IsDir() {
		return path, "", nil
	}

	d, err := ssc.OpenDir(path)
	if err != nil {
		return "", "", err
	}
	if d.SSCPath == "" {
		return "", "", fmt.Errorf("song directory %s has no .ssc file", path)
	}
	return d.SSCPath, d.SMPath, nil
}

func hasSplitTiming(sim *ssc.Simfile) bool {
	for _, chart := range sim.Charts {
		if chart.HasTiming() {
			return true
		}
	}
	return false
}

func printSMWarning(w io.Writer) {
	fmt.Fprint(w,
		"WARNING: there is an SM file in this directory, but the SSC has split timing.\n"+
			"The StepMania editor will not save an SM file in this case,\n"+
			"and the two files may become out of sync.\n"+
			"Delete the SM file or pass -ignore-sm to suppress this warning.\n\n")
}

func printActions(w io.Writer, actions []tool.Action) {
	for _, act := range actions {
		fmt.Fprintf(w, "    %s\n", act)
	}
	fmt.Fprintln(w)
}

// runSong applies the tool to a single simfile and writes the transformed
// file, honoring -dry-run and -o.
func (a *App) runSong(ctx context.Context, t tool.Tool, opts tool.Options, path, output string, w io.Writer) error {
	sscPath, smPath, err := resolvePath(path)
	if err != nil {
		return err
	}
	if a.config.IgnoreSM {
		smPath = ""
	}

	sim, err := ssc.Load(sscPath)
	if err != nil {
		return err
	}

	// The split timing warning fires at most once, whether the file came in
	// with split timing or the transform introduced it.
	printedSMWarning := false
	if smPath != "" && hasSplitTiming(sim) {
		printSMWarning(w)
		printedSMWarning = true
	}

	var conflict *fakemines.ConflictError
	res, err := t.Apply(ctx, sim, opts)
	if err != nil {
		if !errors.As(err, &conflict) {
			return err
		}
		fmt.Fprintln(w, conflict.Error())
		res = &tool.Result{}
	}

	if smPath != "" && !printedSMWarning && hasSplitTiming(sim) {
		printSMWarning(w)
	}

	if !res.Effective() {
		if len(res.Actions) > 0 {
			fmt.Fprintln(w, "No actions taken:")
			printActions(w, res.Actions)
		} else {
			fmt.Fprintln(w, "No actions taken")
		}
		if conflict != nil {
			return ErrConflicts
		}
		return nil
	}

	fmt.Fprintln(w, "Actions taken:")
	printActions(w, res.Actions)

	if a.config.DryRun {
		fmt.Fprintln(w, "Not writing changes for dry run")
		return nil
	}
	if output != "" {
		fmt.Fprintf(w, "Writing changes to %s\n", output)
		return ssc.WriteFile(output, sim)
	}
	fmt.Fprintf(w, "Writing changes to %s & backing up original file to %s\n", sscPath, ssc.BackupPath(sscPath))
	return ssc.WriteWithBackup(sscPath, sim)
}

// runPack applies the tool to every song directory under the pack root.
func (a *App) runPack(ctx context.Context, t tool.Tool, opts tool.Options) error {
	fn := func(ctx context.Context, dir string) ([]tool.Action, error) {
		d, err := ssc.OpenDir(dir)
		if err != nil {
			return nil, err
		}
		if d.SSCPath == "" {
			return []tool.Action{{Text: "no .ssc file, skipped", Noop: true}}, nil
		}

		sim, err := ssc.Load(d.SSCPath)
		if err != nil {
			return nil, err
		}

		res, err := t.Apply(ctx, sim, opts)
		if err != nil {
			return nil, err
		}

		if d.SMPath != "" && !a.config.IgnoreSM && hasSplitTiming(sim) {
			a.logger.Warn("SSC has split timing but an SM file is present; the files may drift apart.",
				"dir", dir, "sm", d.SMPath)
		}

		if res.Effective() && !a.config.DryRun {
			if err := ssc.WriteWithBackup(d.SSCPath, sim); err != nil {
				return res.Actions, err
			}
		}
		return res.Actions, nil
	}

	results, err := batch.Process(ctx, a.config.Path, a.config.Workers, fn)
	if err != nil {
		return err
	}

	changed, failed := 0, 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(a.outW, "%s: error: %v\n", r.Path, r.Err)
		case len(r.Actions) == 0:
			fmt.Fprintf(a.outW, "%s: no actions taken\n", r.Path)
		default:
			effective := false
			for _, act := range r.Actions {
				if !act.Noop {
					effective = true
				}
			}
			if effective {
				changed++
			}
			fmt.Fprintf(a.outW, "%s:\n", r.Path)
			printActions(a.outW, r.Actions)
		}
	}

	fmt.Fprintf(a.outW, "Processed %d songs (%d changed, %d failed)\n", len(results), changed, failed)
	if a.config.DryRun {
		fmt.Fprintln(a.outW, "Not writing changes for dry run")
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d songs failed", failed, len(results))
	}
	return nil
}
