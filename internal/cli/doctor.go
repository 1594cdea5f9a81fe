package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/pedrohrf/ironlog/internal/persist"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	if err := checkDataDirWritable(ctx.Config.DataDir); err != nil {
		fmt.Printf("❌ Data dir writable: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Data dir writable: OK\n")
	}

	if err := checkSnapshot(ctx); err != nil {
		fmt.Printf("❌ Snapshot: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Snapshot: OK (schema v%s)\n", persist.SchemaVersion)
	}

	if stale := staleProgress(ctx); len(stale) > 0 {
		fmt.Printf("⚠ Recovery snapshots: %d exercise(s) have saved mid-execution progress\n", len(stale))
		for _, name := range stale {
			fmt.Printf("   - %s\n", name)
		}
	} else {
		fmt.Printf("✓ Recovery snapshots: none pending\n")
	}

	if n, err := otherInstances(); err != nil {
		fmt.Printf("⊘ Other instances: SKIPPED (%v)\n", err)
	} else if n > 0 {
		fmt.Printf("⚠ Other instances: %d other ironlog process(es) running - concurrent saves can race\n", n)
	} else {
		fmt.Printf("✓ Other instances: none\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All good.")
	return nil
}

func checkDataDirWritable(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return err
	}
	probe := filepath.Join(dataDir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0600); err != nil {
		return err
	}
	return os.Remove(probe)
}

func checkSnapshot(ctx *Context) error {
	payload, err := ctx.Backend.Read()
	if err != nil {
		return err
	}
	if payload == nil {
		// Fresh install; nothing to validate.
		return nil
	}
	env, ok, err := persist.DecodeEnvelope(payload)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("schema version mismatch: snapshot has %q, this build wants %q", env.Version, persist.SchemaVersion)
	}
	return nil
}

func staleProgress(ctx *Context) []string {
	var names []string
	for _, progress := range ctx.Store.State().ExerciseProgress {
		age := time.Since(progress.SavedAt).Round(time.Minute)
		names = append(names, fmt.Sprintf("%s (set %d/%d, saved %s ago)",
			progress.Execution.Name, progress.Execution.CurrentSet, progress.Execution.TotalSets, age))
	}
	return names
}

func otherInstances() (int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return 0, err
	}
	self := os.Getpid()
	n := 0
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.HasPrefix(p.Executable(), "ironlog") {
			n++
		}
	}
	return n, nil
}
