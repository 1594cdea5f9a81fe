package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pedrohrf/ironlog/internal/models"
	"github.com/pedrohrf/ironlog/internal/persist"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := os.MkdirAll(ctx.Config.DataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	existing, err := ctx.Backend.Read()
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("storage already initialized at %s", ctx.Config.DataDir)
	}

	state := models.NewInitialState()
	state.LastSeenDate = time.Now().Format("2006-01-02")
	payload, err := persist.EncodeEnvelope(state, time.Now())
	if err != nil {
		return err
	}
	if err := ctx.Backend.Write(payload); err != nil {
		return err
	}

	configPath := filepath.Join(ctx.Config.DataDir, "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		data, err := yaml.Marshal(ctx.Config)
		if err != nil {
			return fmt.Errorf("failed to serialize default config: %w", err)
		}
		if err := os.WriteFile(configPath, data, 0600); err != nil {
			return fmt.Errorf("failed to write default config: %w", err)
		}
	}

	fmt.Printf("Initialized ironlog storage at: %s\n", ctx.Config.DataDir)
	return nil
}
