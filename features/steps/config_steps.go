//go:build integration

package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"drive-delivery/domain/delivery"
	"drive-delivery/infrastructure/config"

	"github.com/cucumber/godog"
)

type configContext struct {
	tempDir    string
	configPath string
	cfg        *delivery.Config
	err        error
}

func InitializeConfigScenario(ctx *godog.ScenarioContext) {
	testCtx := &configContext{}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "config-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.configPath = filepath.Join(tempDir, "config.json")
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^a config file with clientId "([^"]*)", clientSecret "([^"]*)" and folderId "([^"]*)"$`, testCtx.aConfigFileWith)
	ctx.Step(`^no config file exists$`, testCtx.noConfigFileExists)
	ctx.Step(`^I load the config$`, testCtx.iLoadTheConfig)
	ctx.Step(`^the config should load successfully$`, testCtx.theConfigShouldLoadSuccessfully)
	ctx.Step(`^the loaded folder id should be "([^"]*)"$`, testCtx.theLoadedFolderIDShouldBe)
	ctx.Step(`^loading should fail with "([^"]*)"$`, testCtx.loadingShouldFailWith)
}

func (c *configContext) aConfigFileWith(clientID, clientSecret, folderID string) error {
	data, err := json.Marshal(map[string]string{
		"clientId":     clientID,
		"clientSecret": clientSecret,
		"folderId":     folderID,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(c.configPath, data, 0600)
}

func (c *configContext) noConfigFileExists() error {
	if _, err := os.Stat(c.configPath); err == nil {
		return os.Remove(c.configPath)
	}
	return nil
}

func (c *configContext) iLoadTheConfig() error {
	c.cfg, c.err = config.Load(c.configPath)
	return nil
}

func (c *configContext) theConfigShouldLoadSuccessfully() error {
	if c.err != nil {
		return fmt.Errorf("expected config to load, got: %v", c.err)
	}
	return nil
}

func (c *configContext) theLoadedFolderIDShouldBe(folderID string) error {
	if c.cfg == nil {
		return fmt.Errorf("no config loaded")
	}
	if c.cfg.FolderID != folderID {
		return fmt.Errorf("expected folder id %q, got %q", folderID, c.cfg.FolderID)
	}
	return nil
}

func (c *configContext) loadingShouldFailWith(kind string) error {
	return expectErrorKind(c.err, kind)
}
