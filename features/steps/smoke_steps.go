//go:build integration

package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	appdelivery "drive-delivery/application/delivery"
	"drive-delivery/cmd"
	"drive-delivery/infrastructure/tokenstore"

	"github.com/cucumber/godog"
)

type smokeContext struct {
	upload  *uploadContext
	tempDir string
	err     error
}

func InitializeSmokeScenario(ctx *godog.ScenarioContext) {
	testCtx := &smokeContext{upload: currentUpload}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "smoke-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^I run the smoke test$`, testCtx.iRunTheSmokeTest)
	ctx.Step(`^the smoke test should pass$`, testCtx.theSmokeTestShouldPass)
	ctx.Step(`^the smoke test should fail$`, testCtx.theSmokeTestShouldFail)
	ctx.Step(`^the smoke test file should be removed$`, testCtx.theSmokeTestFileShouldBeRemoved)
}

func (s *smokeContext) iRunTheSmokeTest() error {
	u := s.upload
	service := appdelivery.NewSmokeTestService(
		u.cfg,
		tokenstore.New(u.tokenPath),
		u.service(),
		s.tempDir,
		&u.output,
	)

	s.err = cmd.RunTestWithDependencies(context.Background(), service)
	return nil
}

func (s *smokeContext) theSmokeTestShouldPass() error {
	if s.err != nil {
		return fmt.Errorf("expected smoke test to pass, got: %v\n%s", s.err, s.upload.output.String())
	}
	return nil
}

func (s *smokeContext) theSmokeTestShouldFail() error {
	if s.err == nil {
		return fmt.Errorf("expected smoke test to fail")
	}
	return nil
}

func (s *smokeContext) theSmokeTestFileShouldBeRemoved() error {
	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		return err
	}
	if len(entries) != 0 {
		return fmt.Errorf("expected no leftover files, found %s", filepath.Join(s.tempDir, entries[0].Name()))
	}
	return nil
}
