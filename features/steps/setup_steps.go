//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"drive-delivery/cmd"
	"drive-delivery/domain/delivery"
	"drive-delivery/infrastructure/tokenstore"

	"github.com/cucumber/godog"
)

// pastedCode implements delivery.CodeReader with a fixed answer
type pastedCode string

func (p pastedCode) ReadCode(ctx context.Context, authURL string) (string, error) {
	return string(p), nil
}

type setupContext struct {
	tempDir   string
	tokenPath string
	google    *fakeGoogle
	output    bytes.Buffer
	err       error
}

func InitializeSetupScenario(ctx *godog.ScenarioContext) {
	testCtx := &setupContext{}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "setup-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.tokenPath = filepath.Join(tempDir, ".drive-tokens.json")
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.google != nil {
			testCtx.google.Close()
		}
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^the token endpoint is available$`, testCtx.theTokenEndpointIsAvailable)
	ctx.Step(`^the token endpoint issues refresh token "([^"]*)"$`, testCtx.theTokenEndpointIssuesRefreshToken)
	ctx.Step(`^the token endpoint issues no refresh token$`, testCtx.theTokenEndpointIssuesNoRefreshToken)
	ctx.Step(`^the token endpoint rejects codes with body '([^']*)'$`, testCtx.theTokenEndpointRejectsCodesWithBody)
	ctx.Step(`^I run setup and paste the code "([^"]*)"$`, testCtx.iRunSetupAndPasteTheCode)
	ctx.Step(`^setup should succeed$`, testCtx.setupShouldSucceed)
	ctx.Step(`^setup should fail with "([^"]*)"$`, testCtx.setupShouldFailWith)
	ctx.Step(`^the error should contain '([^']*)'$`, testCtx.theErrorShouldContain)
	ctx.Step(`^the token file should contain refresh token "([^"]*)"$`, testCtx.theTokenFileShouldContainRefreshToken)
	ctx.Step(`^the token file should only be readable by its owner$`, testCtx.theTokenFileShouldOnlyBeReadableByItsOwner)
	ctx.Step(`^no token file should exist$`, testCtx.noTokenFileShouldExist)
}

func (s *setupContext) theTokenEndpointIsAvailable() error {
	s.google = newFakeGoogle()
	return nil
}

func (s *setupContext) theTokenEndpointIssuesRefreshToken(token string) error {
	s.google.exchangeStatus = http.StatusOK
	s.google.exchangeBody = fmt.Sprintf(`{"access_token": "a", "refresh_token": %q, "token_type": "Bearer", "expires_in": 3599}`, token)
	return nil
}

func (s *setupContext) theTokenEndpointIssuesNoRefreshToken() error {
	s.google.exchangeStatus = http.StatusOK
	s.google.exchangeBody = `{"access_token": "a", "token_type": "Bearer", "expires_in": 3599}`
	return nil
}

func (s *setupContext) theTokenEndpointRejectsCodesWithBody(body string) error {
	s.google.exchangeStatus = http.StatusBadRequest
	s.google.exchangeBody = body
	return nil
}

func (s *setupContext) iRunSetupAndPasteTheCode(code string) error {
	cfg := delivery.Config{ClientID: "c", ClientSecret: "s", FolderID: "f1"}

	s.err = cmd.RunSetupWithDependencies(
		context.Background(),
		cfg,
		s.google.oauthClient(cfg),
		tokenstore.New(s.tokenPath),
		pastedCode(code),
		nil,
		&s.output,
	)
	return nil
}

func (s *setupContext) setupShouldSucceed() error {
	if s.err != nil {
		return fmt.Errorf("expected setup to succeed, got: %v", s.err)
	}
	if !strings.Contains(s.output.String(), "Setup complete!") {
		return fmt.Errorf("expected completion message in output:\n%s", s.output.String())
	}
	return nil
}

func (s *setupContext) setupShouldFailWith(kind string) error {
	return expectErrorKind(s.err, kind)
}

func (s *setupContext) theErrorShouldContain(text string) error {
	if s.err == nil {
		return fmt.Errorf("expected an error containing %q", text)
	}
	if !strings.Contains(s.err.Error(), text) {
		return fmt.Errorf("expected error containing %q, got %q", text, s.err.Error())
	}
	return nil
}

func (s *setupContext) theTokenFileShouldContainRefreshToken(token string) error {
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		return fmt.Errorf("failed to read token file: %w", err)
	}

	var record struct {
		RefreshToken string `json:"refresh_token"`
		SavedAt      string `json:"saved_at"`
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("token file is not JSON: %w", err)
	}
	if record.RefreshToken != token {
		return fmt.Errorf("expected refresh token %q, got %q", token, record.RefreshToken)
	}
	if record.SavedAt == "" {
		return fmt.Errorf("expected saved_at to be set")
	}
	return nil
}

func (s *setupContext) theTokenFileShouldOnlyBeReadableByItsOwner() error {
	if runtime.GOOS == "windows" {
		return nil
	}
	info, err := os.Stat(s.tokenPath)
	if err != nil {
		return err
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		return fmt.Errorf("expected mode 600, got %o", perm)
	}
	return nil
}

func (s *setupContext) noTokenFileShouldExist() error {
	if _, err := os.Stat(s.tokenPath); !os.IsNotExist(err) {
		return fmt.Errorf("expected no token file at %s", s.tokenPath)
	}
	return nil
}
