//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	appdelivery "drive-delivery/application/delivery"
	"drive-delivery/cmd"
	"drive-delivery/domain/delivery"
	"drive-delivery/infrastructure/filesystem"
	"drive-delivery/infrastructure/tokenstore"

	"github.com/cucumber/godog"
)

// uploadContext holds test state for upload and smoke test scenarios
type uploadContext struct {
	tempDir   string
	tokenPath string
	google    *fakeGoogle
	cfg       delivery.Config
	output    bytes.Buffer
	result    *delivery.UploadResult
	err       error
}

// currentUpload is shared with the smoke test steps of the same scenario
var currentUpload *uploadContext

func InitializeUploadScenario(ctx *godog.ScenarioContext) {
	testCtx := &uploadContext{}
	currentUpload = testCtx

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "upload-test-*")
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

	ctx.Step(`^Google Drive is available$`, testCtx.googleDriveIsAvailable)
	ctx.Step(`^a valid config with folder "([^"]*)"$`, testCtx.aValidConfigWithFolder)
	ctx.Step(`^a saved refresh token "([^"]*)"$`, testCtx.aSavedRefreshToken)
	ctx.Step(`^the saved refresh token has been revoked$`, testCtx.theSavedRefreshTokenHasBeenRevoked)
	ctx.Step(`^no refresh token has been saved$`, testCtx.noRefreshTokenHasBeenSaved)
	ctx.Step(`^Drive rejects uploads with status (\d+)$`, testCtx.driveRejectsUploadsWithStatus)
	ctx.Step(`^a local file "([^"]*)" with (\d+) bytes$`, testCtx.aLocalFileWithBytes)
	ctx.Step(`^I upload "([^"]*)"$`, testCtx.iUpload)
	ctx.Step(`^I upload "([^"]*)" as "([^"]*)"$`, testCtx.iUploadAs)
	ctx.Step(`^the upload should succeed$`, testCtx.theUploadShouldSucceed)
	ctx.Step(`^the upload should fail with "([^"]*)"$`, testCtx.theUploadShouldFailWith)
	ctx.Step(`^the error should mention "([^"]*)"$`, testCtx.theErrorShouldMention)
	ctx.Step(`^the remote file name should be "([^"]*)"$`, testCtx.theRemoteFileNameShouldBe)
	ctx.Step(`^the uploaded MIME type should be "([^"]*)"$`, testCtx.theUploadedMIMETypeShouldBe)
	ctx.Step(`^the upload request should have (\d+) parts$`, testCtx.theUploadRequestShouldHaveParts)
	ctx.Step(`^the share link should contain the file id$`, testCtx.theShareLinkShouldContainTheFileID)
}

func (u *uploadContext) googleDriveIsAvailable() error {
	u.google = newFakeGoogle()
	return nil
}

func (u *uploadContext) aValidConfigWithFolder(folderID string) error {
	u.cfg = delivery.Config{ClientID: "c", ClientSecret: "s", FolderID: folderID}
	return u.cfg.Validate()
}

func (u *uploadContext) aSavedRefreshToken(token string) error {
	u.google.refreshToken = token
	_, err := tokenstore.New(u.tokenPath).Save(token)
	return err
}

func (u *uploadContext) theSavedRefreshTokenHasBeenRevoked() error {
	u.google.revoked = true
	return nil
}

func (u *uploadContext) noRefreshTokenHasBeenSaved() error {
	if err := os.Remove(u.tokenPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (u *uploadContext) driveRejectsUploadsWithStatus(status int) error {
	u.google.uploadStatus = status
	return nil
}

func (u *uploadContext) aLocalFileWithBytes(name string, size int) error {
	return os.WriteFile(filepath.Join(u.tempDir, name), bytes.Repeat([]byte("x"), size), 0644)
}

// service wires the real adapters against the fake Google endpoints
func (u *uploadContext) service() *appdelivery.UploadService {
	return appdelivery.NewUploadService(
		u.cfg,
		tokenstore.New(u.tokenPath),
		u.google.oauthClient(u.cfg),
		u.google.driveClient(),
		filesystem.NewChecker(),
		&u.output,
		nil,
	)
}

func (u *uploadContext) iUpload(name string) error {
	return u.iUploadAs(name, "")
}

func (u *uploadContext) iUploadAs(name, customName string) error {
	localPath := filepath.Join(u.tempDir, name)
	service := u.service()

	u.err = cmd.RunUploadWithDependencies(context.Background(), resultRecorder{service, u}, localPath, customName, &u.output)
	return nil
}

// resultRecorder keeps the upload result for later assertions
type resultRecorder struct {
	service *appdelivery.UploadService
	ctx     *uploadContext
}

func (r resultRecorder) UploadToDrive(ctx context.Context, localPath, customFilename string) (*delivery.UploadResult, error) {
	result, err := r.service.UploadToDrive(ctx, localPath, customFilename)
	r.ctx.result = result
	return result, err
}

func (u *uploadContext) theUploadShouldSucceed() error {
	if u.err != nil {
		return fmt.Errorf("expected upload to succeed, got: %v", u.err)
	}
	if u.result == nil || u.result.FileID == "" {
		return fmt.Errorf("expected a file id in the result")
	}
	return nil
}

func (u *uploadContext) theUploadShouldFailWith(kind string) error {
	return expectErrorKind(u.err, kind)
}

func (u *uploadContext) theErrorShouldMention(text string) error {
	if u.err == nil {
		return fmt.Errorf("expected an error mentioning %q", text)
	}
	if !strings.Contains(u.err.Error(), text) {
		return fmt.Errorf("expected error mentioning %q, got %q", text, u.err.Error())
	}
	return nil
}

func (u *uploadContext) theRemoteFileNameShouldBe(name string) error {
	upload, ok := u.google.lastUpload()
	if !ok {
		return fmt.Errorf("nothing was uploaded")
	}
	if upload.Name != name {
		return fmt.Errorf("expected remote name %q, got %q", name, upload.Name)
	}
	return nil
}

func (u *uploadContext) theUploadedMIMETypeShouldBe(mimeType string) error {
	upload, ok := u.google.lastUpload()
	if !ok {
		return fmt.Errorf("nothing was uploaded")
	}
	if upload.MimeType != mimeType {
		return fmt.Errorf("expected MIME type %q, got %q", mimeType, upload.MimeType)
	}
	return nil
}

func (u *uploadContext) theUploadRequestShouldHaveParts(parts int) error {
	upload, ok := u.google.lastUpload()
	if !ok {
		return fmt.Errorf("nothing was uploaded")
	}
	if upload.Parts != parts {
		return fmt.Errorf("expected %d parts, got %d", parts, upload.Parts)
	}
	if len(upload.Parents) != 1 || upload.Parents[0] != u.cfg.FolderID {
		return fmt.Errorf("expected parents [%s], got %v", u.cfg.FolderID, upload.Parents)
	}
	return nil
}

func (u *uploadContext) theShareLinkShouldContainTheFileID() error {
	if !strings.Contains(u.result.WebViewLink, u.result.FileID) {
		return fmt.Errorf("share link %q does not contain %q", u.result.WebViewLink, u.result.FileID)
	}
	return nil
}
