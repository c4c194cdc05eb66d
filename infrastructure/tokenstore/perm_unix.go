//go:build !windows

package tokenstore

import "os"

func restrictToOwner(path string) error {
	return os.Chmod(path, 0600)
}
