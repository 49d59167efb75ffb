package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// UserFileName is stored in the workbook's folder
	UserFileName = "sap_user.txt"

	// DefaultUser is used until an operator saves one
	DefaultUser = "TTTT"
)

// UserFile returns the user file path for a workbook
func UserFile(workbookPath string) string {
	return filepath.Join(filepath.Dir(workbookPath), UserFileName)
}

// LoadUser reads the host user saved next to the workbook.
// A missing or empty file yields DefaultUser.
func LoadUser(workbookPath string) (string, error) {
	data, err := os.ReadFile(UserFile(workbookPath))
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultUser, nil
	}
	if err != nil {
		return DefaultUser, fmt.Errorf("failed to read %s: %w", UserFileName, err)
	}
	user := strings.TrimSpace(string(data))
	if user == "" {
		return DefaultUser, nil
	}
	return user, nil
}

// SaveUser writes the host user next to the workbook
func SaveUser(workbookPath, user string) error {
	user = strings.TrimSpace(user)
	if user == "" {
		return errors.New("user is required")
	}
	if info, err := os.Stat(workbookPath); err != nil || info.IsDir() {
		return fmt.Errorf("workbook %s not found; the user is saved in its folder", workbookPath)
	}
	if err := os.WriteFile(UserFile(workbookPath), []byte(user), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", UserFileName, err)
	}
	return nil
}
