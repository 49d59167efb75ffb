package attachment

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onePagePDF builds a minimal PDF with a correct cross-reference table
func onePagePDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 200] >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestChecker_Check(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o600))
		return path
	}

	valid := write("NF 4521.pdf", onePagePDF())
	garbage := write("NF 9999.pdf", []byte("not a pdf"))
	image := write("NF 1234.png", []byte{0x89, 'P', 'N', 'G'})

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"valid pdf", valid, nil},
		{"missing file", filepath.Join(dir, "NF 0000.pdf"), ErrMissing},
		{"directory", dir, ErrMissing},
		{"wrong extension", image, ErrUnreadable},
		{"corrupt pdf", garbage, ErrUnreadable},
	}

	checker := NewChecker(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checker.Check(tt.path)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
