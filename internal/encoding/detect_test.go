package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/vitrine/internal/encoding"
)

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestDetect(t *testing.T) {
	const sheet = "Nome;Preço;Estoque\nPão de queijo;4,50;30\nAçaí;12,00;8\n"

	latin1, err := charmap.Windows1252.NewEncoder().String(sheet)
	require.NoError(t, err)

	type testCase struct {
		name        string
		input       []byte
		wantCharset string
	}

	tests := []testCase{
		{name: "UTF8", input: []byte(sheet), wantCharset: "UTF-8"},
		{name: "UTF8BOM", input: append([]byte{0xEF, 0xBB, 0xBF}, sheet...), wantCharset: "UTF-8"},
		{name: "Windows1252", input: []byte(latin1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := encoding.Detect(bytes.NewReader(tt.input))
			require.NoError(t, err)

			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			}

			assert.Equal(t, sheet, readAll(t, r))
		})
	}
}

func TestDetect_UTF16LE(t *testing.T) {
	// "Nome\n" in UTF-16 LE with BOM.
	input := []byte{0xFF, 0xFE, 'N', 0, 'o', 0, 'm', 0, 'e', 0, '\n', 0}

	r, charset, err := encoding.Detect(bytes.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "UTF-16LE", charset)
	assert.Equal(t, "Nome\n", readAll(t, r))
}

func TestDetect_RuneSplitAtSniffWindow(t *testing.T) {
	// 4095 ASCII bytes then a two-byte rune straddling the 4096 boundary.
	input := strings.Repeat("a", 4095) + "ç" + "\n"

	r, charset, err := encoding.Detect(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", charset)
	assert.Equal(t, input, readAll(t, r))
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	r, err := encoding.NewUTF8Reader(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, readAll(t, r))
}
