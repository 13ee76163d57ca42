package qrgen_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pchouse/atqr/pkg/qrgen"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

const samplePayload = "A:123456789*B:999999990*C:PT*D:FS*E:N*F:20230812" +
	"*G:FS CDVF/12345*H:CDF7T5HD-12345" +
	"*I1:PT*I7:0.65*I8:0.15*N:0.15*O:0.80*Q:YhGV*R:9999"

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("produces png", func(t *testing.T) {
		t.Parallel()
		png, err := qrgen.Encode(samplePayload, 256)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, pngMagic))
	})

	t.Run("default size", func(t *testing.T) {
		t.Parallel()
		png, err := qrgen.Encode(samplePayload, 0)
		require.NoError(t, err)
		assert.NotEmpty(t, png)
	})

	t.Run("empty payload", func(t *testing.T) {
		t.Parallel()
		_, err := qrgen.Encode("   ", 256)
		assert.ErrorIs(t, err, qrgen.ErrEmptyPayload)
	})
}

func TestEncodeDocument(t *testing.T) {
	t.Parallel()

	t.Run("tokenizable payload", func(t *testing.T) {
		t.Parallel()
		png, err := qrgen.EncodeDocument(samplePayload, 128)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, pngMagic))
	})

	t.Run("untokenizable payload rejected", func(t *testing.T) {
		t.Parallel()
		_, err := qrgen.EncodeDocument("Z:not-a-field", 128)
		assert.ErrorIs(t, err, qrgen.ErrInvalidPayload)
	})
}

func TestEncodeDataURI(t *testing.T) {
	t.Parallel()

	uri, err := qrgen.EncodeDataURI(samplePayload, 128)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestEncodeToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "code.png")
	require.NoError(t, qrgen.EncodeToFile(samplePayload, path, 128))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}
