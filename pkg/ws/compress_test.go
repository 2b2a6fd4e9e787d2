package ws

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompress(t *testing.T) {
	data := bytes.Repeat([]byte(`{"o":"new_notification","d":{}}`), 20)

	compressed, err := Compress(data)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(data))

	decompressed, err := Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, decompressed)

	_, err = Decompress([]byte("not zlib"))
	require.Error(t, err)
}
