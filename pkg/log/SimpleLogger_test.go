// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewSimpleLogger(buf)

	assert.NoError(t, logger.Log("Starting source", map[string]interface{}{
		"source": "alpha",
		"count":  2,
	}))
	assert.NoError(t, logger.Log("Finished source"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Len(t, lines, 2)

	first := map[string]interface{}{}
	assert.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, "Starting source", first["msg"])
	assert.Equal(t, "alpha", first["source"])
	assert.Equal(t, float64(2), first["count"])

	second := map[string]interface{}{}
	assert.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "Finished source", second["msg"])
}
