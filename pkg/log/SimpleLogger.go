// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package log

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// SimpleLogger writes one JSON object per line with the message stored under
// the "msg" key. Writes are serialized, so one logger can be shared by the
// goroutines copying files.
type SimpleLogger struct {
	writer io.Writer
	mutex  *sync.Mutex
}

func (l *SimpleLogger) Log(msg string, fields ...map[string]interface{}) error {
	m := map[string]interface{}{
		"msg": msg,
	}
	for _, f := range fields {
		for k, v := range f {
			m[k] = v
		}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("error marshaling log event %q: %w", msg, err)
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	_, err = l.writer.Write(append(b, '\n'))
	if err != nil {
		return fmt.Errorf("error writing log event %q: %w", msg, err)
	}
	return nil
}

func NewSimpleLogger(w io.Writer) *SimpleLogger {
	return &SimpleLogger{
		writer: w,
		mutex:  &sync.Mutex{},
	}
}
