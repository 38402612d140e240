// Package protocol frames command and response bags for the driver socket.
// Each message is the decimal byte length of the JSON payload, a newline,
// then the payload itself.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/uiprobe/api/schemas"
)

// json keeps large object handles intact: numbers decode as json.Number, not
// float64.
var json = jsoniter.Config{UseNumber: true}.Froze()

// ReadMessage reads one framed bag. maxSize bounds the payload; 0 means no
// bound. io.EOF is returned untouched on a clean connection close.
func ReadMessage(r *bufio.Reader, maxSize int) (schemas.Bag, error) {
	header, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && header == "" {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("reading frame header: %w", err)
	}
	size, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || size < 0 {
		return nil, fmt.Errorf("malformed frame header %q", strings.TrimSpace(header))
	}
	if maxSize > 0 && size > maxSize {
		return nil, fmt.Errorf("frame of %d bytes exceeds the %d byte limit", size, maxSize)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("reading frame payload: %w", err)
	}
	var bag schemas.Bag
	if err := json.Unmarshal(payload, &bag); err != nil {
		return nil, fmt.Errorf("decoding frame payload: %w", err)
	}
	return bag, nil
}

// WriteMessage writes one framed bag.
func WriteMessage(w io.Writer, bag schemas.Bag) error {
	payload, err := json.Marshal(bag)
	if err != nil {
		return fmt.Errorf("encoding frame payload: %w", err)
	}
	header := strconv.Itoa(len(payload)) + "\n"
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("writing frame header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("writing frame payload: %w", err)
	}
	return nil
}
