package dtif

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// ID prefixes of the three record collections.
const (
	NodePrefix  = 'n'
	PaintPrefix = 'p'
	AssetPrefix = 'a'
)

func FormatNodeID(id uint32) string  { return formatID(NodePrefix, id) }
func FormatPaintID(id uint32) string { return formatID(PaintPrefix, id) }
func FormatAssetID(id uint32) string { return formatID(AssetPrefix, id) }

func formatID(prefix byte, id uint32) string {
	return string(prefix) + strconv.FormatUint(uint64(id), 10)
}

// ParseID splits a prefixed record ID into its prefix and number.
func ParseID(s string) (byte, uint32, error) {
	if len(s) < 2 {
		return 0, 0, fmt.Errorf("invalid record id %q", s)
	}
	switch s[0] {
	case NodePrefix, PaintPrefix, AssetPrefix:
	default:
		return 0, 0, fmt.Errorf("invalid record id %q: unknown prefix", s)
	}
	n, err := strconv.ParseUint(s[1:], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid record id %q: %w", s, err)
	}
	return s[0], uint32(n), nil
}

// ByteArray is inline binary content. It serializes as an array of numbers,
// not base64.
type ByteArray []byte

func (b ByteArray) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	out := make([]byte, 0, len(b)*4+2)
	out = append(out, '[')
	for i, v := range b {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendUint(out, uint64(v), 10)
	}
	return append(out, ']'), nil
}

func (b *ByteArray) UnmarshalJSON(data []byte) error {
	// []uint8 would decode from base64.
	var nums []uint16
	if err := json.Unmarshal(data, &nums); err != nil {
		return fmt.Errorf("byte array: %w", err)
	}
	if nums == nil {
		*b = nil
		return nil
	}
	out := make(ByteArray, len(nums))
	for i, n := range nums {
		if n > 255 {
			return fmt.Errorf("byte array: value %d out of range", n)
		}
		out[i] = uint8(n)
	}
	*b = out
	return nil
}

func (b ByteArray) MarshalYAML() (any, error) {
	if b == nil {
		return nil, nil
	}
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out, nil
}
