package workloads

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Snektron/amd-experiments/gpu"
)

type op struct {
	kind  string
	value byte
	n     int
}

type recordStream struct {
	ops []op
}

func (s *recordStream) MemsetAsync(dst gpu.Buffer, value byte, n int) error {
	s.ops = append(s.ops, op{kind: "memset", value: value, n: n})
	return nil
}

func (s *recordStream) CopyAsync(dst, src gpu.Buffer, n int) error {
	s.ops = append(s.ops, op{kind: "copy", n: n})
	return nil
}

func (s *recordStream) Record(ev gpu.Event) error { return nil }
func (s *recordStream) Synchronize() error        { return nil }
func (s *recordStream) Destroy() error            { return nil }

type sizedBuffer int

func (b sizedBuffer) Size() int      { return int(b) }
func (b sizedBuffer) Destroy() error { return nil }

func TestFill(t *testing.T) {
	stream := &recordStream{}
	w := Fill(sizedBuffer(4096), 0xa5)
	require.NoError(t, w(stream))
	require.Equal(t, []op{{kind: "memset", value: 0xa5, n: 4096}}, stream.ops)
}

func TestDeviceCopy(t *testing.T) {
	stream := &recordStream{}
	w := DeviceCopy(sizedBuffer(8192), sizedBuffer(8192), 8192)
	require.NoError(t, w(stream))
	require.Equal(t, []op{{kind: "copy", n: 8192}}, stream.ops)
}
