package qubo

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	dwfactor "github.com/Leosirius2597/dwave-factor"
	"github.com/Leosirius2597/dwave-factor/internal/ioutils"
	"github.com/Leosirius2597/dwave-factor/logger"
	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// serialized layout: 16-byte binary header (indices length, body length),
// then the intcomp-compressed index sections, then the cbor body.
const headerLen = 16

type modelBody struct {
	Version string
	Names   []string
	Offset  float64
	Linear  []float64
	Quad    []float64
}

// ToBytes serializes the model. The output is canonical: the same model
// always produces the same bytes, so Fingerprint can key caches.
func (m *Model) ToBytes() ([]byte, error) {
	linIdx, linW := m.sortedLinear()
	quadI, quadJ, quadW := m.sortedQuad()

	var indices bytes.Buffer
	for _, s := range [][]uint32{linIdx, quadI, quadJ} {
		if err := ioutils.CompressAndWriteUints32(&indices, s); err != nil {
			return nil, err
		}
	}

	body, err := cbor.Marshal(modelBody{
		Version: dwfactor.Version.String(),
		Names:   m.names,
		Offset:  m.offset,
		Linear:  linW,
		Quad:    quadW,
	})
	if err != nil {
		return nil, err
	}

	buf := make([]byte, headerLen, headerLen+indices.Len()+len(body))
	binary.LittleEndian.PutUint64(buf[0:8], uint64(indices.Len()))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(len(body)))
	buf = append(buf, indices.Bytes()...)
	buf = append(buf, body...)
	return buf, nil
}

// FromBytes deserializes a model produced by ToBytes. A version mismatch
// logs a warning; malformed data is an error.
func (m *Model) FromBytes(data []byte) error {
	if len(data) < headerLen {
		return errors.New("invalid data length")
	}
	indicesLen := binary.LittleEndian.Uint64(data[0:8])
	bodyLen := binary.LittleEndian.Uint64(data[8:16])
	if uint64(len(data)) < headerLen+indicesLen+bodyLen {
		return errors.New("invalid data length")
	}

	r := bytes.NewReader(data[headerLen : headerLen+indicesLen])
	linIdx, err := ioutils.ReadAndDecompressUints32(r, indicesLen/4)
	if err != nil {
		return err
	}
	quadI, err := ioutils.ReadAndDecompressUints32(r, indicesLen/4)
	if err != nil {
		return err
	}
	quadJ, err := ioutils.ReadAndDecompressUints32(r, indicesLen/4)
	if err != nil {
		return err
	}

	var body modelBody
	if err := cbor.Unmarshal(data[headerLen+indicesLen:headerLen+indicesLen+bodyLen], &body); err != nil {
		return err
	}
	if err := checkVersion(body.Version); err != nil {
		return err
	}
	if len(linIdx) != len(body.Linear) || len(quadI) != len(quadJ) || len(quadI) != len(body.Quad) {
		return errors.New("inconsistent term sections")
	}

	m.names = body.Names
	m.offset = body.Offset
	m.index = make(map[string]int, len(body.Names))
	for i, name := range body.Names {
		m.index[name] = i
	}
	m.linear = make(map[int]float64, len(linIdx))
	for k, i := range linIdx {
		if int(i) >= len(m.names) {
			return errors.New("linear term index out of range")
		}
		m.linear[int(i)] = body.Linear[k]
	}
	m.quad = make(map[pair]float64, len(quadI))
	for k := range quadI {
		i, j := int(quadI[k]), int(quadJ[k])
		if i >= j || j >= len(m.names) {
			return errors.New("quadratic term indices out of range")
		}
		m.quad[pair{i, j}] = body.Quad[k]
	}
	return nil
}

// Fingerprint returns the blake2b-256 digest of the canonical serialization,
// suitable as a cache or run-label key.
func (m *Model) Fingerprint() ([32]byte, error) {
	data, err := m.ToBytes()
	if err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(data), nil
}

func checkVersion(v string) error {
	objectVersion, err := semver.Parse(v)
	if err != nil {
		return fmt.Errorf("when parsing model version: %w", err)
	}
	if dwfactor.Version.Compare(objectVersion) != 0 {
		log := logger.Logger()
		log.Warn().Str("binary", dwfactor.Version.String()).Str("object", objectVersion.String()).Msg("version mismatch with serialized model. there are no guarantees on compatibility")
	}
	return nil
}

func (m *Model) sortedLinear() ([]uint32, []float64) {
	idx := make([]uint32, 0, len(m.linear))
	for i := range m.linear {
		idx = append(idx, uint32(i))
	}
	sort.Slice(idx, func(a, b int) bool { return idx[a] < idx[b] })
	w := make([]float64, len(idx))
	for k, i := range idx {
		w[k] = m.linear[int(i)]
	}
	return idx, w
}

func (m *Model) sortedQuad() ([]uint32, []uint32, []float64) {
	pairs := make([]pair, 0, len(m.quad))
	for p := range m.quad {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].i != pairs[b].i {
			return pairs[a].i < pairs[b].i
		}
		return pairs[a].j < pairs[b].j
	})
	is := make([]uint32, len(pairs))
	js := make([]uint32, len(pairs))
	ws := make([]float64, len(pairs))
	for k, p := range pairs {
		is[k] = uint32(p.i)
		js[k] = uint32(p.j)
		ws[k] = m.quad[p]
	}
	return is, js, ws
}

