package cram

import (
	"bytes"
	"crypto/md5"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/biogo/cram/compressor"
	"github.com/biogo/cram/factory"
	"github.com/biogo/cram/header"
	"github.com/biogo/cram/record"
	"github.com/biogo/cram/sam"
)

type fakeRefSource struct {
	bases map[int][]byte
}

func (f fakeRefSource) GetReferenceBases(seqID int) ([]byte, error) {
	return f.bases[seqID], nil
}

func (f fakeRefSource) GetReferenceMD5(seqID, start, span int) ([16]byte, error) {
	b := f.bases[seqID]
	if start-1+span > len(b) {
		span = len(b) - (start - 1)
	}
	return md5.Sum(b[start-1 : start-1+span]), nil
}

func testSAMHeader(t *testing.T) *sam.Header {
	t.Helper()
	text := []byte("@HD\tVN:1.6\tSO:coordinate\n@SQ\tSN:chr1\tLN:40\n")
	h, err := sam.NewHeader(text, nil)
	require.NoError(t, err)
	return h
}

// TestWriterReaderRoundTrip drives a handful of records through Writer
// and back through Reader, checking the file definition, SAM header,
// and record counts all survive the trip (§6 External Interfaces).
func TestWriterReaderRoundTrip(t *testing.T) {
	refs := fakeRefSource{bases: map[int][]byte{0: bytes.Repeat([]byte("ACGT"), 10)}}
	ch := header.DefaultCompressionHeader()

	strategy := factory.DefaultCRAMEncodingStrategy()
	strategy.RecordsPerSlice = 2
	strategy.SlicesPerContainer = 1
	fc := factory.NewContainerFactory(strategy, ch, refs)

	var buf bytes.Buffer
	def := NewFileDefinition(3, 0, []byte("test-id"))
	w, err := NewWriter(&buf, def, testSAMHeader(t), fc)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		r := &record.Record{
			RefID:          0,
			AlignmentStart: 1 + i,
			ReadLength:     4,
			MappingQuality: 30,
			ReadBases:      []byte("ACGT"),
			QualityScores:  []byte{20, 20, 20, 20},
			NextMate:       record.NoMate,
			PrevMate:       record.NoMate,
		}
		require.NoError(t, w.WriteRecord(r))
	}
	require.NoError(t, w.Close())

	rd, err := NewReader(bytes.NewReader(buf.Bytes()), refs)
	require.NoError(t, err)
	require.Equal(t, byte(3), rd.Definition.Major)
	require.Equal(t, "1.6", rd.Header.Version)
	require.Len(t, rd.Header.Refs(), 1)

	var total int
	var sawNonRaw bool
	for {
		c, err := rd.Next()
		if err != nil {
			break
		}
		total += c.NumRecords
		for _, s := range c.Slices {
			if s.CoreBlock.Method != compressor.Raw {
				sawNonRaw = true
			}
			for _, b := range s.ExternalBlocks {
				if b.Method != compressor.Raw {
					sawNonRaw = true
				}
			}
		}
	}
	require.Equal(t, 4, total)
	require.True(t, sawNonRaw, "expected at least one block written with a non-Raw compression method")
}

// TestReaderDetectsEOFMarker checks that Next reports io.EOF once the
// stream's trailing EOF container is reached, without attempting to
// parse it as an ordinary container.
func TestReaderDetectsEOFMarker(t *testing.T) {
	ch := header.DefaultCompressionHeader()
	strategy := factory.DefaultCRAMEncodingStrategy()
	fc := factory.NewContainerFactory(strategy, ch, nil)

	var buf bytes.Buffer
	w, err := NewWriter(&buf, NewFileDefinition(3, 0, nil), testSAMHeader(t), fc)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rd, err := NewReader(bytes.NewReader(buf.Bytes()), nil)
	require.NoError(t, err)

	_, err = rd.Next()
	require.ErrorIs(t, err, io.EOF)
}
