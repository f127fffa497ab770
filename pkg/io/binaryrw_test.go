package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nspcc-dev/wirecodec/pkg/config/limits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mocks io.Writer and always returns an error on Write.
type badRW struct{}

func (w *badRW) Write(p []byte) (int, error) {
	return 0, errors.New("it always fails")
}

func (w *badRW) Read(p []byte) (int, error) {
	return w.Write(p)
}

func TestWriteVarUintTiers(t *testing.T) {
	testCases := []struct {
		val    uint64
		size   int
		marker byte
	}{
		{0, 1, 0x00},
		{1, 1, 0x01},
		{0xfc, 1, 0xfc},
		{0xfd, 3, 0xfd},
		{0xfe, 3, 0xfd},
		{0xffff, 3, 0xfd},
		{0x10000, 5, 0xfe},
		{0xffffffff, 5, 0xfe},
		{0x100000000, 9, 0xff},
		{1<<64 - 1, 9, 0xff},
	}
	for _, tc := range testCases {
		bw := NewBufBinWriter()
		bw.WriteVarUint(tc.val)
		require.NoError(t, bw.Err)
		buf := bw.Bytes()
		require.Equal(t, tc.size, len(buf), "value 0x%x", tc.val)
		require.Equal(t, tc.marker, buf[0], "value 0x%x", tc.val)
		require.Equal(t, tc.size, GetVarIntSize(tc.val))

		br := NewBinReaderFromBuf(buf, StrictVarInt())
		res := br.ReadVarUint()
		require.NoError(t, br.Err)
		require.Equal(t, tc.val, res)
	}
}

func TestWriteVarUintLayout(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteVarUint(0x1234)
	bw.WriteVarUint(0x12345678)
	bw.WriteVarUint(0x123456789a)
	require.NoError(t, bw.Err)
	require.Equal(t, []byte{
		0xfd, 0x34, 0x12,
		0xfe, 0x78, 0x56, 0x34, 0x12,
		0xff, 0x9a, 0x78, 0x56, 0x34, 0x12, 0, 0, 0,
	}, bw.Bytes())
}

func TestWriteVarIntNegative(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteVarInt(-1)
	require.ErrorIs(t, bw.Err, ErrInvalidArgument)
	require.Equal(t, 0, bw.Len())

	_, err := EncodeVarInt(-1)
	require.ErrorIs(t, err, ErrInvalidArgument)

	b, err := EncodeVarInt(0xfd)
	require.NoError(t, err)
	require.Equal(t, []byte{0xfd, 0xfd, 0x00}, b)
}

func TestEncodeVarIntMaxPayload(t *testing.T) {
	b, err := EncodeVarInt(1<<63 - 1)
	require.NoError(t, err)
	require.Equal(t, limits.MaxVarIntPayload, len(b))
	require.Equal(t, limits.MaxVarIntPayload, GetVarIntSize(1<<64-1))

	buf := make([]byte, limits.MaxVarIntPayload)
	require.Equal(t, limits.MaxVarIntPayload, PutVarUint(buf, 1<<64-1))
	require.Panics(t, func() { PutVarUint(buf[:limits.MaxVarIntPayload-1], 0) })
}

func TestDecodeVarInt(t *testing.T) {
	v, n, err := DecodeVarInt([]byte{0xfe, 0x00, 0x00, 0x01, 0x00, 0xaa})
	require.NoError(t, err)
	require.Equal(t, uint64(0x10000), v)
	require.Equal(t, 5, n)

	t.Run("non-canonical, lenient", func(t *testing.T) {
		v, n, err := DecodeVarInt([]byte{0xfd, 0x05, 0x00})
		require.NoError(t, err)
		require.Equal(t, uint64(5), v)
		require.Equal(t, 3, n)
	})
	t.Run("non-canonical, strict", func(t *testing.T) {
		for _, data := range [][]byte{
			{0xfd, 0x05, 0x00},
			{0xfd, 0xfc, 0x00},
			{0xfe, 0xff, 0xff, 0x00, 0x00},
			{0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00},
		} {
			_, _, err := DecodeVarInt(data, StrictVarInt())
			require.ErrorIs(t, err, ErrNonCanonical, "%x", data)
		}
	})
	t.Run("truncated payload", func(t *testing.T) {
		_, _, err := DecodeVarInt([]byte{0xff, 0x01, 0x02})
		var te *TruncatedError
		require.ErrorAs(t, err, &te)
		require.Equal(t, 8, te.Requested)
		require.Equal(t, 2, te.Actual)
	})
	t.Run("empty", func(t *testing.T) {
		_, _, err := DecodeVarInt(nil)
		require.ErrorIs(t, err, ErrTruncated)
	})
}

func TestSetStrict(t *testing.T) {
	br := NewBinReaderFromBuf([]byte{0xfd, 0x05, 0x00, 0xfd, 0x05, 0x00})
	require.Equal(t, uint64(5), br.ReadVarUint())
	br.SetStrict(true)
	require.Equal(t, uint64(0), br.ReadVarUint())
	require.ErrorIs(t, br.Err, ErrNonCanonical)
}

func TestReadExact(t *testing.T) {
	t.Run("oversize", func(t *testing.T) {
		buf := bytes.NewReader([]byte{1, 2, 3})
		br := NewBinReaderFromIO(buf)
		require.Nil(t, br.ReadExact(limits.MaxReadSize+1))
		require.ErrorIs(t, br.Err, ErrOversizeRead)
		require.False(t, errors.Is(br.Err, ErrTruncated))
		require.Equal(t, 3, buf.Len())
	})
	t.Run("negative", func(t *testing.T) {
		br := NewBinReaderFromBuf([]byte{1})
		br.ReadExact(-1)
		require.ErrorIs(t, br.Err, ErrInvalidArgument)
	})
	t.Run("truncated", func(t *testing.T) {
		br := NewBinReaderFromBuf([]byte{1, 2, 3})
		require.Nil(t, br.ReadExact(5))
		require.ErrorIs(t, br.Err, ErrTruncated)
		require.False(t, errors.Is(br.Err, ErrOversizeRead))
		var te *TruncatedError
		require.ErrorAs(t, br.Err, &te)
		require.Equal(t, 5, te.Requested)
		require.Equal(t, 3, te.Actual)
	})
	t.Run("truncated, long read", func(t *testing.T) {
		br := NewBinReaderFromBuf(make([]byte, 70000))
		require.Nil(t, br.ReadExact(100000))
		var te *TruncatedError
		require.ErrorAs(t, br.Err, &te)
		require.Equal(t, 100000, te.Requested)
		require.Equal(t, 70000, te.Actual)
	})
	t.Run("long read", func(t *testing.T) {
		data := bytes.Repeat([]byte{0x5a}, 100000)
		br := NewBinReaderFromBuf(data)
		require.Equal(t, data, br.ReadExact(len(data)))
		require.NoError(t, br.Err)
	})
	t.Run("zero", func(t *testing.T) {
		br := NewBinReaderFromBuf(nil)
		require.Equal(t, []byte{}, br.ReadExact(0))
		require.NoError(t, br.Err)
	})
	t.Run("sticky error", func(t *testing.T) {
		br := NewBinReaderFromBuf([]byte{1, 2, 3})
		br.ReadExact(5)
		err := br.Err
		require.Equal(t, uint32(0), br.ReadU32LE())
		require.Equal(t, err, br.Err)
	})
	t.Run("reader error", func(t *testing.T) {
		br := NewBinReaderFromIO(&badRW{})
		br.ReadExact(1)
		require.Error(t, br.Err)
		require.False(t, errors.Is(br.Err, ErrTruncated))
	})
}

func TestWriterErrHandling(t *testing.T) {
	var badio = &badRW{}
	bw := NewBinWriterFromIO(badio)
	bw.WriteU32LE(uint32(0))
	assert.NotNil(t, bw.Err)
	// these should work (without panic), preserving the Err
	bw.WriteU32LE(uint32(0))
	bw.WriteU16LE(uint16(0))
	bw.WriteVarUint(0)
	bw.WriteVarBytes([]byte{0x55, 0xaa})
	bw.WriteString("neo")
	bw.WriteInt32Vector([]int32{1})
	assert.NotNil(t, bw.Err)
}

func TestReaderErrHandling(t *testing.T) {
	var badio = &badRW{}
	br := NewBinReaderFromIO(badio)
	br.ReadU32LE()
	assert.NotNil(t, br.Err)
	// these should work (without panic), preserving the Err
	br.ReadU32LE()
	br.ReadU16LE()
	val := br.ReadVarUint()
	assert.Equal(t, val, uint64(0))
	b := br.ReadVarBytes()
	assert.Equal(t, b, []byte(nil))
	s := br.ReadString()
	assert.Equal(t, s, "")
	assert.Nil(t, br.ReadInt32Vector())
	assert.NotNil(t, br.Err)
}

func TestBufBinWriter_Len(t *testing.T) {
	val := []byte{0xde}
	bw := NewBufBinWriter()
	bw.WriteBytes(val)
	require.Equal(t, 1, bw.Len())
}

func TestBufBinWriterDrained(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteB(1)
	require.Equal(t, []byte{1}, bw.Bytes())
	require.Nil(t, bw.Bytes())
	bw.WriteB(2)
	require.Error(t, bw.Err)
	bw.Reset()
	bw.WriteB(3)
	require.Equal(t, []byte{3}, bw.Bytes())
}

func TestWriteReadPrimitivesLE(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteU64LE(0x0102030405060708)
	bw.WriteU32LE(0x01020304)
	bw.WriteI32LE(-2)
	bw.WriteU16LE(0x0102)
	bw.WriteBool(true)
	bw.WriteBool(false)
	require.NoError(t, bw.Err)
	buf := bw.Bytes()
	require.Equal(t, []byte{
		8, 7, 6, 5, 4, 3, 2, 1,
		4, 3, 2, 1,
		0xfe, 0xff, 0xff, 0xff,
		2, 1,
		1, 0,
	}, buf)

	br := NewBinReaderFromBuf(buf)
	require.Equal(t, uint64(0x0102030405060708), br.ReadU64LE())
	require.Equal(t, uint32(0x01020304), br.ReadU32LE())
	require.Equal(t, int32(-2), br.ReadI32LE())
	require.Equal(t, uint16(0x0102), br.ReadU16LE())
	require.True(t, br.ReadBool())
	require.False(t, br.ReadBool())
	require.NoError(t, br.Err)
}

func TestVarBytes(t *testing.T) {
	for _, data := range [][]byte{{}, bytes.Repeat([]byte{0xa5}, 10000)} {
		bw := NewBufBinWriter()
		bw.WriteVarBytes(data)
		require.NoError(t, bw.Err)
		buf := bw.Bytes()
		require.Equal(t, GetVarBytesSize(data), len(buf))

		br := NewBinReaderFromBuf(buf)
		require.Equal(t, data, br.ReadVarBytes())
		require.NoError(t, br.Err)
	}

	t.Run("max size", func(t *testing.T) {
		br := NewBinReaderFromBuf([]byte{3, 1, 2, 3})
		require.Nil(t, br.ReadVarBytes(2))
		require.ErrorIs(t, br.Err, ErrTooLarge)
	})
	t.Run("oversize prefix", func(t *testing.T) {
		br := NewBinReaderFromBuf([]byte{0xfe, 0x01, 0x00, 0x00, 0x02})
		require.Nil(t, br.ReadVarBytes())
		require.ErrorIs(t, br.Err, ErrOversizeRead)
	})
	t.Run("huge prefix", func(t *testing.T) {
		br := NewBinReaderFromBuf([]byte{0xff, 0, 0, 0, 0, 0, 0, 0, 0x80})
		require.Nil(t, br.ReadVarBytes())
		require.ErrorIs(t, br.Err, ErrOversizeRead)
	})
	t.Run("truncated", func(t *testing.T) {
		br := NewBinReaderFromBuf([]byte{5, 1, 2, 3})
		require.Nil(t, br.ReadVarBytes())
		var te *TruncatedError
		require.ErrorAs(t, br.Err, &te)
		require.Equal(t, 5, te.Requested)
		require.Equal(t, 3, te.Actual)
	})
}

func TestWriteString(t *testing.T) {
	var str = "teststring"
	bw := NewBufBinWriter()
	bw.WriteString(str)
	assert.Nil(t, bw.Err)
	wrotebytes := bw.Bytes()
	assert.Equal(t, wrotebytes[0], byte(len(str)))
	assert.Equal(t, GetVarStringSize(str), len(wrotebytes))
	br := NewBinReaderFromBuf(wrotebytes)
	assert.Equal(t, str, br.ReadString())
	assert.Nil(t, br.Err)

	t.Run("not utf-8", func(t *testing.T) {
		br := NewBinReaderFromBuf([]byte{2, 0xff, 0xfe})
		assert.Equal(t, "\xff\xfe", br.ReadString())
		assert.Nil(t, br.Err)
	})
}

func TestUint256Vector(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		bw := NewBufBinWriter()
		bw.WriteUint256Vector(nil)
		require.NoError(t, bw.Err)
		buf := bw.Bytes()
		require.Equal(t, []byte{0}, buf)

		br := NewBinReaderFromBuf(buf)
		res := br.ReadUint256Vector()
		require.NoError(t, br.Err)
		require.Empty(t, res)
	})
	t.Run("order preserved", func(t *testing.T) {
		vals := [][]byte{
			bytes.Repeat([]byte{3}, 32),
			bytes.Repeat([]byte{1}, 32),
			bytes.Repeat([]byte{2}, 32),
		}
		bw := NewBufBinWriter()
		bw.WriteUint256Vector(vals)
		require.NoError(t, bw.Err)
		buf := bw.Bytes()
		require.Equal(t, 1+3*32, len(buf))

		br := NewBinReaderFromBuf(buf)
		require.Equal(t, vals, br.ReadUint256Vector())
		require.NoError(t, br.Err)
	})
	t.Run("wrong element length", func(t *testing.T) {
		bw := NewBufBinWriter()
		bw.WriteUint256Vector([][]byte{make([]byte, 32), make([]byte, 31)})
		require.ErrorIs(t, bw.Err, ErrInvalidArgument)
		require.Equal(t, 0, bw.Len())
	})
	t.Run("corrupted third element", func(t *testing.T) {
		buf := append([]byte{3}, make([]byte, 2*32+10)...)
		br := NewBinReaderFromBuf(buf)
		require.Nil(t, br.ReadUint256Vector())
		require.ErrorIs(t, br.Err, ErrTruncated)
	})
}

func TestInt32Vector(t *testing.T) {
	vals := []int32{0, 1, -1, 0x7fffffff, -0x80000000}
	bw := NewBufBinWriter()
	bw.WriteInt32Vector(vals)
	require.NoError(t, bw.Err)
	buf := bw.Bytes()
	require.Equal(t, 1+4*len(vals), len(buf))
	require.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, buf[1+2*4:1+3*4])

	br := NewBinReaderFromBuf(buf)
	res := br.ReadInt32Vector()
	require.NoError(t, br.Err)
	require.Len(t, res, len(vals))
	require.Equal(t, vals, res)
}

func TestReadArrayWith(t *testing.T) {
	failing := func(r *BinReader) uint64 {
		v := r.ReadVarUint()
		if v == 0xbad {
			r.SetError(errors.New("bad element"))
		}
		return v
	}

	t.Run("element failure aborts", func(t *testing.T) {
		bw := NewBufBinWriter()
		WriteArrayWith(bw.BinWriter, []uint64{1, 2, 0xbad, 4}, (*BinWriter).WriteVarUint)
		require.NoError(t, bw.Err)

		br := NewBinReaderFromBuf(bw.Bytes())
		require.Nil(t, ReadArrayWith(br, failing))
		require.EqualError(t, br.Err, "bad element")
	})
	t.Run("count above limit", func(t *testing.T) {
		br := NewBinReaderFromBuf([]byte{3, 1, 2, 3})
		require.Nil(t, ReadArrayWith(br, failing, 2))
		require.ErrorIs(t, br.Err, ErrTooLarge)
	})
	t.Run("count above default limit", func(t *testing.T) {
		br := NewBinReaderFromBuf([]byte{0xfe, 0x01, 0x00, 0x00, 0x01})
		require.Nil(t, ReadArrayWith(br, failing))
		require.ErrorIs(t, br.Err, ErrTooLarge)
	})
	t.Run("huge count, short stream", func(t *testing.T) {
		br := NewBinReaderFromBuf([]byte{0xfe, 0x00, 0x00, 0x00, 0x01, 1, 2})
		require.Nil(t, ReadArrayWith(br, failing))
		require.ErrorIs(t, br.Err, ErrTruncated)
	})
}
