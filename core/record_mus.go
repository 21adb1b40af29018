package core

import (
	"errors"
	"math"
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// ErrCorruptRecord indicates stored bytes could not be decoded.
var ErrCorruptRecord = errors.New("corrupt record encoding")

// IDMUS serializes an ID as an unsigned varint.
var IDMUS = idMUS{}

var _ mus.Serializer[ID] = IDMUS

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// TimeMUS serializes a time.Time at microsecond precision.
// The zero time round-trips as the zero time.
var TimeMUS = timeMUS{}

var _ mus.Serializer[time.Time] = TimeMUS

type timeMUS struct{}

func (timeMUS) Marshal(t time.Time, bs []byte) (n int) {
	if t.IsZero() {
		return varint.Uint64.Marshal(0, bs)
	}
	n = varint.Uint64.Marshal(1, bs)
	return n + varint.Int64.Marshal(t.UnixMicro(), bs[n:])
}

func (timeMUS) Unmarshal(bs []byte) (t time.Time, n int, err error) {
	flag, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil || flag == 0 {
		return
	}
	micro, n1, err := varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	return time.UnixMicro(micro).UTC(), n, nil
}

func (timeMUS) Size(t time.Time) int {
	if t.IsZero() {
		return varint.Uint64.Size(0)
	}
	return varint.Uint64.Size(1) + varint.Int64.Size(t.UnixMicro())
}

func (timeMUS) Skip(bs []byte) (n int, err error) {
	flag, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil || flag == 0 {
		return
	}
	n1, err := varint.Int64.Skip(bs[n:])
	return n + n1, err
}

// VectorMUS serializes an embedding as a length followed by IEEE-754 bit patterns.
var VectorMUS = vectorMUS{}

var _ mus.Serializer[[]float32] = VectorMUS

type vectorMUS struct{}

func (vectorMUS) Marshal(v []float32, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(len(v)), bs)
	for _, f := range v {
		n += varint.Uint64.Marshal(uint64(math.Float32bits(f)), bs[n:])
	}
	return n
}

func (vectorMUS) Unmarshal(bs []byte) (v []float32, n int, err error) {
	length, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	if length > uint64(len(bs)) {
		return nil, n, ErrCorruptRecord
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]float32, length)
	for i := range v {
		bits, n1, err := varint.Uint64.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		v[i] = math.Float32frombits(uint32(bits))
	}
	return v, n, nil
}

func (vectorMUS) Size(v []float32) (size int) {
	size = varint.Uint64.Size(uint64(len(v)))
	for _, f := range v {
		size += varint.Uint64.Size(uint64(math.Float32bits(f)))
	}
	return size
}

func (s vectorMUS) Skip(bs []byte) (int, error) {
	_, n, err := s.Unmarshal(bs)
	return n, err
}

// RecordMUS serializes a burial Record.
var RecordMUS = recordMUS{}

var _ mus.Serializer[Record] = RecordMUS

type recordMUS struct{}

func (recordMUS) Marshal(v Record, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.PlotId, bs[n:])
	n += ord.String.Marshal(v.FirstName, bs[n:])
	n += ord.String.Marshal(v.MiddleName, bs[n:])
	n += ord.String.Marshal(v.LastName, bs[n:])
	n += TimeMUS.Marshal(v.DateOfBirth, bs[n:])
	n += TimeMUS.Marshal(v.DateOfDeath, bs[n:])
	n += ord.String.Marshal(v.PlotNumber, bs[n:])
	n += ord.String.Marshal(v.PlotType, bs[n:])
	n += IDMUS.Marshal(v.CemeteryId, bs[n:])
	n += ord.String.Marshal(v.CemeteryName, bs[n:])
	n += VectorMUS.Marshal(v.Vector, bs[n:])
	n += TimeMUS.Marshal(v.InsertedAt, bs[n:])
	return n + TimeMUS.Marshal(v.UpdatedAt, bs[n:])
}

func (recordMUS) Unmarshal(bs []byte) (v Record, n int, err error) {
	var n1 int
	if v.Id, n1, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	n += n1
	if v.PlotId, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.FirstName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.MiddleName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.LastName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.DateOfBirth, n1, err = TimeMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.DateOfDeath, n1, err = TimeMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.PlotNumber, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.PlotType, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.CemeteryId, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.CemeteryName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Vector, n1, err = VectorMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.InsertedAt, n1, err = TimeMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	v.UpdatedAt, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (recordMUS) Size(v Record) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.PlotId)
	size += ord.String.Size(v.FirstName)
	size += ord.String.Size(v.MiddleName)
	size += ord.String.Size(v.LastName)
	size += TimeMUS.Size(v.DateOfBirth)
	size += TimeMUS.Size(v.DateOfDeath)
	size += ord.String.Size(v.PlotNumber)
	size += ord.String.Size(v.PlotType)
	size += IDMUS.Size(v.CemeteryId)
	size += ord.String.Size(v.CemeteryName)
	size += VectorMUS.Size(v.Vector)
	size += TimeMUS.Size(v.InsertedAt)
	return size + TimeMUS.Size(v.UpdatedAt)
}

func (s recordMUS) Skip(bs []byte) (int, error) {
	_, n, err := s.Unmarshal(bs)
	return n, err
}
