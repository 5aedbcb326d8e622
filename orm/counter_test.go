package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle/errors"
)

// Counter is a minimal model used to test buckets.
type Counter struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

type counterProto Counter

func (m *counterProto) Reset()         { *m = counterProto{} }
func (m *counterProto) String() string { return proto.CompactTextString(m) }
func (*counterProto) ProtoMessage()    {}

func (m *Counter) Marshal() ([]byte, error) {
	return proto.Marshal((*counterProto)(m))
}

func (m *Counter) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*counterProto)(m))
}

func (m *Counter) Validate() error {
	if m.Count < 0 {
		return errors.Wrap(errors.ErrInvalidState, "negative count")
	}
	return nil
}

func (m *Counter) Copy() CloneableData {
	return &Counter{Count: m.Count}
}

var _ Model = (*Counter)(nil)
