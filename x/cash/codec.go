package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle"
)

// Wallet holds the balance of a single account.
type Wallet struct {
	Balance uint64 `protobuf:"varint,1,opt,name=balance,proto3" json:"balance,omitempty"`
}

type walletProto Wallet

func (m *walletProto) Reset()         { *m = walletProto{} }
func (m *walletProto) String() string { return proto.CompactTextString(m) }
func (*walletProto) ProtoMessage()    {}

func (m *Wallet) Marshal() ([]byte, error) {
	return proto.Marshal((*walletProto)(m))
}

func (m *Wallet) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*walletProto)(m))
}

// SendMsg moves funds from the source to the destination account.
type SendMsg struct {
	Source      settle.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination settle.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      uint64         `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	// Memo is an optional human readable message.
	Memo string `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

type sendMsgProto SendMsg

func (m *sendMsgProto) Reset()         { *m = sendMsgProto{} }
func (m *sendMsgProto) String() string { return proto.CompactTextString(m) }
func (*sendMsgProto) ProtoMessage()    {}

func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*sendMsgProto)(m))
}

func (m *SendMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*sendMsgProto)(m))
}
