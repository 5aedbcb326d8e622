package sigs

import (
	"github.com/gogo/protobuf/proto"
)

// StdSignature is an ed25519 signature of a transaction together with the
// public key of the signer and the sequence used to build the sign bytes.
type StdSignature struct {
	Sequence  int64  `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Pubkey    []byte `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature []byte `protobuf:"bytes,3,opt,name=signature,proto3" json:"signature,omitempty"`
}

type stdSignatureProto StdSignature

func (m *stdSignatureProto) Reset()         { *m = stdSignatureProto{} }
func (m *stdSignatureProto) String() string { return proto.CompactTextString(m) }
func (*stdSignatureProto) ProtoMessage()    {}

func (m *StdSignature) Marshal() ([]byte, error) {
	return proto.Marshal((*stdSignatureProto)(m))
}

func (m *StdSignature) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*stdSignatureProto)(m))
}

// UserData is the state of a signer: its public key and the sequence that
// must be used with the next signature.
type UserData struct {
	Pubkey   []byte `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64  `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

type userDataProto UserData

func (m *userDataProto) Reset()         { *m = userDataProto{} }
func (m *userDataProto) String() string { return proto.CompactTextString(m) }
func (*userDataProto) ProtoMessage()    {}

func (m *UserData) Marshal() ([]byte, error) {
	return proto.Marshal((*userDataProto)(m))
}

func (m *UserData) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*userDataProto)(m))
}
