package paychan

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle"
)

// Channel is the registry record of a single payment channel.
type Channel struct {
	ChannelID       []byte         `protobuf:"bytes,1,opt,name=channel_id,proto3" json:"channel_id,omitempty"`
	ParticipantA    settle.Address `protobuf:"bytes,2,opt,name=participant_a,proto3" json:"participant_a,omitempty"`
	ParticipantB    settle.Address `protobuf:"bytes,3,opt,name=participant_b,proto3" json:"participant_b,omitempty"`
	TotalDeposited  uint64         `protobuf:"varint,4,opt,name=total_deposited,proto3" json:"total_deposited,omitempty"`
	BalanceA        uint64         `protobuf:"varint,5,opt,name=balance_a,proto3" json:"balance_a,omitempty"`
	BalanceB        uint64         `protobuf:"varint,6,opt,name=balance_b,proto3" json:"balance_b,omitempty"`
	IsOpen          bool           `protobuf:"varint,7,opt,name=is_open,proto3" json:"is_open,omitempty"`
	DisputeDeadline int64          `protobuf:"varint,8,opt,name=dispute_deadline,proto3" json:"dispute_deadline,omitempty"`
	Nonce           uint64         `protobuf:"varint,9,opt,name=nonce,proto3" json:"nonce,omitempty"`
}

type channelProto Channel

func (m *channelProto) Reset()         { *m = channelProto{} }
func (m *channelProto) String() string { return proto.CompactTextString(m) }
func (*channelProto) ProtoMessage()    {}

func (m *Channel) Marshal() ([]byte, error) {
	return proto.Marshal((*channelProto)(m))
}

func (m *Channel) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*channelProto)(m))
}

// Authorization marks an address as a participant of a channel.
type Authorization struct {
	Authorized bool `protobuf:"varint,1,opt,name=authorized,proto3" json:"authorized,omitempty"`
}

type authorizationProto Authorization

func (m *authorizationProto) Reset()         { *m = authorizationProto{} }
func (m *authorizationProto) String() string { return proto.CompactTextString(m) }
func (*authorizationProto) ProtoMessage()    {}

func (m *Authorization) Marshal() ([]byte, error) {
	return proto.Marshal((*authorizationProto)(m))
}

func (m *Authorization) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*authorizationProto)(m))
}

// Configuration holds the protocol constants of this extension.
type Configuration struct {
	Owner            settle.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	MaxBalance       uint64         `protobuf:"varint,2,opt,name=max_balance,proto3" json:"max_balance,omitempty"`
	MinDeposit       uint64         `protobuf:"varint,3,opt,name=min_deposit,proto3" json:"min_deposit,omitempty"`
	DisputeWindow    int64          `protobuf:"varint,4,opt,name=dispute_window,proto3" json:"dispute_window,omitempty"`
	MaxDisputeWindow int64          `protobuf:"varint,5,opt,name=max_dispute_window,proto3" json:"max_dispute_window,omitempty"`
}

type configurationProto Configuration

func (m *configurationProto) Reset()         { *m = configurationProto{} }
func (m *configurationProto) String() string { return proto.CompactTextString(m) }
func (*configurationProto) ProtoMessage()    {}

func (m *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationProto)(m))
}

func (m *Configuration) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*configurationProto)(m))
}

// CreateChannelMsg opens a channel and escrows the initial deposit of the caller.
type CreateChannelMsg struct {
	Caller       settle.Address `protobuf:"bytes,1,opt,name=caller,proto3" json:"caller,omitempty"`
	ChannelID    []byte         `protobuf:"bytes,2,opt,name=channel_id,proto3" json:"channel_id,omitempty"`
	ParticipantB settle.Address `protobuf:"bytes,3,opt,name=participant_b,proto3" json:"participant_b,omitempty"`
	Deposit      uint64         `protobuf:"varint,4,opt,name=deposit,proto3" json:"deposit,omitempty"`
}

type createChannelMsgProto CreateChannelMsg

func (m *createChannelMsgProto) Reset()         { *m = createChannelMsgProto{} }
func (m *createChannelMsgProto) String() string { return proto.CompactTextString(m) }
func (*createChannelMsgProto) ProtoMessage()    {}

func (m *CreateChannelMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createChannelMsgProto)(m))
}

func (m *CreateChannelMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*createChannelMsgProto)(m))
}

// FundChannelMsg escrows an additional deposit into an open channel.
type FundChannelMsg struct {
	Caller       settle.Address `protobuf:"bytes,1,opt,name=caller,proto3" json:"caller,omitempty"`
	ChannelID    []byte         `protobuf:"bytes,2,opt,name=channel_id,proto3" json:"channel_id,omitempty"`
	ParticipantB settle.Address `protobuf:"bytes,3,opt,name=participant_b,proto3" json:"participant_b,omitempty"`
	Amount       uint64         `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

type fundChannelMsgProto FundChannelMsg

func (m *fundChannelMsgProto) Reset()         { *m = fundChannelMsgProto{} }
func (m *fundChannelMsgProto) String() string { return proto.CompactTextString(m) }
func (*fundChannelMsgProto) ProtoMessage()    {}

func (m *FundChannelMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*fundChannelMsgProto)(m))
}

func (m *FundChannelMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*fundChannelMsgProto)(m))
}

// CloseChannelMsg settles a channel with a final state signed by both
// participants.
type CloseChannelMsg struct {
	Caller       settle.Address `protobuf:"bytes,1,opt,name=caller,proto3" json:"caller,omitempty"`
	ChannelID    []byte         `protobuf:"bytes,2,opt,name=channel_id,proto3" json:"channel_id,omitempty"`
	ParticipantB settle.Address `protobuf:"bytes,3,opt,name=participant_b,proto3" json:"participant_b,omitempty"`
	BalanceA     uint64         `protobuf:"varint,4,opt,name=balance_a,proto3" json:"balance_a,omitempty"`
	BalanceB     uint64         `protobuf:"varint,5,opt,name=balance_b,proto3" json:"balance_b,omitempty"`
	SignatureA   []byte         `protobuf:"bytes,6,opt,name=signature_a,proto3" json:"signature_a,omitempty"`
	SignatureB   []byte         `protobuf:"bytes,7,opt,name=signature_b,proto3" json:"signature_b,omitempty"`
}

type closeChannelMsgProto CloseChannelMsg

func (m *closeChannelMsgProto) Reset()         { *m = closeChannelMsgProto{} }
func (m *closeChannelMsgProto) String() string { return proto.CompactTextString(m) }
func (*closeChannelMsgProto) ProtoMessage()    {}

func (m *CloseChannelMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*closeChannelMsgProto)(m))
}

func (m *CloseChannelMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*closeChannelMsgProto)(m))
}

// InitiateCloseMsg proposes a final state and starts the dispute window.
type InitiateCloseMsg struct {
	Caller       settle.Address `protobuf:"bytes,1,opt,name=caller,proto3" json:"caller,omitempty"`
	ChannelID    []byte         `protobuf:"bytes,2,opt,name=channel_id,proto3" json:"channel_id,omitempty"`
	ParticipantB settle.Address `protobuf:"bytes,3,opt,name=participant_b,proto3" json:"participant_b,omitempty"`
	BalanceA     uint64         `protobuf:"varint,4,opt,name=balance_a,proto3" json:"balance_a,omitempty"`
	BalanceB     uint64         `protobuf:"varint,5,opt,name=balance_b,proto3" json:"balance_b,omitempty"`
	Signature    []byte         `protobuf:"bytes,6,opt,name=signature,proto3" json:"signature,omitempty"`
}

type initiateCloseMsgProto InitiateCloseMsg

func (m *initiateCloseMsgProto) Reset()         { *m = initiateCloseMsgProto{} }
func (m *initiateCloseMsgProto) String() string { return proto.CompactTextString(m) }
func (*initiateCloseMsgProto) ProtoMessage()    {}

func (m *InitiateCloseMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*initiateCloseMsgProto)(m))
}

func (m *InitiateCloseMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*initiateCloseMsgProto)(m))
}

// ResolveCloseMsg pays out a proposed state once the dispute window passed.
type ResolveCloseMsg struct {
	Caller       settle.Address `protobuf:"bytes,1,opt,name=caller,proto3" json:"caller,omitempty"`
	ChannelID    []byte         `protobuf:"bytes,2,opt,name=channel_id,proto3" json:"channel_id,omitempty"`
	ParticipantB settle.Address `protobuf:"bytes,3,opt,name=participant_b,proto3" json:"participant_b,omitempty"`
}

type resolveCloseMsgProto ResolveCloseMsg

func (m *resolveCloseMsgProto) Reset()         { *m = resolveCloseMsgProto{} }
func (m *resolveCloseMsgProto) String() string { return proto.CompactTextString(m) }
func (*resolveCloseMsgProto) ProtoMessage()    {}

func (m *ResolveCloseMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*resolveCloseMsgProto)(m))
}

func (m *ResolveCloseMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*resolveCloseMsgProto)(m))
}

// EmergencyWithdrawMsg moves the whole custody balance to the owner.
type EmergencyWithdrawMsg struct {
	Caller settle.Address `protobuf:"bytes,1,opt,name=caller,proto3" json:"caller,omitempty"`
}

type emergencyWithdrawMsgProto EmergencyWithdrawMsg

func (m *emergencyWithdrawMsgProto) Reset()         { *m = emergencyWithdrawMsgProto{} }
func (m *emergencyWithdrawMsgProto) String() string { return proto.CompactTextString(m) }
func (*emergencyWithdrawMsgProto) ProtoMessage()    {}

func (m *EmergencyWithdrawMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*emergencyWithdrawMsgProto)(m))
}

func (m *EmergencyWithdrawMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*emergencyWithdrawMsgProto)(m))
}

// UpdateConfigurationMsg patches the stored configuration. Zero fields
// of the patch are ignored.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch,omitempty"`
}

type updateConfigurationMsgProto UpdateConfigurationMsg

func (m *updateConfigurationMsgProto) Reset()         { *m = updateConfigurationMsgProto{} }
func (m *updateConfigurationMsgProto) String() string { return proto.CompactTextString(m) }
func (*updateConfigurationMsgProto) ProtoMessage()    {}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*updateConfigurationMsgProto)(m))
}

func (m *UpdateConfigurationMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*updateConfigurationMsgProto)(m))
}
