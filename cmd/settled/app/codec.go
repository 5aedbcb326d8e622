package settled

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/settle/x/cash"
	"github.com/iov-one/settle/x/paychan"
	"github.com/iov-one/settle/x/sigs"
)

// Tx contains the signatures and exactly one message of a transaction
// accepted by the settlement chain.
type Tx struct {
	Signatures             []*sigs.StdSignature            `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	SendMsg                *cash.SendMsg                   `protobuf:"bytes,2,opt,name=send_msg,json=sendMsg,proto3" json:"send_msg,omitempty"`
	CreateChannelMsg       *paychan.CreateChannelMsg       `protobuf:"bytes,3,opt,name=create_channel_msg,json=createChannelMsg,proto3" json:"create_channel_msg,omitempty"`
	FundChannelMsg         *paychan.FundChannelMsg         `protobuf:"bytes,4,opt,name=fund_channel_msg,json=fundChannelMsg,proto3" json:"fund_channel_msg,omitempty"`
	CloseChannelMsg        *paychan.CloseChannelMsg        `protobuf:"bytes,5,opt,name=close_channel_msg,json=closeChannelMsg,proto3" json:"close_channel_msg,omitempty"`
	InitiateCloseMsg       *paychan.InitiateCloseMsg       `protobuf:"bytes,6,opt,name=initiate_close_msg,json=initiateCloseMsg,proto3" json:"initiate_close_msg,omitempty"`
	ResolveCloseMsg        *paychan.ResolveCloseMsg        `protobuf:"bytes,7,opt,name=resolve_close_msg,json=resolveCloseMsg,proto3" json:"resolve_close_msg,omitempty"`
	EmergencyWithdrawMsg   *paychan.EmergencyWithdrawMsg   `protobuf:"bytes,8,opt,name=emergency_withdraw_msg,json=emergencyWithdrawMsg,proto3" json:"emergency_withdraw_msg,omitempty"`
	UpdateConfigurationMsg *paychan.UpdateConfigurationMsg `protobuf:"bytes,9,opt,name=update_configuration_msg,json=updateConfigurationMsg,proto3" json:"update_configuration_msg,omitempty"`
}

type txProto Tx

func (m *txProto) Reset()         { *m = txProto{} }
func (m *txProto) String() string { return proto.CompactTextString(m) }
func (*txProto) ProtoMessage()    {}

func (m *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txProto)(m))
}

func (m *Tx) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*txProto)(m))
}
