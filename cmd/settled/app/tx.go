package settled

import (
	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/x/cash"
	"github.com/iov-one/settle/x/paychan"
	"github.com/iov-one/settle/x/sigs"
)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (settle.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ settle.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (settle.Msg, error) {
	var msgs []settle.Msg
	add := func(ok bool, m settle.Msg) {
		if ok {
			msgs = append(msgs, m)
		}
	}
	add(tx.SendMsg != nil, tx.SendMsg)
	add(tx.CreateChannelMsg != nil, tx.CreateChannelMsg)
	add(tx.FundChannelMsg != nil, tx.FundChannelMsg)
	add(tx.CloseChannelMsg != nil, tx.CloseChannelMsg)
	add(tx.InitiateCloseMsg != nil, tx.InitiateCloseMsg)
	add(tx.ResolveCloseMsg != nil, tx.ResolveCloseMsg)
	add(tx.EmergencyWithdrawMsg != nil, tx.EmergencyWithdrawMsg)
	add(tx.UpdateConfigurationMsg != nil, tx.UpdateConfigurationMsg)

	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrInvalidMsg, "no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "%d messages in one transaction", len(msgs))
	}
}

// SetMsg places the message in the matching field. All other messages are
// cleared.
func (tx *Tx) SetMsg(msg settle.Msg) error {
	sigs := tx.Signatures
	*tx = Tx{Signatures: sigs}
	switch m := msg.(type) {
	case *cash.SendMsg:
		tx.SendMsg = m
	case *paychan.CreateChannelMsg:
		tx.CreateChannelMsg = m
	case *paychan.FundChannelMsg:
		tx.FundChannelMsg = m
	case *paychan.CloseChannelMsg:
		tx.CloseChannelMsg = m
	case *paychan.InitiateCloseMsg:
		tx.InitiateCloseMsg = m
	case *paychan.ResolveCloseMsg:
		tx.ResolveCloseMsg = m
	case *paychan.EmergencyWithdrawMsg:
		tx.EmergencyWithdrawMsg = m
	case *paychan.UpdateConfigurationMsg:
		tx.UpdateConfigurationMsg = m
	default:
		return errors.Wrapf(errors.ErrInvalidMsg, "unsupported message type %T", msg)
	}
	return nil
}

// GetSignatures returns the signatures on the tx
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}
